package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"nysc-services/internal/config"
	"nysc-services/internal/domain"
	"nysc-services/internal/repository"
	"nysc-services/internal/service/email"
	"nysc-services/internal/service/notification"
)

var (
	ErrMethodDisabled  = errors.New("payment method is not enabled")
	ErrEmptyReference  = errors.New("transaction reference is required")
	ErrDraftIncomplete = errors.New("draft has no computed amount")
)

// GatewayDeclinedError reports a definite decline from the gateway. The draft
// is retained so the customer can retry or switch to bank transfer.
type GatewayDeclinedError struct {
	Reason string
}

func (e *GatewayDeclinedError) Error() string {
	return "payment declined: " + e.Reason
}

// TransferSummary is what the bank-transfer step shows: fixed remittance
// credentials plus the exact amount owed.
type TransferSummary struct {
	Service      domain.ServiceType         `json:"service"`
	Amount       int64                      `json:"amount"`
	DisplayPrice string                     `json:"display_price"`
	CustomerName string                     `json:"customer_name"`
	BankDetails  domain.BankTransferDetails `json:"bank_details"`
}

// Service owns both payment paths: the synchronous gateway charge and the
// two-step manual bank transfer. Either path ends in a committed
// ServiceRequest; the draft is cleared only after the commit is confirmed.
type Service interface {
	EnabledMethods() []string
	StartCheckout(ctx context.Context, sessionID, userID string, input domain.CheckoutInput) (*domain.ServiceRequest, error)
	StartBankTransfer(ctx context.Context, sessionID string, input domain.StartTransferInput) (*TransferSummary, error)
	ConfirmBankTransfer(ctx context.Context, sessionID, userID string, input domain.ConfirmTransferInput) (*domain.ServiceRequest, error)
}

type service struct {
	cfg         *config.Config
	draftRepo   repository.DraftRepository
	requestRepo repository.ServiceRequestRepository
	gateway     Gateway
	emailSvc    email.Service
	notifSvc    notification.Service
}

func NewService(
	cfg *config.Config,
	draftRepo repository.DraftRepository,
	requestRepo repository.ServiceRequestRepository,
	gateway Gateway,
	emailSvc email.Service,
	notifSvc notification.Service,
) Service {
	return &service{
		cfg:         cfg,
		draftRepo:   draftRepo,
		requestRepo: requestRepo,
		gateway:     gateway,
		emailSvc:    emailSvc,
		notifSvc:    notifSvc,
	}
}

func (s *service) EnabledMethods() []string {
	return s.cfg.EnabledPaymentMethods
}

// GuestUserID identifies an unauthenticated customer for the lifetime of a
// single committed request.
func GuestUserID() string {
	return fmt.Sprintf("guest_%d", time.Now().UnixMilli())
}

func (s *service) StartCheckout(ctx context.Context, sessionID, userID string, input domain.CheckoutInput) (*domain.ServiceRequest, error) {
	if !s.cfg.PaymentMethodEnabled(string(domain.PaymentGateway)) {
		return nil, ErrMethodDisabled
	}

	draft, err := s.draftRepo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.Amount <= 0 {
		return nil, ErrDraftIncomplete
	}

	chargeCtx, cancel := context.WithTimeout(ctx, s.cfg.GatewayTimeout)
	defer cancel()

	result, err := s.gateway.Charge(chargeCtx, domain.ChargeRequest{
		Amount:        draft.Amount,
		Currency:      "NGN",
		CustomerEmail: input.Email,
		CustomerPhone: input.PhoneNumber,
		CustomerName:  input.FullName,
		Narrative:     string(draft.Service),
		TxRef:         fmt.Sprintf("nysc_%s_%d", userID, time.Now().Unix()),
	})
	if err != nil {
		return nil, err
	}
	if !result.Success {
		// Draft stays; the customer may retry or switch path.
		return nil, &GatewayDeclinedError{Reason: result.FailureReason}
	}

	req := &domain.ServiceRequest{
		ID:               uuid.New(),
		UserID:           userID,
		Service:          draft.Service,
		Amount:           draft.Amount,
		FormData:         draft.FormData,
		CustomerName:     input.FullName,
		CustomerEmail:    input.Email,
		PaymentMethod:    domain.PaymentGateway,
		PaymentReference: result.TransactionID,
		Status:           domain.StatusPending,
	}

	return s.commit(ctx, sessionID, req)
}

func (s *service) StartBankTransfer(ctx context.Context, sessionID string, input domain.StartTransferInput) (*TransferSummary, error) {
	if !s.cfg.PaymentMethodEnabled(string(domain.PaymentBankTransfer)) {
		return nil, ErrMethodDisabled
	}

	draft, err := s.draftRepo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.Amount <= 0 {
		return nil, ErrDraftIncomplete
	}

	draft.CustomerName = input.FullName
	draft.CustomerEmail = input.Email
	if err := s.draftRepo.Save(ctx, sessionID, draft); err != nil {
		return nil, err
	}

	return &TransferSummary{
		Service:      draft.Service,
		Amount:       draft.Amount,
		DisplayPrice: draft.DisplayPrice,
		CustomerName: draft.CustomerName,
		BankDetails: domain.BankTransferDetails{
			BankName:      s.cfg.BankName,
			AccountName:   s.cfg.BankAccountName,
			AccountNumber: s.cfg.BankAccountNumber,
			SortCode:      s.cfg.BankSortCode,
		},
	}, nil
}

func (s *service) ConfirmBankTransfer(ctx context.Context, sessionID, userID string, input domain.ConfirmTransferInput) (*domain.ServiceRequest, error) {
	if !s.cfg.PaymentMethodEnabled(string(domain.PaymentBankTransfer)) {
		return nil, ErrMethodDisabled
	}

	reference := strings.TrimSpace(input.TransactionID)
	if reference == "" {
		return nil, ErrEmptyReference
	}

	draft, err := s.draftRepo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.Amount <= 0 {
		return nil, ErrDraftIncomplete
	}

	// No automated verification happens here; reconciliation against bank
	// records is a manual admin action, hence pending_verification.
	req := &domain.ServiceRequest{
		ID:               uuid.New(),
		UserID:           userID,
		Service:          draft.Service,
		Amount:           draft.Amount,
		FormData:         draft.FormData,
		CustomerName:     draft.CustomerName,
		CustomerEmail:    draft.CustomerEmail,
		PaymentMethod:    domain.PaymentBankTransfer,
		PaymentReference: reference,
		Status:           domain.StatusPendingVerification,
	}

	committed, err := s.commit(ctx, sessionID, req)
	if err != nil {
		return nil, err
	}

	if s.emailSvc != nil && committed.CustomerEmail != "" {
		go func(r domain.ServiceRequest) {
			if err := s.emailSvc.SendTransferReceived(context.Background(), r.CustomerEmail, r.CustomerName, string(r.Service), r.PaymentReference); err != nil {
				log.Printf("Failed to send transfer confirmation email: %v", err)
			}
		}(*committed)
	}

	return committed, nil
}

// commit persists the request, then clears the draft. Clearing is strictly
// ordered after a confirmed write so a store failure never loses the draft.
func (s *service) commit(ctx context.Context, sessionID string, req *domain.ServiceRequest) (*domain.ServiceRequest, error) {
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	if err := s.draftRepo.Clear(ctx, sessionID); err != nil {
		log.Printf("Failed to clear draft for session %s: %v", sessionID, err)
	}

	if s.notifSvc != nil {
		go s.notifSvc.NotifyNewRequest(context.Background(), req)
	}

	return req, nil
}
