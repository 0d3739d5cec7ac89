package servicerequest

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"nysc-services/internal/domain"
	"nysc-services/internal/repository"
	"nysc-services/internal/service/email"
	"nysc-services/internal/service/notification"
	"nysc-services/internal/service/pricing"
)

var (
	// ErrNoDestination blocks submission when a state-priced service has no
	// priced destination (zero amount means "incomplete form").
	ErrNoDestination = errors.New("a destination state must be selected")
	ErrUnknownState  = errors.New("destination state is not in the catalog")
	// ErrLetterRequired rejects a PPA change submitted without an uploaded
	// letter of request.
	ErrLetterRequired = errors.New("letter of request upload is required")
	// ErrAlreadyFinalized rejects transitions out of approved/rejected.
	ErrAlreadyFinalized = errors.New("request is already in a final state")
)

// RequestMeta carries actor context captured by middleware for the audit trail.
type RequestMeta struct {
	IPAddress *string
	UserAgent *string
}

// Service covers the intake side (validate, price, draft) and the admin side
// (list, approve, reject) of the request lifecycle.
type Service interface {
	SubmitDirectPosting(ctx context.Context, sessionID string, form domain.DirectPostingForm) (*domain.Draft, error)
	SubmitRelocation(ctx context.Context, sessionID string, form domain.RelocationForm) (*domain.Draft, error)
	SubmitPPAChange(ctx context.Context, sessionID string, form domain.PPAChangeForm) (*domain.Draft, error)
	GetDraft(ctx context.Context, sessionID string) (*domain.Draft, error)

	GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceRequest, error)
	List(ctx context.Context, filter domain.RequestFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.ServiceRequest], error)
	ListByUser(ctx context.Context, userID string) ([]domain.ServiceRequest, error)
	Approve(ctx context.Context, id uuid.UUID, reviewer *domain.User, meta *RequestMeta) (*domain.ServiceRequest, error)
	Reject(ctx context.Context, id uuid.UUID, reviewer *domain.User, meta *RequestMeta) (*domain.ServiceRequest, error)
}

type service struct {
	requestRepo repository.ServiceRequestRepository
	draftRepo   repository.DraftRepository
	docRepo     repository.DocumentRepository
	auditRepo   repository.AuditLogRepository
	pricingSvc  pricing.Service
	emailSvc    email.Service
	notifSvc    notification.Service
	validate    *validator.Validate
}

func NewService(
	requestRepo repository.ServiceRequestRepository,
	draftRepo repository.DraftRepository,
	docRepo repository.DocumentRepository,
	auditRepo repository.AuditLogRepository,
	pricingSvc pricing.Service,
	emailSvc email.Service,
	notifSvc notification.Service,
) Service {
	return &service{
		requestRepo: requestRepo,
		draftRepo:   draftRepo,
		docRepo:     docRepo,
		auditRepo:   auditRepo,
		pricingSvc:  pricingSvc,
		emailSvc:    emailSvc,
		notifSvc:    notifSvc,
		validate:    validator.New(),
	}
}

func (s *service) SubmitDirectPosting(ctx context.Context, sessionID string, form domain.DirectPostingForm) (*domain.Draft, error) {
	if err := s.validate.Struct(form); err != nil {
		return nil, err
	}
	if err := s.checkDestination(form.PreferredState); err != nil {
		return nil, err
	}
	return s.saveDraft(ctx, sessionID, domain.ServiceDirectPosting, form.PreferredState, form, form.FullName, form.Email)
}

func (s *service) SubmitRelocation(ctx context.Context, sessionID string, form domain.RelocationForm) (*domain.Draft, error) {
	if err := s.validate.Struct(form); err != nil {
		return nil, err
	}
	if err := s.checkDestination(form.DesiredState); err != nil {
		return nil, err
	}
	return s.saveDraft(ctx, sessionID, domain.ServiceRelocation, form.DesiredState, form, form.FullName, form.Email)
}

func (s *service) SubmitPPAChange(ctx context.Context, sessionID string, form domain.PPAChangeForm) (*domain.Draft, error) {
	if err := s.validate.Struct(form); err != nil {
		return nil, err
	}

	// The letter must already exist in storage; a dangling ID means the
	// upload never happened and nothing may be drafted.
	if form.LetterDocumentID == uuid.Nil {
		return nil, ErrLetterRequired
	}
	if _, err := s.docRepo.GetByID(ctx, form.LetterDocumentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLetterRequired
		}
		return nil, err
	}

	return s.saveDraft(ctx, sessionID, domain.ServicePPAChange, "", form, form.FullName, form.Email)
}

func (s *service) checkDestination(state string) error {
	if state == "" {
		return ErrNoDestination
	}
	if !s.pricingSvc.IsKnownState(state) {
		return ErrUnknownState
	}
	return nil
}

// saveDraft prices the submission and overwrites any prior draft for the
// session. The amount is fixed here; nothing downstream may change it.
func (s *service) saveDraft(ctx context.Context, sessionID string, svc domain.ServiceType, state string, form interface{}, name, contactEmail string) (*domain.Draft, error) {
	quote := s.pricingSvc.Quote(svc, state)
	if quote.Amount <= 0 {
		return nil, ErrNoDestination
	}

	formData, err := json.Marshal(form)
	if err != nil {
		return nil, err
	}

	draft := &domain.Draft{
		Service:       svc,
		Amount:        quote.Amount,
		DisplayPrice:  quote.DisplayPrice,
		FormData:      formData,
		CustomerName:  name,
		CustomerEmail: contactEmail,
		CreatedAt:     time.Now(),
	}

	if err := s.draftRepo.Save(ctx, sessionID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *service) GetDraft(ctx context.Context, sessionID string) (*domain.Draft, error) {
	return s.draftRepo.Load(ctx, sessionID)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceRequest, error) {
	return s.requestRepo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter domain.RequestFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.ServiceRequest], error) {
	requests, total, err := s.requestRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.ServiceRequest]{}, err
	}
	return domain.NewPaginatedResponse(requests, params.Page, params.PageSize, total), nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]domain.ServiceRequest, error) {
	return s.requestRepo.ListByUser(ctx, userID)
}

func (s *service) Approve(ctx context.Context, id uuid.UUID, reviewer *domain.User, meta *RequestMeta) (*domain.ServiceRequest, error) {
	return s.setStatus(ctx, id, domain.StatusApproved, reviewer, meta)
}

func (s *service) Reject(ctx context.Context, id uuid.UUID, reviewer *domain.User, meta *RequestMeta) (*domain.ServiceRequest, error) {
	return s.setStatus(ctx, id, domain.StatusRejected, reviewer, meta)
}

// setStatus applies an admin disposition. Re-applying the current status is a
// no-op returning the unchanged record; transitions out of a terminal state
// are refused. The repository UPDATE is guarded, so a concurrent disposition
// on the same request resolves to exactly one winner.
func (s *service) setStatus(ctx context.Context, id uuid.UUID, target domain.RequestStatus, reviewer *domain.User, meta *RequestMeta) (*domain.ServiceRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status == target {
		return req, nil
	}
	if !req.Status.CanTransitionTo(target) {
		return nil, ErrAlreadyFinalized
	}

	oldStatus := req.Status
	updated, err := s.requestRepo.UpdateStatus(ctx, id, target)
	if errors.Is(err, repository.ErrNotFound) {
		// Lost a race against another admin. Re-read to tell "same
		// decision" (idempotent no-op) apart from a conflicting one.
		current, readErr := s.requestRepo.GetByID(ctx, id)
		if readErr != nil {
			return nil, readErr
		}
		if current.Status == target {
			return current, nil
		}
		return nil, ErrAlreadyFinalized
	}
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, reviewer, updated, oldStatus, meta)
	s.notifyCustomer(updated)

	return updated, nil
}

func (s *service) recordAudit(ctx context.Context, reviewer *domain.User, req *domain.ServiceRequest, oldStatus domain.RequestStatus, meta *RequestMeta) {
	action := domain.AuditApproveRequest
	if req.Status == domain.StatusRejected {
		action = domain.AuditRejectRequest
	}

	entry := &domain.AuditLog{
		ID:         uuid.New(),
		UserID:     reviewer.ID,
		Action:     action,
		EntityType: "SERVICE_REQUEST",
		EntityID:   req.ID,
		OldValue:   json.RawMessage(`{"status":"` + string(oldStatus) + `"}`),
		NewValue:   json.RawMessage(`{"status":"` + string(req.Status) + `"}`),
	}
	if meta != nil {
		entry.IPAddress = meta.IPAddress
		entry.UserAgent = meta.UserAgent
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("Failed to write audit log for request %s: %v", req.ID, err)
	}
}

func (s *service) notifyCustomer(req *domain.ServiceRequest) {
	if s.notifSvc != nil {
		go s.notifSvc.NotifyStatusChange(context.Background(), req)
	}

	if s.emailSvc != nil && req.CustomerEmail != "" {
		go func(r domain.ServiceRequest) {
			if err := s.emailSvc.SendStatusUpdate(context.Background(), r.CustomerEmail, r.CustomerName, string(r.Service), string(r.Status)); err != nil {
				log.Printf("Failed to send status email for request %s: %v", r.ID, err)
			}
		}(*req)
	}
}
