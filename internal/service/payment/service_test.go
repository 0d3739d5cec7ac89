package payment_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"nysc-services/internal/config"
	"nysc-services/internal/domain"
	"nysc-services/internal/mocks"
	"nysc-services/internal/repository"
	"nysc-services/internal/service/payment"
)

func testConfig() *config.Config {
	return &config.Config{
		EnabledPaymentMethods: []string{"gateway", "bank_transfer"},
		GatewayTimeout:        time.Second,
		BankName:              "First Bank of Nigeria",
		BankAccountName:       "NYSC Platform Services",
		BankAccountNumber:     "2034567890",
		BankSortCode:          "011151003",
	}
}

func testDraft() *domain.Draft {
	return &domain.Draft{
		Service:       domain.ServiceDirectPosting,
		Amount:        150000,
		DisplayPrice:  "₦150,000",
		FormData:      json.RawMessage(`{"preferred_state":"Lagos"}`),
		CustomerName:  "Ada Obi",
		CustomerEmail: "ada@example.com",
		CreatedAt:     time.Now(),
	}
}

func TestPaymentService_StartCheckout(t *testing.T) {
	ctx := context.Background()
	checkout := domain.CheckoutInput{
		FullName:    "Ada Obi",
		Email:       "ada@example.com",
		PhoneNumber: "+2348012345678",
	}

	t.Run("Success commits pending request and clears draft", func(t *testing.T) {
		mockDrafts := new(mocks.DraftRepository)
		mockRequests := new(mocks.ServiceRequestRepository)
		mockGateway := new(mocks.Gateway)
		svc := payment.NewService(testConfig(), mockDrafts, mockRequests, mockGateway, nil, nil)

		mockDrafts.On("Load", ctx, "sess-1").Return(testDraft(), nil).Once()
		mockGateway.On("Charge", mock.Anything, mock.MatchedBy(func(cr domain.ChargeRequest) bool {
			return cr.Amount == 150000 && cr.Currency == "NGN" && cr.CustomerEmail == "ada@example.com"
		})).Return(domain.ChargeResult{Success: true, TransactionID: "flw_12345"}, nil).Once()
		mockRequests.On("Create", ctx, mock.MatchedBy(func(r *domain.ServiceRequest) bool {
			return r.Status == domain.StatusPending &&
				r.PaymentMethod == domain.PaymentGateway &&
				r.PaymentReference == "flw_12345" &&
				r.Amount == 150000
		})).Return(nil).Once()
		mockDrafts.On("Clear", ctx, "sess-1").Return(nil).Once()

		req, err := svc.StartCheckout(ctx, "sess-1", "user-1", checkout)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusPending, req.Status)
		mockDrafts.AssertExpectations(t)
		mockRequests.AssertExpectations(t)
		mockGateway.AssertExpectations(t)
	})

	t.Run("Declined charge keeps the draft", func(t *testing.T) {
		mockDrafts := new(mocks.DraftRepository)
		mockRequests := new(mocks.ServiceRequestRepository)
		mockGateway := new(mocks.Gateway)
		svc := payment.NewService(testConfig(), mockDrafts, mockRequests, mockGateway, nil, nil)

		mockDrafts.On("Load", ctx, "sess-1").Return(testDraft(), nil).Once()
		mockGateway.On("Charge", mock.Anything, mock.Anything).
			Return(domain.ChargeResult{Success: false, FailureReason: "insufficient funds"}, nil).Once()

		req, err := svc.StartCheckout(ctx, "sess-1", "user-1", checkout)

		assert.Nil(t, req)
		var declined *payment.GatewayDeclinedError
		assert.ErrorAs(t, err, &declined)
		assert.Equal(t, "insufficient funds", declined.Reason)

		// Nothing persisted, draft never cleared.
		mockRequests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mockDrafts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
	})

	t.Run("Missing draft", func(t *testing.T) {
		mockDrafts := new(mocks.DraftRepository)
		svc := payment.NewService(testConfig(), mockDrafts, new(mocks.ServiceRequestRepository), new(mocks.Gateway), nil, nil)

		mockDrafts.On("Load", ctx, "sess-1").Return(nil, repository.ErrDraftNotFound).Once()

		_, err := svc.StartCheckout(ctx, "sess-1", "user-1", checkout)
		assert.ErrorIs(t, err, repository.ErrDraftNotFound)
	})

	t.Run("Gateway method disabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.EnabledPaymentMethods = []string{"bank_transfer"}
		svc := payment.NewService(cfg, new(mocks.DraftRepository), new(mocks.ServiceRequestRepository), new(mocks.Gateway), nil, nil)

		_, err := svc.StartCheckout(ctx, "sess-1", "user-1", checkout)
		assert.ErrorIs(t, err, payment.ErrMethodDisabled)
	})
}

func TestPaymentService_StartBankTransfer(t *testing.T) {
	ctx := context.Background()

	mockDrafts := new(mocks.DraftRepository)
	svc := payment.NewService(testConfig(), mockDrafts, new(mocks.ServiceRequestRepository), new(mocks.Gateway), nil, nil)

	mockDrafts.On("Load", ctx, "sess-1").Return(testDraft(), nil).Once()
	mockDrafts.On("Save", ctx, "sess-1", mock.MatchedBy(func(d *domain.Draft) bool {
		return d.CustomerName == "Ada Obi" && d.CustomerEmail == "ada@example.com"
	})).Return(nil).Once()

	summary, err := svc.StartBankTransfer(ctx, "sess-1", domain.StartTransferInput{
		FullName: "Ada Obi",
		Email:    "ada@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(150000), summary.Amount)
	assert.Equal(t, "First Bank of Nigeria", summary.BankDetails.BankName)
	assert.Equal(t, "2034567890", summary.BankDetails.AccountNumber)
	mockDrafts.AssertExpectations(t)
}

func TestPaymentService_ConfirmBankTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("Commits pending_verification with trimmed reference", func(t *testing.T) {
		mockDrafts := new(mocks.DraftRepository)
		mockRequests := new(mocks.ServiceRequestRepository)
		svc := payment.NewService(testConfig(), mockDrafts, mockRequests, new(mocks.Gateway), nil, nil)

		mockDrafts.On("Load", ctx, "sess-1").Return(testDraft(), nil).Once()
		mockRequests.On("Create", ctx, mock.MatchedBy(func(r *domain.ServiceRequest) bool {
			return r.Status == domain.StatusPendingVerification &&
				r.PaymentMethod == domain.PaymentBankTransfer &&
				r.PaymentReference == "TRX-9001"
		})).Return(nil).Once()
		mockDrafts.On("Clear", ctx, "sess-1").Return(nil).Once()

		req, err := svc.ConfirmBankTransfer(ctx, "sess-1", "user-1", domain.ConfirmTransferInput{
			TransactionID: "  TRX-9001  ",
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusPendingVerification, req.Status)
		mockDrafts.AssertExpectations(t)
		mockRequests.AssertExpectations(t)
	})

	t.Run("Commit survives a failing confirmation email", func(t *testing.T) {
		mockDrafts := new(mocks.DraftRepository)
		mockRequests := new(mocks.ServiceRequestRepository)
		mockEmail := new(mocks.EmailService)
		mockNotifs := new(mocks.NotificationService)
		svc := payment.NewService(testConfig(), mockDrafts, mockRequests, new(mocks.Gateway), mockEmail, mockNotifs)

		mockDrafts.On("Load", ctx, "sess-1").Return(testDraft(), nil).Once()
		mockRequests.On("Create", ctx, mock.Anything).Return(nil).Once()
		mockDrafts.On("Clear", ctx, "sess-1").Return(nil).Once()

		emailSent := make(chan struct{})
		mockEmail.On("SendTransferReceived", mock.Anything, "ada@example.com", "Ada Obi", "Direct Posting", "TRX-9001").
			Run(func(mock.Arguments) { close(emailSent) }).
			Return(errors.New("email provider unavailable")).Once()

		notified := make(chan struct{})
		mockNotifs.On("NotifyNewRequest", mock.Anything, mock.MatchedBy(func(r *domain.ServiceRequest) bool {
			return r.PaymentReference == "TRX-9001"
		})).Run(func(mock.Arguments) { close(notified) }).Return().Once()

		req, err := svc.ConfirmBankTransfer(ctx, "sess-1", "user-1", domain.ConfirmTransferInput{
			TransactionID: "TRX-9001",
		})

		// The customer's commit must not depend on either side effect.
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusPendingVerification, req.Status)

		for _, fired := range []chan struct{}{emailSent, notified} {
			select {
			case <-fired:
			case <-time.After(2 * time.Second):
				t.Fatal("expected asynchronous side effect to fire")
			}
		}
		mockEmail.AssertExpectations(t)
		mockNotifs.AssertExpectations(t)
	})

	t.Run("Empty reference rejected before any store access", func(t *testing.T) {
		mockDrafts := new(mocks.DraftRepository)
		svc := payment.NewService(testConfig(), mockDrafts, new(mocks.ServiceRequestRepository), new(mocks.Gateway), nil, nil)

		_, err := svc.ConfirmBankTransfer(ctx, "sess-1", "user-1", domain.ConfirmTransferInput{
			TransactionID: "   ",
		})

		assert.ErrorIs(t, err, payment.ErrEmptyReference)
		mockDrafts.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
	})
}

func TestGuestUserID(t *testing.T) {
	id := payment.GuestUserID()
	assert.Regexp(t, `^guest_\d+$`, id)
}
