package servicerequest_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"nysc-services/internal/domain"
	"nysc-services/internal/mocks"
	"nysc-services/internal/repository"
	"nysc-services/internal/service/pricing"
	"nysc-services/internal/service/servicerequest"
)

type testDeps struct {
	requests *mocks.ServiceRequestRepository
	drafts   *mocks.DraftRepository
	docs     *mocks.DocumentRepository
	audits   *mocks.AuditLogRepository
}

func newTestService() (servicerequest.Service, *testDeps) {
	deps := &testDeps{
		requests: new(mocks.ServiceRequestRepository),
		drafts:   new(mocks.DraftRepository),
		docs:     new(mocks.DocumentRepository),
		audits:   new(mocks.AuditLogRepository),
	}
	svc := servicerequest.NewService(
		deps.requests, deps.drafts, deps.docs, deps.audits,
		pricing.NewService(), nil, nil,
	)
	return svc, deps
}

func validDirectPostingForm() domain.DirectPostingForm {
	return domain.DirectPostingForm{
		FullName:       "Ada Obi",
		StateCode:      "NYSC/ABJ/2024/123456",
		CallUpNumber:   "CU-2024-998877",
		PhoneNumber:    "+2348012345678",
		Email:          "ada@example.com",
		PreferredState: "Lagos",
		PreferredLGA:   "Ikeja",
		Reason:         "Closer to family",
	}
}

func TestSubmitDirectPosting(t *testing.T) {
	ctx := context.Background()

	t.Run("Premium destination priced at 150k", func(t *testing.T) {
		svc, deps := newTestService()
		deps.drafts.On("Save", ctx, "sess-1", mock.MatchedBy(func(d *domain.Draft) bool {
			return d.Service == domain.ServiceDirectPosting &&
				d.Amount == 150000 &&
				d.DisplayPrice == "₦150,000" &&
				d.CustomerEmail == "ada@example.com"
		})).Return(nil).Once()

		draft, err := svc.SubmitDirectPosting(ctx, "sess-1", validDirectPostingForm())

		assert.NoError(t, err)
		assert.Equal(t, int64(150000), draft.Amount)
		deps.drafts.AssertExpectations(t)
	})

	t.Run("Standard destination priced at 70k", func(t *testing.T) {
		svc, deps := newTestService()
		form := validDirectPostingForm()
		form.PreferredState = "Enugu"

		deps.drafts.On("Save", ctx, "sess-1", mock.MatchedBy(func(d *domain.Draft) bool {
			return d.Amount == 70000
		})).Return(nil).Once()

		_, err := svc.SubmitDirectPosting(ctx, "sess-1", form)
		assert.NoError(t, err)
	})

	t.Run("Unknown destination rejected", func(t *testing.T) {
		svc, deps := newTestService()
		form := validDirectPostingForm()
		form.PreferredState = "Atlantis"

		_, err := svc.SubmitDirectPosting(ctx, "sess-1", form)

		assert.ErrorIs(t, err, servicerequest.ErrUnknownState)
		deps.drafts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing required field rejected", func(t *testing.T) {
		svc, _ := newTestService()
		form := validDirectPostingForm()
		form.Email = ""

		_, err := svc.SubmitDirectPosting(ctx, "sess-1", form)
		assert.Error(t, err)
	})
}

func TestSubmitPPAChange(t *testing.T) {
	ctx := context.Background()
	letterID := uuid.New()

	form := domain.PPAChangeForm{
		FullName:         "Ada Obi",
		StateCode:        "NYSC/ABJ/2024/123456",
		PhoneNumber:      "+2348012345678",
		Email:            "ada@example.com",
		CurrentPPA:       "Ministry of Works",
		DesiredPPA:       "Tech Hub Lagos",
		Reason:           "Skill match",
		LetterDocumentID: letterID,
	}

	t.Run("Flat fee with uploaded letter", func(t *testing.T) {
		svc, deps := newTestService()
		deps.docs.On("GetByID", ctx, letterID).Return(&domain.Document{ID: letterID}, nil).Once()
		deps.drafts.On("Save", ctx, "sess-1", mock.MatchedBy(func(d *domain.Draft) bool {
			return d.Service == domain.ServicePPAChange && d.Amount == 30000
		})).Return(nil).Once()

		draft, err := svc.SubmitPPAChange(ctx, "sess-1", form)

		assert.NoError(t, err)
		assert.Equal(t, int64(30000), draft.Amount)
		deps.docs.AssertExpectations(t)
	})

	t.Run("Dangling letter ID rejected", func(t *testing.T) {
		svc, deps := newTestService()
		deps.docs.On("GetByID", ctx, letterID).Return(nil, repository.ErrNotFound).Once()

		_, err := svc.SubmitPPAChange(ctx, "sess-1", form)

		assert.ErrorIs(t, err, servicerequest.ErrLetterRequired)
		deps.drafts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})
}

func pendingRequest(id uuid.UUID) *domain.ServiceRequest {
	return &domain.ServiceRequest{
		ID:               id,
		UserID:           "guest_1700000000000",
		Service:          domain.ServiceDirectPosting,
		Amount:           150000,
		FormData:         json.RawMessage(`{}`),
		CustomerName:     "Ada Obi",
		PaymentMethod:    domain.PaymentGateway,
		PaymentReference: "flw_12345",
		Status:           domain.StatusPending,
	}
}

func TestApprove(t *testing.T) {
	ctx := context.Background()
	admin := &domain.User{ID: uuid.New(), Role: string(domain.RoleAdmin)}

	t.Run("Pending request approved with audit entry", func(t *testing.T) {
		svc, deps := newTestService()
		id := uuid.New()
		req := pendingRequest(id)
		approved := *req
		approved.Status = domain.StatusApproved

		deps.requests.On("GetByID", ctx, id).Return(req, nil).Once()
		deps.requests.On("UpdateStatus", ctx, id, domain.StatusApproved).Return(&approved, nil).Once()
		deps.audits.On("Create", ctx, mock.MatchedBy(func(l *domain.AuditLog) bool {
			return l.Action == domain.AuditApproveRequest && l.EntityID == id && l.UserID == admin.ID
		})).Return(nil).Once()

		result, err := svc.Approve(ctx, id, admin, nil)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, result.Status)
		deps.audits.AssertExpectations(t)
	})

	t.Run("Disposition survives failing customer notifications", func(t *testing.T) {
		mockRequests := new(mocks.ServiceRequestRepository)
		mockAudits := new(mocks.AuditLogRepository)
		mockEmail := new(mocks.EmailService)
		mockNotifs := new(mocks.NotificationService)
		svc := servicerequest.NewService(
			mockRequests, new(mocks.DraftRepository), new(mocks.DocumentRepository), mockAudits,
			pricing.NewService(), mockEmail, mockNotifs,
		)

		id := uuid.New()
		req := pendingRequest(id)
		req.CustomerEmail = "ada@example.com"
		approved := *req
		approved.Status = domain.StatusApproved

		mockRequests.On("GetByID", ctx, id).Return(req, nil).Once()
		mockRequests.On("UpdateStatus", ctx, id, domain.StatusApproved).Return(&approved, nil).Once()
		mockAudits.On("Create", ctx, mock.Anything).Return(nil).Once()

		emailSent := make(chan struct{})
		mockEmail.On("SendStatusUpdate", mock.Anything, "ada@example.com", "Ada Obi", "Direct Posting", "approved").
			Run(func(mock.Arguments) { close(emailSent) }).
			Return(errors.New("email provider unavailable")).Once()

		notified := make(chan struct{})
		mockNotifs.On("NotifyStatusChange", mock.Anything, &approved).
			Run(func(mock.Arguments) { close(notified) }).Return().Once()

		result, err := svc.Approve(ctx, id, admin, nil)

		// The disposition commits regardless of either notification path.
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, result.Status)

		for _, fired := range []chan struct{}{emailSent, notified} {
			select {
			case <-fired:
			case <-time.After(2 * time.Second):
				t.Fatal("expected asynchronous customer notification to fire")
			}
		}
		mockEmail.AssertExpectations(t)
		mockNotifs.AssertExpectations(t)
	})

	t.Run("Re-approving an approved request is a no-op", func(t *testing.T) {
		svc, deps := newTestService()
		id := uuid.New()
		req := pendingRequest(id)
		req.Status = domain.StatusApproved

		deps.requests.On("GetByID", ctx, id).Return(req, nil).Once()

		result, err := svc.Approve(ctx, id, admin, nil)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, result.Status)
		deps.requests.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		deps.audits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Approving a rejected request conflicts", func(t *testing.T) {
		svc, deps := newTestService()
		id := uuid.New()
		req := pendingRequest(id)
		req.Status = domain.StatusRejected

		deps.requests.On("GetByID", ctx, id).Return(req, nil).Once()

		_, err := svc.Approve(ctx, id, admin, nil)
		assert.ErrorIs(t, err, servicerequest.ErrAlreadyFinalized)
	})

	t.Run("Losing a race to the same decision is a no-op", func(t *testing.T) {
		svc, deps := newTestService()
		id := uuid.New()
		req := pendingRequest(id)
		racedTo := *req
		racedTo.Status = domain.StatusApproved

		deps.requests.On("GetByID", ctx, id).Return(req, nil).Once()
		deps.requests.On("UpdateStatus", ctx, id, domain.StatusApproved).Return(nil, repository.ErrNotFound).Once()
		deps.requests.On("GetByID", ctx, id).Return(&racedTo, nil).Once()

		result, err := svc.Approve(ctx, id, admin, nil)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, result.Status)
	})

	t.Run("Losing a race to the opposite decision conflicts", func(t *testing.T) {
		svc, deps := newTestService()
		id := uuid.New()
		req := pendingRequest(id)
		racedTo := *req
		racedTo.Status = domain.StatusRejected

		deps.requests.On("GetByID", ctx, id).Return(req, nil).Once()
		deps.requests.On("UpdateStatus", ctx, id, domain.StatusApproved).Return(nil, repository.ErrNotFound).Once()
		deps.requests.On("GetByID", ctx, id).Return(&racedTo, nil).Once()

		_, err := svc.Approve(ctx, id, admin, nil)
		assert.ErrorIs(t, err, servicerequest.ErrAlreadyFinalized)
	})
}

func TestReject(t *testing.T) {
	ctx := context.Background()
	admin := &domain.User{ID: uuid.New(), Role: string(domain.RoleAdmin)}

	svc, deps := newTestService()
	id := uuid.New()
	req := pendingRequest(id)
	req.Status = domain.StatusPendingVerification
	rejected := *req
	rejected.Status = domain.StatusRejected

	deps.requests.On("GetByID", ctx, id).Return(req, nil).Once()
	deps.requests.On("UpdateStatus", ctx, id, domain.StatusRejected).Return(&rejected, nil).Once()
	deps.audits.On("Create", ctx, mock.MatchedBy(func(l *domain.AuditLog) bool {
		return l.Action == domain.AuditRejectRequest
	})).Return(nil).Once()

	result, err := svc.Reject(ctx, id, admin, nil)

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, result.Status)
	deps.audits.AssertExpectations(t)
}
