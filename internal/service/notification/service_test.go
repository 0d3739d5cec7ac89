package notification_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"nysc-services/internal/domain"
	"nysc-services/internal/mocks"
	"nysc-services/internal/service/notification"
)

func TestNotifyNewRequest(t *testing.T) {
	ctx := context.Background()
	mockNotifs := new(mocks.NotificationRepository)
	mockUsers := new(mocks.UserRepository)
	svc := notification.NewService(mockNotifs, mockUsers)

	admins := []domain.User{
		{ID: uuid.New(), Role: string(domain.RoleAdmin)},
		{ID: uuid.New(), Role: string(domain.RoleAdmin)},
	}
	req := &domain.ServiceRequest{
		ID:           uuid.New(),
		Service:      domain.ServiceRelocation,
		CustomerName: "Ada Obi",
	}

	mockUsers.On("ListByRole", ctx, domain.RoleAdmin).Return(admins, nil).Once()
	mockNotifs.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Type == domain.NotifNewRequest
	})).Return(nil).Twice()

	svc.NotifyNewRequest(ctx, req)

	mockNotifs.AssertNumberOfCalls(t, "Create", 2)
}

func TestNotifyStatusChange_SkipsGuests(t *testing.T) {
	ctx := context.Background()
	mockNotifs := new(mocks.NotificationRepository)
	svc := notification.NewService(mockNotifs, new(mocks.UserRepository))

	req := &domain.ServiceRequest{
		ID:     uuid.New(),
		UserID: "guest_1700000000000",
		Status: domain.StatusApproved,
	}

	svc.NotifyStatusChange(ctx, req)

	mockNotifs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNotifyStatusChange_RegisteredCustomer(t *testing.T) {
	ctx := context.Background()
	mockNotifs := new(mocks.NotificationRepository)
	svc := notification.NewService(mockNotifs, new(mocks.UserRepository))

	userID := uuid.New()
	req := &domain.ServiceRequest{
		ID:      uuid.New(),
		UserID:  userID.String(),
		Service: domain.ServicePPAChange,
		Status:  domain.StatusRejected,
	}

	mockNotifs.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == userID && n.Type == domain.NotifRequestRejected
	})).Return(nil).Once()

	svc.NotifyStatusChange(ctx, req)

	mockNotifs.AssertExpectations(t)
}
