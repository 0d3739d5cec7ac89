package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"

	"nysc-services/internal/domain"
	"nysc-services/internal/repository"
)

// Service fans out in-app notifications: admins hear about new requests,
// registered customers hear about dispositions. Failures are logged and never
// block the flow that triggered them.
type Service interface {
	NotifyNewRequest(ctx context.Context, req *domain.ServiceRequest)
	NotifyStatusChange(ctx context.Context, req *domain.ServiceRequest)
	ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
}

func NewService(notifRepo repository.NotificationRepository, userRepo repository.UserRepository) Service {
	return &service{notifRepo: notifRepo, userRepo: userRepo}
}

func (s *service) NotifyNewRequest(ctx context.Context, req *domain.ServiceRequest) {
	admins, err := s.userRepo.ListByRole(ctx, domain.RoleAdmin)
	if err != nil {
		log.Printf("Failed to list admins for notification: %v", err)
		return
	}

	data := requestData(req)
	for _, admin := range admins {
		notif := &domain.Notification{
			ID:      uuid.New(),
			UserID:  admin.ID,
			Type:    domain.NotifNewRequest,
			Title:   "New Service Request",
			Message: req.CustomerName + " submitted a " + string(req.Service) + " request",
			Data:    data,
		}
		if err := s.notifRepo.Create(ctx, notif); err != nil {
			log.Printf("Failed to create admin notification: %v", err)
		}
	}
}

func (s *service) NotifyStatusChange(ctx context.Context, req *domain.ServiceRequest) {
	// Guest requests have no account to notify; they get email only.
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return
	}

	notifType := domain.NotifRequestApproved
	title := "Request Approved"
	message := "Your " + string(req.Service) + " request has been approved"
	if req.Status == domain.StatusRejected {
		notifType = domain.NotifRequestRejected
		title = "Request Rejected"
		message = "Your " + string(req.Service) + " request has been rejected"
	}

	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    requestData(req),
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		log.Printf("Failed to create status notification: %v", err)
	}
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}
	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *service) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.notifRepo.MarkAsRead(ctx, id)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

func requestData(req *domain.ServiceRequest) json.RawMessage {
	return json.RawMessage(`{"service_request_id":"` + req.ID.String() + `"}`)
}
