package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"nysc-services/internal/domain"
)

type ServiceRequestRepository struct {
	mock.Mock
}

func (m *ServiceRequestRepository) Create(ctx context.Context, req *domain.ServiceRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *ServiceRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceRequest), args.Error(1)
}

func (m *ServiceRequestRepository) List(ctx context.Context, filter domain.RequestFilter, params domain.PaginationParams) ([]domain.ServiceRequest, int64, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]domain.ServiceRequest), args.Get(1).(int64), args.Error(2)
}

func (m *ServiceRequestRepository) ListByUser(ctx context.Context, userID string) ([]domain.ServiceRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceRequest), args.Error(1)
}

func (m *ServiceRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) (*domain.ServiceRequest, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceRequest), args.Error(1)
}

func (m *ServiceRequestRepository) Stats(ctx context.Context) (*domain.RequestStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RequestStats), args.Error(1)
}
