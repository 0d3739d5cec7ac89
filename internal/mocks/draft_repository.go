package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nysc-services/internal/domain"
)

type DraftRepository struct {
	mock.Mock
}

func (m *DraftRepository) Save(ctx context.Context, sessionID string, draft *domain.Draft) error {
	args := m.Called(ctx, sessionID, draft)
	return args.Error(0)
}

func (m *DraftRepository) Load(ctx context.Context, sessionID string) (*domain.Draft, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Draft), args.Error(1)
}

func (m *DraftRepository) Clear(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
