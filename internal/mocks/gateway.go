package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nysc-services/internal/domain"
)

type Gateway struct {
	mock.Mock
}

func (m *Gateway) Charge(ctx context.Context, req domain.ChargeRequest) (domain.ChargeResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.ChargeResult), args.Error(1)
}
