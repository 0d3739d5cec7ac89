package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendTransferReceived(ctx context.Context, toEmail, fullName, serviceName, reference string) error {
	args := m.Called(ctx, toEmail, fullName, serviceName, reference)
	return args.Error(0)
}

func (m *EmailService) SendStatusUpdate(ctx context.Context, toEmail, fullName, serviceName, status string) error {
	args := m.Called(ctx, toEmail, fullName, serviceName, status)
	return args.Error(0)
}
