package export_test

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"nysc-services/internal/domain"
	"nysc-services/internal/mocks"
	"nysc-services/internal/service/export"
)

func TestExportService_ExportCSV(t *testing.T) {
	ctx := context.Background()
	mockRequests := new(mocks.ServiceRequestRepository)
	svc := export.NewService(mockRequests)

	requests := []domain.ServiceRequest{
		{
			ID:               uuid.New(),
			Service:          domain.ServicePPAChange,
			Amount:           30000,
			CustomerName:     "Ada Obi",
			CustomerEmail:    "ada@example.com",
			PaymentMethod:    domain.PaymentBankTransfer,
			PaymentReference: "TRX-9001",
			Status:           domain.StatusPendingVerification,
			CreatedAt:        time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
		},
	}

	mockRequests.On("List", ctx, mock.Anything, mock.Anything).Return(requests, int64(1), nil).Once()

	data, err := svc.ExportCSV(ctx, domain.RequestFilter{})

	assert.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "service", records[0][1])
	assert.Equal(t, "PPA Change", records[1][1])
	assert.Equal(t, "30000", records[1][2])
	assert.Equal(t, "pending_verification", records[1][7])
	mockRequests.AssertExpectations(t)
}
