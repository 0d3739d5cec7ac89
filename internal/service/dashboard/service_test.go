package dashboard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"nysc-services/internal/domain"
	"nysc-services/internal/mocks"
	"nysc-services/internal/service/dashboard"
)

func TestDashboardService_GetStats(t *testing.T) {
	ctx := context.Background()
	mockRequests := new(mocks.ServiceRequestRepository)
	svc := dashboard.NewService(mockRequests, nil)

	stats := &domain.RequestStats{
		Total:               5,
		Pending:             1,
		PendingVerification: 1,
		Approved:            2,
		Rejected:            1,
		Revenue:             220000,
	}
	mockRequests.On("Stats", ctx).Return(stats, nil).Once()

	got, err := svc.GetStats(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(220000), got.Revenue)
	assert.Equal(t, int64(5), got.Total)
	mockRequests.AssertExpectations(t)
}
