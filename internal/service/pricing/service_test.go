package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nysc-services/internal/domain"
	"nysc-services/internal/service/pricing"
)

func TestPricingService_Quote(t *testing.T) {
	svc := pricing.NewService()

	tests := []struct {
		name        string
		service     domain.ServiceType
		state       string
		wantAmount  int64
		wantDisplay string
	}{
		{"Direct Posting to Lagos", domain.ServiceDirectPosting, "Lagos", 150000, "₦150,000"},
		{"Direct Posting to FCT", domain.ServiceDirectPosting, "FCT", 150000, "₦150,000"},
		{"Direct Posting to Kano", domain.ServiceDirectPosting, "Kano", 70000, "₦70,000"},
		{"Relocation to Lagos", domain.ServiceRelocation, "Lagos", 150000, "₦150,000"},
		{"Relocation to Rivers", domain.ServiceRelocation, "Rivers", 70000, "₦70,000"},
		{"PPA Change is flat regardless of state", domain.ServicePPAChange, "Lagos", 30000, "₦30,000"},
		{"PPA Change with no state", domain.ServicePPAChange, "", 30000, "₦30,000"},
		{"State-priced service with no state", domain.ServiceDirectPosting, "", 0, "₦0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := svc.Quote(tt.service, tt.state)
			assert.Equal(t, tt.wantAmount, quote.Amount)
			assert.Equal(t, tt.wantDisplay, quote.DisplayPrice)
		})
	}
}

func TestPricingService_SameDestinationSamePrice(t *testing.T) {
	svc := pricing.NewService()

	// Direct Posting and Relocation share one price table.
	for _, state := range svc.States() {
		dp := svc.Quote(domain.ServiceDirectPosting, state)
		rl := svc.Quote(domain.ServiceRelocation, state)
		assert.Equal(t, dp.Amount, rl.Amount, "state %s", state)
	}
}

func TestPricingService_PremiumStates(t *testing.T) {
	svc := pricing.NewService()

	assert.True(t, svc.IsPremiumState("Lagos"))
	assert.True(t, svc.IsPremiumState("FCT"))
	assert.False(t, svc.IsPremiumState("Kano"))

	// Matching is exact; lookalike values are not premium.
	assert.False(t, svc.IsPremiumState("lagos"))
	assert.False(t, svc.IsPremiumState("Lagos "))
}

func TestPricingService_IsKnownState(t *testing.T) {
	svc := pricing.NewService()

	assert.True(t, svc.IsKnownState("Anambra"))
	assert.True(t, svc.IsKnownState("FCT"))
	assert.False(t, svc.IsKnownState("Atlantis"))
	assert.False(t, svc.IsKnownState(""))

	assert.Len(t, svc.States(), 37)
}

func TestFormatNaira(t *testing.T) {
	assert.Equal(t, "₦0", pricing.FormatNaira(0))
	assert.Equal(t, "₦999", pricing.FormatNaira(999))
	assert.Equal(t, "₦30,000", pricing.FormatNaira(30000))
	assert.Equal(t, "₦150,000", pricing.FormatNaira(150000))
	assert.Equal(t, "₦1,234,567", pricing.FormatNaira(1234567))
	assert.Equal(t, "-₦150,000", pricing.FormatNaira(-150000))
	assert.Equal(t, "-₦999", pricing.FormatNaira(-999))
}
