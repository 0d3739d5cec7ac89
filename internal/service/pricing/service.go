package pricing

import (
	"strconv"

	"nysc-services/internal/domain"
)

// Fees are naira figures fixed by the product, not derived from anything.
const (
	PremiumFee   int64 = 150000
	StandardFee  int64 = 70000
	PPAChangeFee int64 = 30000
)

// NigerianStates is the closed catalog of destinations: the 36 states plus
// the Federal Capital Territory.
var NigerianStates = []string{
	"Abia", "Adamawa", "Akwa Ibom", "Anambra", "Bauchi", "Bayelsa", "Benue",
	"Borno", "Cross River", "Delta", "Ebonyi", "Edo", "Ekiti", "Enugu", "FCT",
	"Gombe", "Imo", "Jigawa", "Kaduna", "Kano", "Katsina", "Kebbi", "Kogi",
	"Kwara", "Lagos", "Nasarawa", "Niger", "Ogun", "Ondo", "Osun", "Oyo",
	"Plateau", "Rivers", "Sokoto", "Taraba", "Yobe", "Zamfara",
}

// premiumStates attract the higher fee for state-priced services.
// Matching is by exact catalog value.
var premiumStates = map[string]bool{
	"Lagos": true,
	"FCT":   true,
}

type Quote struct {
	Amount       int64  `json:"amount"`
	DisplayPrice string `json:"display_price"`
}

// Service resolves a service fee from (service, destination state). Pure and
// deterministic; no I/O.
type Service interface {
	Quote(service domain.ServiceType, state string) Quote
	IsPremiumState(state string) bool
	IsKnownState(state string) bool
	States() []string
}

type service struct{}

func NewService() Service {
	return &service{}
}

// Quote returns the fee for the chosen destination. A zero amount signals an
// incomplete form (no destination chosen for a state-priced service); callers
// must block submission on it.
func (s *service) Quote(svc domain.ServiceType, state string) Quote {
	if svc == domain.ServicePPAChange {
		return Quote{Amount: PPAChangeFee, DisplayPrice: FormatNaira(PPAChangeFee)}
	}

	if state == "" {
		return Quote{Amount: 0, DisplayPrice: FormatNaira(0)}
	}

	amount := StandardFee
	if premiumStates[state] {
		amount = PremiumFee
	}
	return Quote{Amount: amount, DisplayPrice: FormatNaira(amount)}
}

func (s *service) IsPremiumState(state string) bool {
	return premiumStates[state]
}

func (s *service) IsKnownState(state string) bool {
	for _, known := range NigerianStates {
		if known == state {
			return true
		}
	}
	return false
}

func (s *service) States() []string {
	out := make([]string, len(NigerianStates))
	copy(out, NigerianStates)
	return out
}

// FormatNaira renders an amount as a display price with thousand separators,
// e.g. 150000 -> "₦150,000".
func FormatNaira(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	return sign + "₦" + string(out)
}
