package domain

import (
	"encoding/json"
	"time"
)

// Draft is the single in-flight, uncommitted request of one client session.
// It lives in Redis keyed by session ID, survives reloads between the form
// step and the payment step, and is cleared only after a confirmed commit.
type Draft struct {
	Service       ServiceType     `json:"service"`
	Amount        int64           `json:"amount"`
	DisplayPrice  string          `json:"display_price"`
	FormData      json.RawMessage `json:"form_data"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CreatedAt     time.Time       `json:"created_at"`
}
