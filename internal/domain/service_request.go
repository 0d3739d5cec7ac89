package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ServiceRequest is a committed, paid-for (or payment-reported) application.
// Drafts held before a payment attempt are not ServiceRequests and have no ID.
type ServiceRequest struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	UserID           string          `json:"user_id" db:"user_id"`
	Service          ServiceType     `json:"service" db:"service"`
	Amount           int64           `json:"amount" db:"amount"`
	FormData         json.RawMessage `json:"form_data" db:"form_data"`
	CustomerName     string          `json:"customer_name" db:"customer_name"`
	CustomerEmail    string          `json:"customer_email" db:"customer_email"`
	PaymentMethod    PaymentMethod   `json:"payment_method" db:"payment_method"`
	PaymentReference string          `json:"payment_reference" db:"payment_reference"`
	Status           RequestStatus   `json:"status" db:"status"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

type ServiceType string

const (
	ServiceDirectPosting ServiceType = "Direct Posting"
	ServiceRelocation    ServiceType = "Relocation"
	ServicePPAChange     ServiceType = "PPA Change"
)

func (s ServiceType) IsValid() bool {
	switch s {
	case ServiceDirectPosting, ServiceRelocation, ServicePPAChange:
		return true
	default:
		return false
	}
}

type PaymentMethod string

const (
	PaymentGateway      PaymentMethod = "gateway"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

type RequestStatus string

const (
	StatusPending             RequestStatus = "pending"
	StatusPendingVerification RequestStatus = "pending_verification"
	StatusApproved            RequestStatus = "approved"
	StatusRejected            RequestStatus = "rejected"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPendingVerification, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition may leave s.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransitionTo reports whether s -> target is a legal lifecycle move.
// Both admin dispositions are reachable from either pending state; terminal
// states accept nothing.
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	if s.IsTerminal() {
		return false
	}
	return target == StatusApproved || target == StatusRejected
}

// RequestFilter narrows admin listings. Zero values mean "all"; Search is a
// case-insensitive substring over customer name, email, service and payment
// reference. Filters compose with AND.
type RequestFilter struct {
	Search  string         `query:"search"`
	Status  *RequestStatus `query:"status"`
	Service *ServiceType   `query:"service"`
}

// RequestStats backs the admin dashboard counters. Revenue sums amount over
// approved requests only.
type RequestStats struct {
	Total               int64 `json:"total" db:"total"`
	Pending             int64 `json:"pending" db:"pending"`
	PendingVerification int64 `json:"pending_verification" db:"pending_verification"`
	Approved            int64 `json:"approved" db:"approved"`
	Rejected            int64 `json:"rejected" db:"rejected"`
	Revenue             int64 `json:"revenue" db:"revenue"`
}
