package domain

// ChargeRequest is the shape the core hands to the payment gateway. The core
// depends on this contract only, not on the gateway's transport.
type ChargeRequest struct {
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	CustomerName  string `json:"customer_name"`
	Narrative     string `json:"narrative"`
	TxRef         string `json:"tx_ref"`
}

type ChargeResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// BankTransferDetails are the static remittance credentials shown on the
// manual-transfer path.
type BankTransferDetails struct {
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	SortCode      string `json:"sort_code"`
}

type CheckoutInput struct {
	FullName    string `json:"full_name" validate:"required,min=2"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

type StartTransferInput struct {
	FullName string `json:"full_name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
}

type ConfirmTransferInput struct {
	TransactionID string `json:"transaction_id" validate:"required"`
}
