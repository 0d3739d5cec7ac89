package domain

import "github.com/google/uuid"

// Form payloads are a tagged union keyed by ServiceType: each service declares
// its exact required fields so malformed shapes are rejected at the boundary
// instead of being stored as free-form maps.

type DirectPostingForm struct {
	FullName       string `json:"full_name" validate:"required,min=2"`
	StateCode      string `json:"state_code" validate:"required"`
	CallUpNumber   string `json:"call_up_number" validate:"required"`
	PhoneNumber    string `json:"phone_number" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	PreferredState string `json:"preferred_state" validate:"required"`
	PreferredLGA   string `json:"preferred_lga" validate:"required"`
	Reason         string `json:"reason" validate:"required"`
}

type RelocationForm struct {
	FullName     string `json:"full_name" validate:"required,min=2"`
	StateCode    string `json:"state_code" validate:"required"`
	CallUpNumber string `json:"call_up_number" validate:"required"`
	PhoneNumber  string `json:"phone_number" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	CurrentState string `json:"current_state" validate:"required"`
	DesiredState string `json:"desired_state" validate:"required"`
	Reason       string `json:"reason" validate:"required"`
}

// PPAChangeForm carries the ID of a previously uploaded letter of request;
// submission without one is rejected before a draft is created.
type PPAChangeForm struct {
	FullName         string    `json:"full_name" validate:"required,min=2"`
	StateCode        string    `json:"state_code" validate:"required"`
	PhoneNumber      string    `json:"phone_number" validate:"required"`
	Email            string    `json:"email" validate:"required,email"`
	CurrentPPA       string    `json:"current_ppa" validate:"required"`
	DesiredPPA       string    `json:"desired_ppa" validate:"required"`
	Reason           string    `json:"reason" validate:"required"`
	LetterDocumentID uuid.UUID `json:"letter_document_id" validate:"required"`
}

func (f DirectPostingForm) ContactName() string  { return f.FullName }
func (f DirectPostingForm) ContactEmail() string { return f.Email }
func (f DirectPostingForm) Destination() string  { return f.PreferredState }

func (f RelocationForm) ContactName() string  { return f.FullName }
func (f RelocationForm) ContactEmail() string { return f.Email }
func (f RelocationForm) Destination() string  { return f.DesiredState }

func (f PPAChangeForm) ContactName() string  { return f.FullName }
func (f PPAChangeForm) ContactEmail() string { return f.Email }
