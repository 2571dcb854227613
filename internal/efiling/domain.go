package efiling

import (
	"errors"
	"time"
)

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
)

var (
	ErrDraftNotFound    = errors.New("e-filing draft not found")
	ErrAlreadySubmitted = errors.New("e-filing draft already submitted")
)

// Draft is the state of one e-filing wizard session. Drafts are transient
// and expire; submission is simulated and never reaches a real court system.
type Draft struct {
	DraftID       string         `json:"draft_id"`
	UserID        string         `json:"user_id"`
	CaseID        string         `json:"case_id"`
	Court         string         `json:"court"`
	FilingType    string         `json:"filing_type"`
	Plaintiff     string         `json:"plaintiff"`
	Defendant     string         `json:"defendant"`
	Step          int            `json:"step"`
	Payload       map[string]any `json:"payload,omitempty"`
	Status        string         `json:"status"`
	ReceiptNumber string         `json:"receipt_number,omitempty"`
	SubmittedAt   *time.Time     `json:"submitted_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
