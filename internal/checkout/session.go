package checkout

import (
	"maps"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/pricing"
)

// Redirect tells the client where to go once the success notice has been
// shown.
type Redirect struct {
	To    string        `json:"to"`
	After time.Duration `json:"-"`
	// Seconds mirrors After for JSON clients.
	Seconds float64 `json:"afterSeconds"`
}

// Session is one pass through the checkout pipeline.
type Session struct {
	ID            string                  `json:"id"`
	Mode          Mode                    `json:"mode"`
	State         State                   `json:"state"`
	Items         []models.CartLine       `json:"items"`
	Totals        pricing.Totals          `json:"totals"`
	Candidate     models.CandidateProfile `json:"candidate"`
	Editing       bool                    `json:"editing"`
	FieldErrors   map[string]string       `json:"fieldErrors,omitempty"`
	PaymentMethod models.PaymentMethod    `json:"paymentMethod"`
	Order         *models.Order           `json:"order,omitempty"`
	Redirect      *Redirect               `json:"redirect,omitempty"`
	CreatedAt     time.Time               `json:"createdAt"`
	UpdatedAt     time.Time               `json:"updatedAt"`
}

// Snapshot returns a copy that shares no slices or maps with s.
func (s *Session) Snapshot() Session {
	out := *s

	out.Items = append([]models.CartLine(nil), s.Items...)

	out.FieldErrors = maps.Clone(s.FieldErrors)

	if s.Order != nil {
		order := *s.Order
		out.Order = &order
	}

	if s.Redirect != nil {
		redirect := *s.Redirect
		out.Redirect = &redirect
	}

	return out
}

func (s *Session) setItems(items []models.CartLine) {
	s.Items = items
	s.Totals = pricing.Compute(items)
}

func (s *Session) editProfile(fields map[string]string) {
	s.State = StateProfileReview
	s.Editing = true
	s.FieldErrors = fields
}

func (s *Session) reviewProfile(p models.CandidateProfile) {
	s.Candidate = p
	s.State = StatePaymentSelect
	s.Editing = false
	s.FieldErrors = nil
}
