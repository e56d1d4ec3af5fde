package models

import "time"

type PaymentMethod string

const (
	PaymentMethodUPI  PaymentMethod = "UPI"
	PaymentMethodCard PaymentMethod = "Card"
	PaymentMethodCOD  PaymentMethod = "COD"

	DefaultPaymentMethod = PaymentMethodCOD
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodUPI, PaymentMethodCard, PaymentMethodCOD:
		return true
	}

	return false
}

// CandidateProfile holds the customer's contact and shipping details. It is a
// single persisted record reused across checkouts.
type CandidateProfile struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

// Order is frozen at commit time. TotalAmount is the grand total rounded to
// cents; every other derived figure is recomputed from Items on read.
type Order struct {
	ID            int64            `json:"id" validate:"required,gt=0"`
	Items         []CartLine       `json:"items" validate:"dive"`
	Candidate     CandidateProfile `json:"candidate"`
	PaymentMethod PaymentMethod    `json:"paymentMethod"`
	TotalAmount   float64          `json:"totalAmount"`
	OrderDate     time.Time        `json:"orderDate"`
}

type OrderSummary struct {
	Index      int       `json:"index"`
	Order      Order     `json:"order"`
	Title      string    `json:"title"`
	ItemCount  int       `json:"itemCount"`
	Subtotal   float64   `json:"subtotal"`
	Discount   float64   `json:"discount"`
	GrandTotal float64   `json:"grandTotal"`
	OrderDate  time.Time `json:"orderDate"`
}

type SaveCandidateRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

type SelectPaymentRequest struct {
	PaymentMethod PaymentMethod `json:"paymentMethod" validate:"required,oneof=UPI Card COD"`
}
