// Package pricing computes cart and order totals. Arithmetic is done in
// decimal so that order creation and order display round identically.
package pricing

import (
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/shopspring/decimal"
)

const centsPlaces = 2

var hundred = decimal.NewFromInt(100)

type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	Discount   float64 `json:"discount"`
	GrandTotal float64 `json:"grandTotal"`
}

// Subtotal is the undiscounted sum of price x quantity, unrounded.
func Subtotal(lines []models.CartLine) float64 {
	return gross(lines).InexactFloat64()
}

// Compute returns subtotal, discount and grand total rounded to cents.
// GrandTotal = sum(p*q) - sum(p*q*d/100).
func Compute(lines []models.CartLine) Totals {
	sub := gross(lines)
	disc := discount(lines)

	return Totals{
		Subtotal:   sub.Round(centsPlaces).InexactFloat64(),
		Discount:   disc.Round(centsPlaces).InexactFloat64(),
		GrandTotal: sub.Sub(disc).Round(centsPlaces).InexactFloat64(),
	}
}

// GrandTotal is the figure frozen into Order.TotalAmount.
func GrandTotal(lines []models.CartLine) float64 {
	return Compute(lines).GrandTotal
}

func Round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(centsPlaces).InexactFloat64()
}

func gross(lines []models.CartLine) decimal.Decimal {
	total := decimal.Zero

	for _, l := range lines {
		total = total.Add(lineAmount(l))
	}

	return total
}

func discount(lines []models.CartLine) decimal.Decimal {
	total := decimal.Zero

	for _, l := range lines {
		pct := decimal.NewFromFloat(l.DiscountPercentage)
		total = total.Add(lineAmount(l).Mul(pct).Div(hundred))
	}

	return total
}

func lineAmount(l models.CartLine) decimal.Decimal {
	return decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity)))
}
