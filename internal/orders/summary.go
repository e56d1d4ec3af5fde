package orders

import (
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/pricing"
)

const untitledProduct = "Untitled Product"

// Summarize recomputes the totals of order from its items. The result uses
// the same rounding as Order.TotalAmount.
func Summarize(index int, order models.Order) models.OrderSummary {

	totals := pricing.Compute(order.Items)

	title := untitledProduct
	if len(order.Items) > 0 {
		title = ShortTitle(order.Items[0].Title)
	}

	return models.OrderSummary{
		Index:      index,
		Order:      order,
		Title:      title,
		ItemCount:  len(order.Items),
		Subtotal:   totals.Subtotal,
		Discount:   totals.Discount,
		GrandTotal: totals.GrandTotal,
		OrderDate:  order.OrderDate,
	}
}

// Summaries lists every order that has items. Index is the ledger position,
// so skipped orders leave gaps.
func Summaries(orders []models.Order) []models.OrderSummary {
	out := make([]models.OrderSummary, 0, len(orders))

	for i, o := range orders {
		if len(o.Items) == 0 {
			continue
		}
		out = append(out, Summarize(i, o))
	}

	return out
}

// ShortTitle keeps the first two words and appends "..." when there are at
// least three.
func ShortTitle(title string) string {
	words := strings.Fields(title)

	switch {
	case len(words) == 0:
		return untitledProduct
	case len(words) >= 3:
		return words[0] + " " + words[1] + "..."
	default:
		return strings.Join(words, " ")
	}
}
