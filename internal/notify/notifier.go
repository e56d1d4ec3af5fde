// Package notify sends the order confirmation mail. Delivery is best-effort:
// callers log failures and never roll back an order because of them.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	textTemplate "text/template"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/orders"
	"github.com/aaravmahajanofficial/storefront/internal/pricing"
)

type Notifier interface {
	OrderPlaced(ctx context.Context, order models.Order) error
}

// New returns a SendGrid-backed notifier, or a no-op one when no API key is
// configured.
func New(cfg *config.SendGrid) Notifier {
	if !cfg.Enabled() {
		slog.Info("Order confirmation mail disabled")
		return Noop{}
	}

	return NewOrderNotifier(NewEmailService(cfg.APIKey, cfg.FromEmail, cfg.FromName))
}

type Noop struct{}

func (Noop) OrderPlaced(context.Context, models.Order) error { return nil }

type orderNotifier struct {
	email EmailService
}

func NewOrderNotifier(email EmailService) Notifier {
	return &orderNotifier{email: email}
}

func (n *orderNotifier) OrderPlaced(ctx context.Context, order models.Order) error {

	if order.Candidate.Email == "" {
		return nil
	}

	msg, err := ConfirmationMessage(order)
	if err != nil {
		return err
	}

	return n.email.Send(ctx, msg)
}

type confirmationData struct {
	Order  models.Order
	Title  string
	Totals pricing.Totals
}

const textBody = `Hi {{.Order.Candidate.Name}},

Thanks for your order #{{.Order.ID}} ({{.Title}}).
{{range .Order.Items}}
- {{.Title}} x{{.Quantity}} = {{printf "%.2f" .LineTotal}}{{end}}

Subtotal: {{printf "%.2f" .Totals.Subtotal}}
Discount: {{printf "%.2f" .Totals.Discount}}
Total:    {{printf "%.2f" .Order.TotalAmount}}
Payment:  {{.Order.PaymentMethod}}

Shipping to: {{.Order.Candidate.Address}}
`

const htmlBody = `<h2>Thanks for your order, {{.Order.Candidate.Name}}</h2>
<p>Order #{{.Order.ID}}</p>
<ul>{{range .Order.Items}}<li>{{.Title}} &times; {{.Quantity}} = {{printf "%.2f" .LineTotal}}</li>{{end}}</ul>
<p>Total: <strong>{{printf "%.2f" .Order.TotalAmount}}</strong> ({{.Order.PaymentMethod}})</p>
<p>Shipping to: {{.Order.Candidate.Address}}</p>
`

var (
	textTmpl = textTemplate.Must(textTemplate.New("text").Parse(textBody))
	htmlTmpl = template.Must(template.New("html").Parse(htmlBody))
)

// ConfirmationMessage renders the confirmation mail for order.
func ConfirmationMessage(order models.Order) (*Message, error) {

	data := confirmationData{
		Order:  order,
		Title:  orders.ShortTitle(firstTitle(order)),
		Totals: pricing.Compute(order.Items),
	}

	var text, html bytes.Buffer

	if err := textTmpl.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("failed to render confirmation text: %w", err)
	}

	if err := htmlTmpl.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render confirmation html: %w", err)
	}

	return &Message{
		To:          order.Candidate.Email,
		ToName:      order.Candidate.Name,
		Subject:     fmt.Sprintf("Order #%d confirmed", order.ID),
		Content:     text.String(),
		HTMLContent: html.String(),
	}, nil
}

func firstTitle(order models.Order) string {
	if len(order.Items) == 0 {
		return ""
	}

	return order.Items[0].Title
}
