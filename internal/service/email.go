package service

import (
	"fmt"
	"html"
	"strings"

	"webshop-backend/internal/client"
	"webshop-backend/internal/model"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// formatMoney renders a minor-unit amount the way the storefront shows
// prices. Unknown currency codes fall back to a plain "289.00 EUR" form.
func formatMoney(amountCents int64, cur string) string {
	if amountCents == 0 || cur == "" {
		return ""
	}

	amount := float64(amountCents) / 100
	normalized := strings.ToUpper(cur)

	unit, err := currency.ParseISO(normalized)
	if err != nil {
		return fmt.Sprintf("%.2f %s", amount, normalized)
	}

	p := message.NewPrinter(language.Dutch)
	return p.Sprintf("%v", currency.NarrowSymbol(unit.Amount(amount)))
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

type PaidEmailInput struct {
	Name        string
	Email       string
	Phone       string
	AddressLine string
	ProductName string
	AmountCents int64
	Currency    string
	ReceiptURL  string
}

// BuildPaidEmail assembles the receipt email. The caller fills in To.
func BuildPaidEmail(in *PaidEmailInput) *client.Email {
	amount := formatMoney(in.AmountCents, in.Currency)

	lines := []string{
		"Thank you for your payment!",
		"",
		"Product: " + orDash(in.ProductName),
	}
	if amount != "" {
		lines = append(lines, "Amount: "+amount)
	}
	lines = append(lines,
		"Name: "+orDash(in.Name),
		"Phone: "+orDash(in.Phone),
		"Email: "+orDash(in.Email),
		"Address: "+orDash(in.AddressLine),
	)
	if in.ReceiptURL != "" {
		lines = append(lines, "Receipt: "+in.ReceiptURL)
	}
	lines = append(lines, "", "If you have any questions, just reply to this email.")

	var b strings.Builder
	b.WriteString(`<div style="font-family:Arial,sans-serif;line-height:1.5;color:#111;">`)
	b.WriteString(`<h2 style="margin:0 0 12px;">Thank you for your payment!</h2>`)
	b.WriteString(`<p style="margin:0 0 12px;">Your order details:</p>`)
	b.WriteString(`<ul style="padding-left:18px;margin:0 0 12px;">`)
	b.WriteString("<li><strong>Product:</strong> " + html.EscapeString(orDash(in.ProductName)) + "</li>")
	if amount != "" {
		b.WriteString("<li><strong>Amount:</strong> " + html.EscapeString(amount) + "</li>")
	}
	b.WriteString("<li><strong>Name:</strong> " + html.EscapeString(orDash(in.Name)) + "</li>")
	b.WriteString("<li><strong>Phone:</strong> " + html.EscapeString(orDash(in.Phone)) + "</li>")
	b.WriteString("<li><strong>Email:</strong> " + html.EscapeString(orDash(in.Email)) + "</li>")
	b.WriteString("<li><strong>Address:</strong> " + html.EscapeString(orDash(in.AddressLine)) + "</li>")
	if in.ReceiptURL != "" {
		b.WriteString(`<li><strong>Receipt:</strong> <a href="` + html.EscapeString(in.ReceiptURL) + `">View</a></li>`)
	}
	b.WriteString("</ul>")
	b.WriteString(`<p style="margin:0;">If you have any questions, just reply to this email.</p>`)
	b.WriteString("</div>")

	return &client.Email{
		Subject: "Your receipt and order details",
		Text:    strings.Join(lines, "\n"),
		HTML:    b.String(),
	}
}

type AbandonedEmailInput struct {
	Name        string
	ProductName string
	ContinueURL string
}

func BuildAbandonedEmail(in *AbandonedEmailInput) *client.Email {
	lines := []string{
		"Your order has not been completed yet.",
		"",
		"Product: " + orDash(in.ProductName),
		"Continue here: " + in.ContinueURL,
		"",
		"If you did not place this order, just ignore this email.",
	}

	var b strings.Builder
	b.WriteString(`<div style="font-family:Arial,sans-serif;line-height:1.5;color:#111;">`)
	if in.Name != "" {
		b.WriteString(`<p style="margin:0 0 12px;">Hi ` + html.EscapeString(in.Name) + `!</p>`)
	}
	b.WriteString(`<p style="margin:0 0 12px;">Your order has not been completed yet.</p>`)
	b.WriteString(`<p style="margin:0 0 12px;"><strong>Product:</strong> ` + html.EscapeString(orDash(in.ProductName)) + `</p>`)
	b.WriteString(`<p style="margin:0 0 16px;">To continue, follow this link:</p>`)
	safeURL := html.EscapeString(in.ContinueURL)
	b.WriteString(`<p style="margin:0 0 16px;"><a href="` + safeURL + `">` + safeURL + `</a></p>`)
	b.WriteString(`<p style="margin:0;">If you did not place this order, just ignore this email.</p>`)
	b.WriteString("</div>")

	return &client.Email{
		Subject: "Unfinished order",
		Text:    strings.Join(lines, "\n"),
		HTML:    b.String(),
	}
}

// BuildOperatorAlert summarizes a settled order for the operator chat.
func BuildOperatorAlert(o *model.Order) string {
	lines := []string{
		"New paid order",
		"Product: " + orDash(o.ProductName),
	}
	if amount := formatMoney(o.AmountCents, o.Currency); amount != "" {
		lines = append(lines, "Amount: "+amount)
	}
	lines = append(lines,
		"Name: "+orDash(o.FullName),
		"Phone: "+orDash(o.Phone),
		"Email: "+orDash(o.Email),
		"Address: "+orDash(strings.TrimSpace(strings.Join(nonEmpty(o.Address1, o.Postcode, o.City), ", "))),
	)

	return strings.Join(lines, "\n")
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
