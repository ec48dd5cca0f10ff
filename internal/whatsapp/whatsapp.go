// Package whatsapp builds the outbound order messages and the wa.me deep
// links that hand a cart off to the business's WhatsApp number. Everything
// here is a pure function of its inputs: the same cart and customer
// details always produce byte-identical output.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/vxxious/aunty-burger/internal/cart"
	"github.com/vxxious/aunty-burger/internal/money"
)

// BaseURL is the WhatsApp click-to-chat endpoint. The business number is
// appended as bare international digits.
const BaseURL = "https://wa.me/"

// CustomerDetails are the delivery fields collected by the order form.
// Notes is optional and omitted from the message when empty.
type CustomerDetails struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes,omitempty"`
}

// BuildMessage renders the quick-order template: numbered lines with
// per-line subtotals, the grand total, and blank customer fields plus a
// payment checklist for the customer to fill in inside WhatsApp. An empty
// cart still yields a valid message with a zero total.
func BuildMessage(lines []cart.Line, total int64) string {
	parts := []string{
		"*Order from Aunty Burgers*",
		"",
		"*Order Details:*",
	}
	for i, l := range lines {
		parts = append(parts, fmt.Sprintf("%d. %s x%d - %s", i+1, l.Item.Name, l.Quantity, money.Format(l.Subtotal())))
	}
	parts = append(parts,
		"",
		"*Total: "+money.Format(total)+"*",
		"",
		"*Please fill in your details:*",
		"Name: ",
		"Phone: ",
		"Address: ",
		"",
		"*Payment Option:*",
		"[ ] Cash on Delivery",
		"[ ] Card on Delivery",
		"[ ] Bank Transfer",
		"",
		"*Additional Notes:*",
		"",
	)
	return strings.Join(parts, "\n")
}

// BuildMessageWithDetails renders the checkout template with the
// customer's details already substituted. Lines carry no per-line
// subtotal, payment is a bank-transfer instruction, and the notes section
// appears only when notes are non-empty. Empty segments are dropped
// outright, so this mode contains no blank lines.
func BuildMessageWithDetails(lines []cart.Line, total int64, customer CustomerDetails) string {
	parts := []string{
		"*Order for Aunty Burger*",
		"",
		"*Order Summary*",
	}
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%s x%d", l.Item.Name, l.Quantity))
	}
	parts = append(parts,
		"",
		"*Total: "+money.Format(total)+"*",
		"",
		"*Customer Details*",
		"Name: "+customer.Name,
		"Phone: "+customer.Phone,
		"Delivery Address: "+customer.Address,
		"",
		"*Payment*",
		"Please send bank account details for transfer",
		"",
	)
	if customer.Notes != "" {
		parts = append(parts, "*Additional Notes*\n"+customer.Notes)
	}
	return strings.Join(compact(parts), "\n")
}

// BuildURL wraps the quick-order template in a deep link to the given
// business number.
func BuildURL(number string, lines []cart.Line, total int64) string {
	return link(number, BuildMessage(lines, total))
}

// BuildURLWithDetails wraps the checkout template in a deep link to the
// given business number.
func BuildURLWithDetails(number string, lines []cart.Line, total int64, customer CustomerDetails) string {
	return link(number, BuildMessageWithDetails(lines, total, customer))
}

// ContactURL builds the deep link for the contact form, a free-form
// message rather than an order.
func ContactURL(number, name, email, phone, body string) string {
	msg := strings.Join([]string{
		"Hello Aunty Burgers",
		"",
		"Name: " + name,
		"Email: " + email,
		"Phone: " + phone,
		"",
		"Message: " + body,
	}, "\n")
	return link(number, msg)
}

// ChatURL is the bare click-to-chat link with no prefilled text, used by
// the floating WhatsApp button.
func ChatURL(number string) string {
	return BaseURL + number
}

func link(number, message string) string {
	return BaseURL + number + "?text=" + encode(message)
}

// encode percent-encodes the message for the text query parameter.
// QueryEscape emits "+" for spaces; WhatsApp renders the parameter after
// plain percent-decoding, so spaces are rewritten to %20. Newlines become
// %0A and the result carries no literal whitespace or control characters.
func encode(message string) string {
	return strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}

// compact drops empty strings, preserving order.
func compact(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
