// Package checkout validates customer details and turns a cart snapshot
// into the outbound order link.
package checkout

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/vxxious/aunty-burger/internal/cart"
	"github.com/vxxious/aunty-burger/internal/whatsapp"
)

// Field length bounds for the order form. Name, phone, and address are
// trimmed before checking; notes are optional and checked as-is.
const (
	minNameLen    = 2
	maxNameLen    = 100
	minPhoneLen   = 10
	maxPhoneLen   = 20
	minAddressLen = 5
	maxAddressLen = 300
	maxNotesLen   = 500
)

// FieldErrors maps a field name to its validation message, one message
// per invalid field.
type FieldErrors map[string]string

// Error implements error over the field map.
func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for name := range f {
		fields = append(fields, name)
	}
	return "invalid fields: " + strings.Join(fields, ", ")
}

// ErrEmptyCart rejects checkout of a cart with no lines.
var ErrEmptyCart = errors.New("cart is empty")

// Validate trims name, phone, and address, checks all field bounds, and
// returns the trimmed details. On failure the FieldErrors carry one
// message per invalid field and the details are unusable.
func Validate(details whatsapp.CustomerDetails) (whatsapp.CustomerDetails, FieldErrors) {
	details.Name = strings.TrimSpace(details.Name)
	details.Phone = strings.TrimSpace(details.Phone)
	details.Address = strings.TrimSpace(details.Address)

	errs := FieldErrors{}
	switch n := len([]rune(details.Name)); {
	case n < minNameLen:
		errs["name"] = "Name must be at least 2 characters"
	case n > maxNameLen:
		errs["name"] = "Name too long"
	}
	switch n := len([]rune(details.Phone)); {
	case n < minPhoneLen:
		errs["phone"] = "Please enter a valid phone number"
	case n > maxPhoneLen:
		errs["phone"] = "Phone number too long"
	}
	switch n := len([]rune(details.Address)); {
	case n < minAddressLen:
		errs["address"] = "Please enter a valid delivery address"
	case n > maxAddressLen:
		errs["address"] = "Address too long"
	}
	if len([]rune(details.Notes)) > maxNotesLen {
		errs["notes"] = "Notes too long"
	}

	if len(errs) > 0 {
		return whatsapp.CustomerDetails{}, errs
	}
	return details, nil
}

// Service produces order deep links for the business's WhatsApp number.
type Service struct {
	number string
}

// NewService takes the business WhatsApp number as bare international
// digits.
func NewService(number string) *Service {
	return &Service{number: number}
}

// QuickOrder returns the blank-template deep link for the cart. The
// customer fills their details inside WhatsApp.
func (s *Service) QuickOrder(snap cart.Snapshot) (string, error) {
	if len(snap.Lines) == 0 {
		return "", ErrEmptyCart
	}
	return whatsapp.BuildURL(s.number, snap.Lines, snap.TotalPrice), nil
}

// PlaceOrder validates the customer details and returns the filled-details
// deep link for the cart. A FieldErrors value is returned as the error
// when validation fails.
func (s *Service) PlaceOrder(snap cart.Snapshot, details whatsapp.CustomerDetails) (string, error) {
	if len(snap.Lines) == 0 {
		return "", ErrEmptyCart
	}
	valid, errs := Validate(details)
	if errs != nil {
		return "", errs
	}
	return whatsapp.BuildURLWithDetails(s.number, snap.Lines, snap.TotalPrice, valid), nil
}
