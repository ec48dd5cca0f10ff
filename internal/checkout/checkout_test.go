package checkout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vxxious/aunty-burger/internal/cart"
	"github.com/vxxious/aunty-burger/internal/catalog"
	"github.com/vxxious/aunty-burger/internal/whatsapp"
)

func validDetails() whatsapp.CustomerDetails {
	return whatsapp.CustomerDetails{
		Name:    "Jane Doe",
		Phone:   "08012345678",
		Address: "12 Gana Street, Maitama",
	}
}

func snapshotWithLines() cart.Snapshot {
	c := cart.New()
	c.Add(catalog.Item{ID: "regular-cheese-burger", Name: "Regular Cheese Burger", Price: 4000})
	c.Add(catalog.Item{ID: "regular-cheese-burger", Name: "Regular Cheese Burger", Price: 4000})
	c.Add(catalog.Item{ID: "wings-5pcs", Name: "Chicken Wings (Pack of 5)", Price: 3000})
	return c.Snapshot()
}

func TestValidateAccepts(t *testing.T) {
	got, errs := Validate(validDetails())
	require.Nil(t, errs)
	assert.Equal(t, validDetails(), got)
}

func TestValidateTrims(t *testing.T) {
	got, errs := Validate(whatsapp.CustomerDetails{
		Name:    "  Jane Doe  ",
		Phone:   " 08012345678 ",
		Address: "\t12 Gana Street, Maitama\n",
		Notes:   "Ring the bell",
	})
	require.Nil(t, errs)
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "08012345678", got.Phone)
	assert.Equal(t, "12 Gana Street, Maitama", got.Address)
	assert.Equal(t, "Ring the bell", got.Notes)
}

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*whatsapp.CustomerDetails)
		field   string
		message string
	}{
		{"name too short", func(d *whatsapp.CustomerDetails) { d.Name = "J" }, "name", "Name must be at least 2 characters"},
		{"name whitespace only", func(d *whatsapp.CustomerDetails) { d.Name = "   " }, "name", "Name must be at least 2 characters"},
		{"name too long", func(d *whatsapp.CustomerDetails) { d.Name = strings.Repeat("a", 101) }, "name", "Name too long"},
		{"phone too short", func(d *whatsapp.CustomerDetails) { d.Phone = "080123" }, "phone", "Please enter a valid phone number"},
		{"phone too long", func(d *whatsapp.CustomerDetails) { d.Phone = strings.Repeat("0", 21) }, "phone", "Phone number too long"},
		{"address too short", func(d *whatsapp.CustomerDetails) { d.Address = "Abj" }, "address", "Please enter a valid delivery address"},
		{"address too long", func(d *whatsapp.CustomerDetails) { d.Address = strings.Repeat("a", 301) }, "address", "Address too long"},
		{"notes too long", func(d *whatsapp.CustomerDetails) { d.Notes = strings.Repeat("n", 501) }, "notes", "Notes too long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDetails()
			tt.mutate(&d)
			_, errs := Validate(d)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.message, errs[tt.field])
		})
	}
}

func TestValidateBoundaryLengths(t *testing.T) {
	d := validDetails()
	d.Name = strings.Repeat("a", 100)
	d.Phone = strings.Repeat("0", 20)
	d.Address = strings.Repeat("a", 300)
	d.Notes = strings.Repeat("n", 500)
	_, errs := Validate(d)
	assert.Nil(t, errs)

	d = validDetails()
	d.Name = "Jo"
	d.Phone = strings.Repeat("0", 10)
	d.Address = strings.Repeat("a", 5)
	_, errs = Validate(d)
	assert.Nil(t, errs)
}

func TestValidateReportsEveryInvalidField(t *testing.T) {
	_, errs := Validate(whatsapp.CustomerDetails{Name: "J", Phone: "1", Address: "x"})
	require.Len(t, errs, 3)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "phone")
	assert.Contains(t, errs, "address")
	assert.Contains(t, errs.Error(), "invalid fields")
}

func TestQuickOrder(t *testing.T) {
	svc := NewService("2349124502743")

	link, err := svc.QuickOrder(snapshotWithLines())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://wa.me/2349124502743?text="))

	_, err = svc.QuickOrder(cart.Snapshot{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrder(t *testing.T) {
	svc := NewService("2349124502743")

	link, err := svc.PlaceOrder(snapshotWithLines(), validDetails())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://wa.me/2349124502743?text="))

	_, err = svc.PlaceOrder(cart.Snapshot{}, validDetails())
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = svc.PlaceOrder(snapshotWithLines(), whatsapp.CustomerDetails{})
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 3)
}
