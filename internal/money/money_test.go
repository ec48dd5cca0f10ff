package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{"small amount", 1500, "₦1,500"},
		{"zero", 0, "₦0"},
		{"large amount", 17000, "₦17,000"},
		{"no grouping needed", 600, "₦600"},
		{"million", 1250000, "₦1,250,000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.amount))
		})
	}
}
