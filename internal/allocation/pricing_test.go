package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		name       string
		basePrice  float64
		multiplier float64
		seats      int
		want       float64
	}{
		{"single seat no multiplier", 10.00, 1.0, 1, 10.00},
		{"three seats with multiplier", 10.00, 1.5, 3, 45.00},
		{"rounds to two decimals", 9.99, 1.1, 1, 10.99},
		{"fractional base price", 12.375, 2.0, 1, 24.75},
		{"premium evening show", 12.50, 1.25, 4, 62.50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Amount(tt.basePrice, tt.multiplier, tt.seats))
		})
	}
}

func TestSplitEvenly(t *testing.T) {
	assert.Equal(t, 15.00, splitEvenly(45.00, 3))
	assert.Equal(t, 10.00, splitEvenly(10.00, 1))
	assert.InDelta(t, 16.6666, splitEvenly(50.00, 3), 0.001)
}
