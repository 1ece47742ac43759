package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscountedPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount float64
		want     float64
	}{
		{"twenty percent off round number", 100, 20, 80.00},
		{"no discount", 100, 0, 100.00},
		{"twenty percent off cents price", 49.99, 20, 39.99},
		{"full discount", 49.99, 100, 0},
		{"fractional discount rounds to cents", 19.99, 33, 13.39},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Course{Price: tt.price, Discount: tt.discount}
			assert.InDelta(t, tt.want, c.DiscountedPrice(), 0.000001)
		})
	}
}
