package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePrice(t *testing.T) {
	cases := []struct {
		name string
		rate float64
		iv   Interval
		want float64
	}{
		{"whole hours", 50, Interval{day(14, 0), day(16, 0)}, 100},
		{"fractional rate", 35.5, Interval{day(14, 0), day(17, 0)}, 106.5},
		{"fractional duration", 30, Interval{day(14, 0), day(15, 30)}, 45},
		{"zero rate", 0, Interval{day(14, 0), day(16, 0)}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputePrice(tc.rate, tc.iv)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestComputePriceRejectsNegativeRate(t *testing.T) {
	_, err := ComputePrice(-1, Interval{day(14, 0), day(16, 0)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
