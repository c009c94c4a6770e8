package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"2500", 250000},
		{"1234.50", 123450},
		{"1234.5", 123450},
		{"0.05", 5},
		{"0", 0},
		{".75", 75},
		{" 100 ", 10000},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseAmountRejects(t *testing.T) {
	for _, in := range []string{"", "-5", "+5", "1.234", "abc", "1.2.3", "12.x", ".", "1.-5", "0.-5", "1.+5"} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, in)
	}
}

func TestFormatPaise(t *testing.T) {
	assert.Equal(t, "1234.50", FormatPaise(123450))
	assert.Equal(t, "0.05", FormatPaise(5))
	assert.Equal(t, "-12.00", FormatPaise(-1200))
}
