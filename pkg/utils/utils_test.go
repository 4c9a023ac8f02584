package utils

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDecimal(t *testing.T) {
	ptr := decimal.RequireFromString("7.25")

	tests := []struct {
		name     string
		input    any
		expected decimal.Decimal
	}{
		{name: "plain string", input: "100000", expected: decimal.NewFromInt(100000)},
		{name: "string with spaces", input: "  12.50 ", expected: decimal.RequireFromString("12.5")},
		{name: "json number", input: json.Number("8.85"), expected: decimal.RequireFromString("8.85")},
		{name: "float", input: 0.1, expected: decimal.RequireFromString("0.1")},
		{name: "int", input: 42, expected: decimal.NewFromInt(42)},
		{name: "int64", input: int64(-3), expected: decimal.NewFromInt(-3)},
		{name: "uint64", input: uint64(9), expected: decimal.NewFromInt(9)},
		{name: "decimal passthrough", input: decimal.NewFromInt(5), expected: decimal.NewFromInt(5)},
		{name: "decimal pointer", input: &ptr, expected: ptr},
		{name: "nil decimal pointer", input: (*decimal.Decimal)(nil), expected: decimal.Zero},
		{name: "empty string", input: "", expected: decimal.Zero},
		{name: "garbage string", input: "12abc", expected: decimal.Zero},
		{name: "NaN", input: math.NaN(), expected: decimal.Zero},
		{name: "positive infinity", input: math.Inf(1), expected: decimal.Zero},
		{name: "negative infinity", input: math.Inf(-1), expected: decimal.Zero},
		{name: "nil", input: nil, expected: decimal.Zero},
		{name: "unsupported type", input: []int{1}, expected: decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToDecimal(tt.input)
			assert.True(t, result.Equal(tt.expected), "expected %s, got %s", tt.expected, result)
		})
	}
}

func TestToInt(t *testing.T) {
	assert.Equal(t, 12, ToInt("12"))
	assert.Equal(t, 12, ToInt(12.9))
	assert.Equal(t, 0, ToInt("twelve"))
	assert.Equal(t, -3, ToInt("-3.7"))
}

func TestToInt_OutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{name: "wraps to a valid tenure when truncated to int64", value: "18446744073709552216"},
		{name: "positive exponent", value: "1e19"},
		{name: "negative exponent", value: "-1e19"},
		{name: "huge float", value: 1e300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0, ToInt(tt.value))
		})
	}
}

func TestRoundCurrency(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "1.005", expected: "1.01"},
		{input: "1.004", expected: "1"},
		{input: "2.345", expected: "2.35"},
		{input: "-2.345", expected: "-2.35"},
		{input: "8884.878867", expected: "8884.88"},
		{input: "100", expected: "100"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := RoundCurrency(decimal.RequireFromString(tt.input))
			assert.True(t, result.Equal(decimal.RequireFromString(tt.expected)), "got %s", result)
		})
	}
}

func TestToNumber(t *testing.T) {
	assert.Equal(t, 1234.56, ToNumber(decimal.RequireFromString("1234.56")))
}

func TestSafeDiv(t *testing.T) {
	assert.True(t, SafeDiv(decimal.NewFromInt(10), decimal.NewFromInt(4)).Equal(decimal.RequireFromString("2.5")))
	assert.True(t, SafeDiv(decimal.NewFromInt(10), decimal.Zero).IsZero())
	assert.True(t, SafeDiv(decimal.NewFromInt(1), decimal.NewFromInt(3)).Equal(decimal.RequireFromString("0.33333333333333333333")))
}

func TestMinMaxDecimal(t *testing.T) {
	a := decimal.NewFromInt(3)
	b := decimal.NewFromInt(7)
	assert.True(t, MaxDecimal(a, b).Equal(b))
	assert.True(t, MinDecimal(a, b).Equal(a))
}

func TestPowInt(t *testing.T) {
	result := PowInt(decimal.RequireFromString("1.025"), 4)
	assert.True(t, result.Equal(decimal.RequireFromString("1.103812890625")), "got %s", result)

	assert.True(t, PowInt(decimal.NewFromInt(5), 0).Equal(One))
	assert.True(t, PowInt(decimal.NewFromInt(5), -1).IsZero())
}

func TestPow(t *testing.T) {
	t.Run("integer exponent", func(t *testing.T) {
		result := Pow(decimal.RequireFromString("1.01"), decimal.NewFromInt(2))
		assert.True(t, result.Equal(decimal.RequireFromString("1.0201")))
	})

	t.Run("fractional exponent", func(t *testing.T) {
		result := Pow(decimal.NewFromInt(4), decimal.RequireFromString("0.5"))
		assert.True(t, RoundCurrency(result).Equal(decimal.NewFromInt(2)), "got %s", result)
	})

	t.Run("deterministic", func(t *testing.T) {
		base := decimal.RequireFromString("1.0083333333333333")
		exp := decimal.RequireFromString("7.5")
		assert.True(t, Pow(base, exp).Equal(Pow(base, exp)))
	})
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		months   int
		expected time.Time
	}{
		{
			name:     "simple advance",
			start:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			months:   1,
			expected: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "clamped to leap february",
			start:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			months:   1,
			expected: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "clamped to thirty day month",
			start:    time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
			months:   1,
			expected: time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "across year end",
			start:    time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
			months:   3,
			expected: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AddMonths(tt.start, tt.months))
		})
	}
}

func TestMonthsBetween(t *testing.T) {
	jan1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, MonthsBetween(jan1, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, MonthsBetween(jan1, time.Date(2024, 1, 28, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 13, MonthsBetween(jan1, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -2, MonthsBetween(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), jan1))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("01/03/2024")
	assert.Error(t, err)
}
