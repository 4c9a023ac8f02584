package utils

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyPlaces is the number of fractional digits kept on every monetary output.
const CurrencyPlaces int32 = 2

// powPrecision bounds the fractional digits kept on intermediate power results so
// that repeated squaring stays fast and deterministic.
const powPrecision int32 = 24

// divPrecision is the number of fractional digits kept by SafeDiv.
const divPrecision int32 = 20

// DateLayout is the layout used for dates exchanged with callers.
const DateLayout = "2006-01-02"

var (
	One     = decimal.NewFromInt(1)
	Twelve  = decimal.NewFromInt(12)
	Hundred = decimal.NewFromInt(100)
)

// ToDecimal converts a loosely typed numeric value into a decimal.
// Invalid input (NaN, infinities, unparsable strings, nil, unsupported types) yields zero.
func ToDecimal(value any) decimal.Decimal {
	switch v := value.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return v
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero
		}
		return *v
	case string:
		return parseString(v)
	case json.Number:
		return parseString(v.String())
	case float64:
		return fromFloat(v)
	case float32:
		return fromFloat(float64(v))
	case int:
		return decimal.NewFromInt(int64(v))
	case int8:
		return decimal.NewFromInt(int64(v))
	case int16:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint8:
		return decimal.NewFromInt(int64(v))
	case uint16:
		return decimal.NewFromInt(int64(v))
	case uint32:
		return decimal.NewFromInt(int64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		return decimal.Zero
	}
}

func parseString(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

var (
	minInt = decimal.NewFromInt(math.MinInt)
	maxInt = decimal.NewFromInt(math.MaxInt)
)

// ToInt truncates a loosely typed value to an int, zero when invalid or out of
// the int range.
func ToInt(value any) int {
	d := ToDecimal(value).Truncate(0)
	if d.LessThan(minInt) || d.GreaterThan(maxInt) {
		return 0
	}
	return int(d.IntPart())
}

// RoundCurrency quantizes d to two fractional digits, rounding half away from zero.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPlaces)
}

// ToNumber converts d to a float64 for presentation and export only.
func ToNumber(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// SafeDiv divides a by b, returning zero instead of panicking when b is zero.
func SafeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.DivRound(b, divPrecision)
}

// MaxDecimal returns the larger of a and b.
func MaxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// MinDecimal returns the smaller of a and b.
func MinDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// PowInt raises base to a non-negative integer power by repeated squaring.
func PowInt(base decimal.Decimal, exp int64) decimal.Decimal {
	result := One
	if exp < 0 {
		return decimal.Zero
	}
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base).Round(powPrecision)
		}
		base = base.Mul(base).Round(powPrecision)
		exp >>= 1
	}
	return result
}

// Pow raises base to exp. Integer exponents use PowInt; fractional exponents go
// through PowWithPrecision. Undefined powers return zero.
func Pow(base, exp decimal.Decimal) decimal.Decimal {
	if exp.IsInteger() && !exp.IsNegative() {
		return PowInt(base, exp.IntPart())
	}
	result, err := base.PowWithPrecision(exp, powPrecision)
	if err != nil {
		return decimal.Zero
	}
	return result.Round(powPrecision)
}

// AddMonths advances t by months calendar months. When the target month is shorter
// than t's day of month the date is clamped to that month's last day.
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// MonthsBetween returns the calendar-month difference between start and end,
// ignoring the day of month. The result is negative when end precedes start.
func MonthsBetween(start, end time.Time) int {
	sy, sm, _ := start.Date()
	ey, em, _ := end.Date()
	return (ey-sy)*12 + int(em) - int(sm)
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}
