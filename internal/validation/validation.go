package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/segyhp/fincalc-engine/internal/domain"
)

// FieldError is a single advisory problem with one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of validating one input. It is never returned as an error.
type Result struct {
	IsValid bool         `json:"isValid"`
	Errors  []FieldError `json:"errors,omitempty"`
}

var labels = map[string]string{
	"principal":             "Principal",
	"annualRate":            "Interest rate",
	"tenureMonths":          "Tenure",
	"turnover":              "Turnover",
	"currentAssets":         "Current assets",
	"amount":                "Loan amount",
	"rate":                  "Interest rate",
	"tenure":                "Tenure",
	"bookedRate":            "Booked rate",
	"cardRateForTenure":     "Card rate",
	"penalty":               "Penalty",
	"completedMonths":       "Completed months",
	"completedInstallments": "Completed installments",
}

// fields counted in months get a unit in their messages
var monthFields = map[string]bool{"tenureMonths": true, "tenure": true, "completedMonths": true}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// decimals are validated through their exact string form
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	mustRegister(v, "decimal_gt", compareDecimal(func(c int) bool { return c > 0 }))
	mustRegister(v, "decimal_gte", compareDecimal(func(c int) bool { return c >= 0 }))
	mustRegister(v, "decimal_lte", compareDecimal(func(c int) bool { return c <= 0 }))

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func compareDecimal(ok func(int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return ok(value.Cmp(bound))
	}
}

// ValidateLoanInput checks principal > 0, rate in [0,100] and tenure in [1,600] months.
func ValidateLoanInput(in domain.LoanInput) Result {
	return run(in)
}

// ValidateDepositInput checks principal > 0, rate in [0,100] and tenure in [1,1200] months.
func ValidateDepositInput(in domain.DepositInput) Result {
	return run(in)
}

// ValidateMSMEInput rejects negative turnover or current assets.
func ValidateMSMEInput(in domain.MSMEInput) Result {
	return run(in)
}

// ValidatePrematureInput checks rates in [0,100], a non-negative principal and
// penalty, and at most 1200 completed months or installments.
func ValidatePrematureInput(in domain.PrematureInput) Result {
	return run(in)
}

// ValidateOutstandingInput applies the loan bounds to an SHG loan position request.
func ValidateOutstandingInput(in domain.OutstandingInput) Result {
	return run(in)
}

// ValidateSHGMembers checks every member loan: amount > 0, rate in [0,100] (zero
// means priced from the group slabs) and tenure in [1,600] months. Field names are
// prefixed with the loan's position, e.g. members[0].loans[1].tenure.
func ValidateSHGMembers(members []domain.SHGMember) Result {
	res := Result{IsValid: true}
	for i, m := range members {
		for j, l := range m.Loans {
			r := run(l)
			if r.IsValid {
				continue
			}
			res.IsValid = false
			for _, fe := range r.Errors {
				fe.Field = fmt.Sprintf("members[%d].loans[%d].%s", i, j, fe.Field)
				res.Errors = append(res.Errors, fe)
			}
		}
	}
	return res
}

func run(in any) Result {
	err := validate.Struct(in)
	if err == nil {
		return Result{IsValid: true}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Result{IsValid: false, Errors: []FieldError{{Field: "", Message: err.Error()}}}
	}

	res := Result{IsValid: false}
	seen := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		if seen[fe.Field()] {
			continue
		}
		seen[fe.Field()] = true
		res.Errors = append(res.Errors, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return res
}

func message(fe validator.FieldError) string {
	label, ok := labels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	suffix := ""
	if monthFields[fe.Field()] {
		suffix = " months"
	}

	switch fe.Tag() {
	case "decimal_gt", "gt":
		return fmt.Sprintf("%s must be greater than %s%s", label, fe.Param(), suffix)
	case "decimal_gte", "gte":
		if fe.Param() == "0" {
			return fmt.Sprintf("%s must not be negative", label)
		}
		return fmt.Sprintf("%s must be at least %s%s", label, fe.Param(), suffix)
	case "decimal_lte", "lte":
		return fmt.Sprintf("%s must not exceed %s%s", label, fe.Param(), suffix)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}
