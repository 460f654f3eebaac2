package domain

import (
	"strconv"
	"strings"
	"time"
)

// Card field names accepted by UpdateField
const (
	CardFieldNumber   = "number"
	CardFieldExpMonth = "exp_month"
	CardFieldExpYear  = "exp_year"
	CardFieldCVC      = "cvc"
)

// CardDetails is an immutable snapshot of partially or fully entered card
// fields. Every update produces a new snapshot; consumers never observe
// in-place mutation.
type CardDetails struct {
	number   *string
	expMonth *int
	expYear  *int
	cvc      *string
}

// WithField returns a new snapshot with the named field set to the given raw
// value. Unknown field names and unparsable numbers are validation errors.
func (c CardDetails) WithField(name, value string) (CardDetails, error) {
	value = strings.TrimSpace(value)

	switch name {
	case CardFieldNumber:
		c.number = &value
	case CardFieldExpMonth:
		month, err := strconv.Atoi(value)
		if err != nil {
			return c, NewValidationError("expiration month must be numeric")
		}
		c.expMonth = &month
	case CardFieldExpYear:
		year, err := strconv.Atoi(value)
		if err != nil {
			return c, NewValidationError("expiration year must be numeric")
		}
		c.expYear = &year
	case CardFieldCVC:
		c.cvc = &value
	default:
		return c, NewValidationError("unknown card field: " + name)
	}

	return c, nil
}

// IsComplete holds iff all four fields are present and individually valid
func (c CardDetails) IsComplete() bool {
	return c.numberValid() && c.expMonthValid() && c.expYearValid() && c.cvcValid()
}

func (c CardDetails) numberValid() bool {
	return c.number != nil && *c.number != "" && isNumeric(*c.number)
}

func (c CardDetails) expMonthValid() bool {
	return c.expMonth != nil && *c.expMonth >= 1 && *c.expMonth <= 12
}

// expYearValid accepts both two-digit and four-digit years, each of which must
// not be in the past
func (c CardDetails) expYearValid() bool {
	if c.expYear == nil {
		return false
	}
	year := *c.expYear
	current := time.Now().Year()
	if year < 100 {
		year += 2000
	}
	return year >= current
}

func (c CardDetails) cvcValid() bool {
	if c.cvc == nil {
		return false
	}
	n := len(*c.cvc)
	return (n == 3 || n == 4) && isNumeric(*c.cvc)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Number returns the raw card number, empty when unset
func (c CardDetails) Number() string {
	if c.number == nil {
		return ""
	}
	return *c.number
}

// ExpMonth returns the expiration month, zero when unset
func (c CardDetails) ExpMonth() int {
	if c.expMonth == nil {
		return 0
	}
	return *c.expMonth
}

// ExpYear returns the expiration year, zero when unset
func (c CardDetails) ExpYear() int {
	if c.expYear == nil {
		return 0
	}
	return *c.expYear
}

// CVC returns the raw CVC, empty when unset
func (c CardDetails) CVC() string {
	if c.cvc == nil {
		return ""
	}
	return *c.cvc
}

// Last4 returns the last four digits of the card number for display and
// logging. The full PAN never leaves the aggregate through this path.
func (c CardDetails) Last4() string {
	if c.number == nil || len(*c.number) < 4 {
		return ""
	}
	return (*c.number)[len(*c.number)-4:]
}

// IsEmpty reports whether no field has been entered
func (c CardDetails) IsEmpty() bool {
	return c.number == nil && c.expMonth == nil && c.expYear == nil && c.cvc == nil
}

// String masks everything except the last four digits
func (c CardDetails) String() string {
	if c.number == nil {
		return "card()"
	}
	return "card(****" + c.Last4() + ")"
}
