// Package phone provides phone number parsing, validation and formatting.
// This is part of the platform layer and contains no business logic.
//
// Every operation is a pure function of its inputs. Failures are never returned
// as errors: they surface as a Result whose Outcome is OutcomeFallback and whose
// Value is the caller's original input.
package phone

import (
	"errors"
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used whenever a caller passes an empty region code.
const DefaultRegion = "US"

// MinLiveDigits is the number of significant digits below which live-typing
// feedback treats a non-valid value as incomplete rather than invalid.
// The threshold assumes NANP-style ten digit numbers.
const MinLiveDigits = 10

var (
	// ErrUnsupportedRegion is returned in Result.Err for an unknown region code.
	ErrUnsupportedRegion = errors.New("unsupported region")
	// ErrNotANumber is returned in Result.Err when the input holds no digits or cannot be parsed.
	ErrNotANumber = errors.New("not a phone number")
	// ErrIncomplete is returned in Result.Err when the input parses but is not a complete valid number.
	ErrIncomplete = errors.New("incomplete or invalid phone number")
)

// Outcome describes how a Result value was produced.
type Outcome int

const (
	// OutcomeParsed means the value was derived from a complete, valid number.
	OutcomeParsed Outcome = iota
	// OutcomePartial means the value is an incremental rendering of incomplete input.
	OutcomePartial
	// OutcomeFallback means the original input was echoed back unchanged.
	OutcomeFallback
)

func (o Outcome) String() string {
	switch o {
	case OutcomeParsed:
		return "parsed"
	case OutcomePartial:
		return "partial"
	default:
		return "fallback"
	}
}

// Result is the outcome of a phone operation.
type Result struct {
	Value   string
	Outcome Outcome
	Err     error
}

// OK reports whether the value came from a complete, valid number.
func (r Result) OK() bool {
	return r.Outcome == OutcomeParsed
}

func parsed(value string) Result {
	return Result{Value: value, Outcome: OutcomeParsed}
}

func fallback(original string, err error) Result {
	return Result{Value: original, Outcome: OutcomeFallback, Err: err}
}

// NormalizeRegion upper-cases a region code and applies DefaultRegion when empty.
func NormalizeRegion(region string) string {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		return DefaultRegion
	}
	return region
}

// IsSupportedRegion reports whether libphonenumber has metadata for the region.
func IsSupportedRegion(region string) bool {
	return phonenumbers.GetCountryCodeForRegion(NormalizeRegion(region)) != 0
}

// Format converts raw keystroke input into a display string for the region.
//
// A complete valid number is rendered in national format when it belongs to the
// region's country calling code, and in international format otherwise, so that
// formatting an already formatted value reproduces it. Incomplete input is grouped
// incrementally where the region has partial rules; anything else is echoed.
func Format(raw, region string) Result {
	if raw == "" {
		return Result{Outcome: OutcomePartial}
	}

	region = NormalizeRegion(region)
	regionCC := phonenumbers.GetCountryCodeForRegion(region)
	if regionCC == 0 {
		return fallback(raw, ErrUnsupportedRegion)
	}

	if num, err := phonenumbers.Parse(raw, region); err == nil && phonenumbers.IsValidNumber(num) {
		if int(num.GetCountryCode()) == regionCC {
			return parsed(phonenumbers.Format(num, phonenumbers.NATIONAL))
		}
		return parsed(phonenumbers.Format(num, phonenumbers.INTERNATIONAL))
	}

	digits := Digits(raw)
	if digits == "" {
		return fallback(raw, ErrNotANumber)
	}

	partial, ok := partialFormatters[region]
	if !ok {
		return fallback(raw, ErrIncomplete)
	}
	return Result{Value: partial(digits), Outcome: OutcomePartial}
}

// FormatInput is Format reduced to its display string.
func FormatInput(raw, region string) string {
	return Format(raw, region).Value
}

// IsValid reports whether value parses, under the region's dialing rules, to a
// complete and valid number.
func IsValid(value, region string) bool {
	_, ok := parseValid(value, NormalizeRegion(region))
	return ok
}

// Validity classifies a value for live-typing feedback.
type Validity int

const (
	ValidityIncomplete Validity = iota
	ValidityValid
	ValidityInvalid
)

func (v Validity) String() string {
	switch v {
	case ValidityValid:
		return "valid"
	case ValidityInvalid:
		return "invalid"
	default:
		return "incomplete"
	}
}

// Check classifies value. Values with fewer than MinLiveDigits significant digits
// that are not yet valid are reported as incomplete rather than invalid.
func Check(value, region string) Validity {
	if IsValid(value, region) {
		return ValidityValid
	}
	if len(Digits(value)) < MinLiveDigits {
		return ValidityIncomplete
	}
	return ValidityInvalid
}

// Digits returns the ASCII digits of s in order.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func parseValid(value, region string) (*phonenumbers.PhoneNumber, bool) {
	if strings.TrimSpace(value) == "" {
		return nil, false
	}
	num, err := phonenumbers.Parse(value, region)
	if err != nil {
		return nil, false
	}
	if !phonenumbers.IsValidNumber(num) {
		return nil, false
	}
	return num, true
}
