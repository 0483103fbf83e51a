package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Style selects the display rendering used by Display.
type Style string

const (
	StyleNational      Style = "national"
	StyleInternational Style = "international"
)

// ParseStyle maps a user supplied style name to a Style, defaulting to national.
func ParseStyle(value string) Style {
	if strings.EqualFold(strings.TrimSpace(value), string(StyleInternational)) {
		return StyleInternational
	}
	return StyleNational
}

// Canonicalize converts value to E.164 when it parses to a complete valid number
// under region. Anything else is returned unchanged; callers decide whether a
// non-canonical value may be persisted.
func Canonicalize(value, region string) Result {
	region = NormalizeRegion(region)
	if strings.TrimSpace(value) == "" {
		return fallback(value, ErrNotANumber)
	}

	num, err := phonenumbers.Parse(value, region)
	if err != nil {
		return fallback(value, parseErr(region))
	}
	if !phonenumbers.IsValidNumber(num) {
		return fallback(value, ErrIncomplete)
	}

	return parsed(phonenumbers.Format(num, phonenumbers.E164))
}

// ToCanonical is Canonicalize reduced to its string value.
func ToCanonical(value, region string) string {
	return Canonicalize(value, region).Value
}

// IsCanonical reports whether value is already a valid E.164 string.
func IsCanonical(value string) bool {
	if !strings.HasPrefix(value, "+") {
		return false
	}
	res := Canonicalize(value, DefaultRegion)
	return res.OK() && res.Value == value
}

// Display renders a stored value for humans. The value is parsed without a
// region, so only numbers carrying a leading "+" can be rendered; legacy or
// malformed values are returned as-is.
func Display(value string, style Style) Result {
	if strings.TrimSpace(value) == "" {
		return fallback(value, ErrNotANumber)
	}

	num, err := phonenumbers.Parse(value, "")
	if err != nil {
		return fallback(value, ErrNotANumber)
	}
	if !phonenumbers.IsValidNumber(num) {
		return fallback(value, ErrIncomplete)
	}

	if style == StyleInternational {
		return parsed(phonenumbers.Format(num, phonenumbers.INTERNATIONAL))
	}
	return parsed(phonenumbers.Format(num, phonenumbers.NATIONAL))
}

// ToDisplay is Display reduced to its string value.
func ToDisplay(value string, style Style) string {
	return Display(value, style).Value
}

func parseErr(region string) error {
	if !IsSupportedRegion(region) {
		return ErrUnsupportedRegion
	}
	return ErrNotANumber
}
