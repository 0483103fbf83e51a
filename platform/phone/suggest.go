package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Suggestion is one plausible interpretation of a partially typed value.
type Suggestion struct {
	Region    string `json:"region"`
	Formatted string `json:"formatted"`
	Valid     bool   `json:"valid"`
}

// SuggestFormats returns at most two interpretations of value: a US reading
// first, then an international reading when value starts with "+". An
// interpretation is kept when it parses and its country calling code is known,
// even if it is still too short to be valid.
func SuggestFormats(value string) []Suggestion {
	suggestions := make([]Suggestion, 0, 2)

	if num, ok := parsePlausible(value, DefaultRegion); ok && int(num.GetCountryCode()) == phonenumbers.GetCountryCodeForRegion(DefaultRegion) {
		valid := phonenumbers.IsValidNumber(num)
		formatted := FormatInput(value, DefaultRegion)
		if valid {
			formatted = phonenumbers.Format(num, phonenumbers.NATIONAL)
		}
		suggestions = append(suggestions, Suggestion{
			Region:    DefaultRegion,
			Formatted: formatted,
			Valid:     valid,
		})
	}

	if strings.HasPrefix(strings.TrimSpace(value), "+") {
		if num, ok := parsePlausible(value, ""); ok {
			suggestions = append(suggestions, Suggestion{
				Region:    phonenumbers.GetRegionCodeForNumber(num),
				Formatted: phonenumbers.Format(num, phonenumbers.INTERNATIONAL),
				Valid:     phonenumbers.IsValidNumber(num),
			})
		}
	}

	return suggestions
}

func parsePlausible(value, region string) (*phonenumbers.PhoneNumber, bool) {
	num, err := phonenumbers.Parse(value, region)
	if err != nil {
		return nil, false
	}
	if phonenumbers.IsPossibleNumberWithReason(num) == phonenumbers.INVALID_COUNTRY_CODE {
		return nil, false
	}
	return num, true
}
