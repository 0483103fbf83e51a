package phone

// partialFormatter groups the digits of an incomplete number while it is typed.
type partialFormatter func(digits string) string

// partialFormatters holds the regions with incremental grouping rules. Other
// regions echo incomplete input unchanged.
var partialFormatters = map[string]partialFormatter{
	"US": formatNANPPartial,
}

// formatNANPPartial renders up to ten digits as (DDD) DDD-DDDD. Digits past the
// tenth are left out of the rendering.
func formatNANPPartial(digits string) string {
	if len(digits) > 10 {
		digits = digits[:10]
	}

	switch {
	case len(digits) == 0:
		return ""
	case len(digits) <= 3:
		return "(" + digits
	case len(digits) <= 6:
		return "(" + digits[:3] + ") " + digits[3:]
	default:
		return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
	}
}
