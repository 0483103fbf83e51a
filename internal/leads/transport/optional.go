package transport

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// OptionalDate distinguishes an absent field from an explicit null or "".
type OptionalDate struct {
	Value *time.Time
	Set   bool
}

func (o OptionalDate) IsZero() bool {
	return !o.Set
}

func (o *OptionalDate) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("moveInDate must be a string: %w", err)
	}
	if raw == "" {
		o.Value = nil
		return nil
	}

	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return fmt.Errorf("moveInDate must use YYYY-MM-DD: %w", err)
	}
	o.Value = &parsed
	return nil
}

// ParseDate parses an optional YYYY-MM-DD string.
func ParseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// FormatDate renders an optional date as YYYY-MM-DD.
func FormatDate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.Format(DateLayout)
	return &formatted
}
