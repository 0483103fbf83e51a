package phone

import phonenum "leasing_crm_backend/platform/phone"

type FormatRequest struct {
	Value  string `json:"value" validate:"max=64"`
	Region string `json:"region" validate:"omitempty,region"`
}

type FormatResponse struct {
	Formatted string `json:"formatted"`
	Outcome   string `json:"outcome"`
	Validity  string `json:"validity"`
	Message   string `json:"message,omitempty"`
}

type CanonicalRequest struct {
	Value  string `json:"value" validate:"required,max=64"`
	Region string `json:"region" validate:"omitempty,region"`
}

type CanonicalResponse struct {
	Canonical string `json:"canonical"`
	Valid     bool   `json:"valid"`
	Message   string `json:"message,omitempty"`
}

type DisplayRequest struct {
	Value string `json:"value" validate:"max=64"`
	Style string `json:"style" validate:"omitempty,oneof=national international"`
}

type DisplayResponse struct {
	Display string `json:"display"`
	Outcome string `json:"outcome"`
}

type SuggestRequest struct {
	Value string `json:"value" validate:"required,max=64"`
}

type SuggestResponse struct {
	Suggestions []phonenum.Suggestion `json:"suggestions"`
}
