package validator

import "testing"

type phoneForm struct {
	Phone  string `validate:"phone"`
	Region string `validate:"region"`
}

func TestPhoneAndRegionTags(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		form    phoneForm
		wantErr bool
	}{
		{name: "empty values", form: phoneForm{}, wantErr: false},
		{name: "partial phone", form: phoneForm{Phone: "(206", Region: "US"}, wantErr: false},
		{name: "lower case region", form: phoneForm{Phone: "2065551234", Region: "gb"}, wantErr: false},
		{name: "no digits", form: phoneForm{Phone: "call me"}, wantErr: true},
		{name: "unknown region", form: phoneForm{Phone: "2065551234", Region: "XX"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.form)
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}
