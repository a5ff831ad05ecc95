package validator_test

import (
	"strings"
	"testing"

	"trailguard/shared/validator"
)

type checkInBody struct {
	TouristName      string `json:"tourist_name"      validate:"required,max=100"`
	TouristPhone     string `json:"tourist_phone"     validate:"required,max=20"`
	QRCode           string `json:"qr_code"           validate:"required"`
	ExpectedDuration int    `json:"expected_duration" validate:"required,gt=0"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name:    "valid body",
			body:    `{"tourist_name":"Budi","tourist_phone":"+628123456789","qr_code":"payload","expected_duration":120}`,
			wantErr: false,
		},
		{
			name:    "invalid JSON",
			body:    `{"tourist_name":`,
			wantErr: true,
		},
		{
			name:    "missing required field",
			body:    `{"tourist_name":"Budi","expected_duration":120}`,
			wantErr: true,
		},
		{
			name:    "non-positive duration",
			body:    `{"tourist_name":"Budi","tourist_phone":"+628123456789","qr_code":"payload","expected_duration":-5}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data checkInBody

			err := validator.Validate(strings.NewReader(tt.body), &data)

			if tt.wantErr && err == nil {
				t.Error("expected an error")
			}

			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	if err := validator.ValidateVar("officer@example.com", "required,email"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := validator.ValidateVar("not-an-email", "required,email"); err == nil {
		t.Error("expected an error for a malformed email")
	}
}
