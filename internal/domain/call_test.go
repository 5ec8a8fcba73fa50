package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestCallRequestValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		number      string
		wantErr     bool
		wantMessage string
	}{
		{name: "valid e164 number", number: "+15551234567", wantErr: false},
		{name: "empty number", number: "", wantErr: true, wantMessage: "missing 'number'"},
		{name: "whitespace only", number: "   ", wantErr: true, wantMessage: "missing 'number'"},
		{name: "missing country code", number: "5551234567", wantErr: true, wantMessage: "country code"},
		{name: "plus after whitespace is trimmed", number: "  +905551112233  ", wantErr: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := CallRequest{Number: tc.number}
			req.Normalize()
			err := req.Validate()

			if !tc.wantErr {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("Validate() expected error")
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("error should wrap ErrValidation, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantMessage) {
				t.Fatalf("error = %q, want substring %q", err.Error(), tc.wantMessage)
			}
		})
	}
}

func TestCallRequestNormalizeTrims(t *testing.T) {
	t.Parallel()

	req := CallRequest{Number: "\t +15551234567 \n"}
	req.Normalize()

	if req.Number != "+15551234567" {
		t.Fatalf("Number = %q, want %q", req.Number, "+15551234567")
	}
}
