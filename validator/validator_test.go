package validator

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/tobibamidele/spotter/errors"
)

func TestValidateBookingInput(t *testing.T) {
	if err := ValidateBookingInput("2026-01-07", "08:30", "10:30"); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	tests := []struct {
		date, start, end string
		field            string
	}{
		{"", "08:30", "10:30", "date"},
		{"2026-01-07", "  ", "10:30", "start"},
		{"2026-01-07", "08:30", "", "end"},
		{"07/01/2026", "08:30", "10:30", "date"},
		{"2026-01-07", "8:30", "10:30", "start"},
		{"2026-01-07", "08:30", "1030", "end"},
	}

	for _, tt := range tests {
		err := ValidateBookingInput(tt.date, tt.start, tt.end)
		if err == nil {
			t.Errorf("ValidateBookingInput(%q, %q, %q) expected error", tt.date, tt.start, tt.end)
			continue
		}
		var verr errors.ValidationError
		if !stderrors.As(err, &verr) {
			t.Errorf("expected ValidationError, got %T", err)
			continue
		}
		if verr.Field != tt.field {
			t.Errorf("error field = %q, want %q", verr.Field, tt.field)
		}
	}
}

func TestValidateAlias(t *testing.T) {
	if err := ValidateAlias("Mi cuenta"); err != nil {
		t.Fatalf("valid alias rejected: %v", err)
	}
	if err := ValidateAlias("   "); err == nil {
		t.Error("blank alias should be rejected")
	}
	if err := ValidateAlias(strings.Repeat("a", 65)); err == nil {
		t.Error("overlong alias should be rejected")
	}
}

func TestValidateCookieHeader(t *testing.T) {
	if err := ValidateCookieHeader("takeaspot_session=abc; XSRF-TOKEN=tok"); err != nil {
		t.Fatalf("valid header rejected: %v", err)
	}
	if err := ValidateCookieHeader("just some text"); err == nil {
		t.Error("header without pairs should be rejected")
	}
	if err := ValidateCookieHeader(""); err == nil {
		t.Error("empty header should be rejected")
	}
}
