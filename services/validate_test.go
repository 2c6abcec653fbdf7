package services

import (
	"errors"
	"testing"

	"taskapp/model"
)

func reasonOf(t *testing.T, err error) Reason {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	return verr.Reason
}

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		name  string
		email string
		want  Reason // "" means pass
	}{
		{"empty", "", ReasonEmpty},
		{"not an email", "not-an-email", ReasonMalformed},
		{"missing tld", "a@b", ReasonMalformed},
		{"valid", "a@b.com", ""},
		{"valid with plus", "user+tag@example.co.uk", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateEmail(tc.email)
			if tc.want == "" {
				if err != nil {
					t.Fatalf("ValidateEmail(%q) = %v, want pass", tc.email, err)
				}
				return
			}
			if got := reasonOf(t, err); got != tc.want {
				t.Fatalf("ValidateEmail(%q) reason = %s, want %s", tc.email, got, tc.want)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		want     Reason
	}{
		{"", ReasonEmpty},
		{"abc", ReasonTooShort},
		{"abcdef", ""},
	}
	for _, tc := range cases {
		err := ValidatePassword(tc.password)
		if tc.want == "" {
			if err != nil {
				t.Fatalf("ValidatePassword(%q) = %v, want pass", tc.password, err)
			}
			continue
		}
		if got := reasonOf(t, err); got != tc.want {
			t.Fatalf("ValidatePassword(%q) reason = %s, want %s", tc.password, got, tc.want)
		}
	}
}

func TestValidateConfirmPassword(t *testing.T) {
	if got := reasonOf(t, ValidateConfirmPassword("secret", "")); got != ReasonEmpty {
		t.Fatalf("empty confirm reason = %s, want %s", got, ReasonEmpty)
	}
	if got := reasonOf(t, ValidateConfirmPassword("secret", "other")); got != ReasonMismatch {
		t.Fatalf("mismatch reason = %s, want %s", got, ReasonMismatch)
	}
	if err := ValidateConfirmPassword("secret", "secret"); err != nil {
		t.Fatalf("matching confirm = %v, want pass", err)
	}
}

func TestValidateUsername(t *testing.T) {
	if got := reasonOf(t, ValidateUsername("")); got != ReasonEmpty {
		t.Fatalf("empty username reason = %s, want %s", got, ReasonEmpty)
	}
	if got := reasonOf(t, ValidateUsername("ab")); got != ReasonTooShort {
		t.Fatalf("short username reason = %s, want %s", got, ReasonTooShort)
	}
	if err := ValidateUsername("bob"); err != nil {
		t.Fatalf("ValidateUsername(\"bob\") = %v, want pass", err)
	}
}

func TestValidateTaskTitle(t *testing.T) {
	if got := reasonOf(t, ValidateTaskTitle("")); got != ReasonEmpty {
		t.Fatalf("empty title reason = %s, want %s", got, ReasonEmpty)
	}
	if got := reasonOf(t, ValidateTaskTitle("   ")); got != ReasonEmpty {
		t.Fatalf("blank title reason = %s, want %s", got, ReasonEmpty)
	}
	if err := ValidateTaskTitle("Buy milk"); err != nil {
		t.Fatalf("ValidateTaskTitle(\"Buy milk\") = %v, want pass", err)
	}
}

func TestValidateTaskPriority(t *testing.T) {
	if got := reasonOf(t, ValidateTaskPriority("")); got != ReasonEmpty {
		t.Fatalf("empty priority reason = %s, want %s", got, ReasonEmpty)
	}
	if got := reasonOf(t, ValidateTaskPriority("Urgent")); got != ReasonMalformed {
		t.Fatalf("unknown priority reason = %s, want %s", got, ReasonMalformed)
	}
	// Case matters; the stored value is the enum string itself.
	if got := reasonOf(t, ValidateTaskPriority("high")); got != ReasonMalformed {
		t.Fatalf("lowercase priority reason = %s, want %s", got, ReasonMalformed)
	}
	for _, p := range []model.Priority{model.PriorityHigh, model.PriorityMedium, model.PriorityLow} {
		if err := ValidateTaskPriority(p); err != nil {
			t.Fatalf("ValidateTaskPriority(%s) = %v, want pass", p, err)
		}
	}
}
