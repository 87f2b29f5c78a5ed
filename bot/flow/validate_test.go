package flow

import (
	"errors"
	"testing"
)

func TestValidators(t *testing.T) {
	actor := Actor{UserID: 1, Username: "tester"}

	t.Run("NonEmpty", func(t *testing.T) {
		tests := []struct {
			raw     string
			want    string
			wantErr bool
		}{
			{"value", "value", false},
			{"  padded  ", "padded", false},
			{"", "", true},
			{"   ", "", true},
		}
		v := NonEmpty("required")
		for _, tt := range tests {
			got, err := v(actor, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Errorf("NonEmpty(%q): err=%v, wantErr=%v", tt.raw, err, tt.wantErr)
				continue
			}
			if got != tt.want {
				t.Errorf("NonEmpty(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		}
	})

	t.Run("PositiveAmount", func(t *testing.T) {
		tests := []struct {
			raw     string
			want    string
			wantErr bool
		}{
			{"100", "100", false},
			{"10.50", "10.50", false},
			{"10,50", "10.50", false},
			{"0", "", true},
			{"-5", "", true},
			{"abc", "", true},
			{"", "", true},
			{"NaN", "", true},
			{"nan", "", true},
			{"Inf", "", true},
			{"+Inf", "", true},
			{"-Inf", "", true},
			{"1e9999", "", true},
		}
		v := PositiveAmount("bad amount")
		for _, tt := range tests {
			got, err := v(actor, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Errorf("PositiveAmount(%q): err=%v, wantErr=%v", tt.raw, err, tt.wantErr)
				continue
			}
			if got != tt.want {
				t.Errorf("PositiveAmount(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		}
	})

	t.Run("Username strips the leading at sign", func(t *testing.T) {
		v := Username("required")
		got, err := v(actor, "@merchant")
		if err != nil || got != "merchant" {
			t.Errorf("Username(@merchant) = %q, %v", got, err)
		}
		if _, err := v(actor, "@"); err == nil {
			t.Error("bare @ must be rejected")
		}
	})

	t.Run("OwnUsername accepts only the actor's own handle", func(t *testing.T) {
		v := OwnUsername("echo your username")
		got, err := v(actor, "@tester")
		if err != nil || got != "tester" {
			t.Errorf("OwnUsername(@tester) = %q, %v", got, err)
		}
		if _, err := v(actor, "tester"); err == nil {
			t.Error("missing @ must be rejected")
		}
		if _, err := v(actor, "@other"); err == nil {
			t.Error("someone else's handle must be rejected")
		}
	})

	t.Run("Skippable commits empty on the sentinel", func(t *testing.T) {
		v := Skippable(NonEmpty("required"))
		got, err := v(actor, "-")
		if err != nil || got != "" {
			t.Errorf("Skippable(-) = %q, %v", got, err)
		}
		got, err = v(actor, "tag")
		if err != nil || got != "tag" {
			t.Errorf("Skippable(tag) = %q, %v", got, err)
		}
		if _, err := v(actor, "  "); err == nil {
			t.Error("blank input must still be rejected")
		}
	})

	t.Run("rejections carry the configured reason", func(t *testing.T) {
		_, err := NonEmpty("required")(actor, "")
		rej, ok := AsRejection(err)
		if !ok {
			t.Fatalf("expected rejection, got %v", err)
		}
		if rej.Reason != "required" {
			t.Errorf("reason = %q, want %q", rej.Reason, "required")
		}
		if errors.Is(err, ErrStoreUnavailable) {
			t.Error("rejection must not match infrastructure errors")
		}
	})
}
