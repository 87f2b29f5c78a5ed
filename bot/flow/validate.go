package flow

import (
	"math"
	"strconv"
	"strings"
)

// SkipSentinel is the text input committing a "none" value on skippable
// steps.
const SkipSentinel = "-"

// NonEmpty validates that the trimmed input is not empty.
func NonEmpty(reason string) ValidateFunc {
	return func(_ Actor, raw string) (string, error) {
		v := strings.TrimSpace(raw)
		if v == "" {
			return "", Reject(reason)
		}
		return v, nil
	}
}

// PositiveAmount validates a positive decimal amount. The committed value is
// the normalized input, dot-separated.
func PositiveAmount(reason string) ValidateFunc {
	return func(_ Actor, raw string) (string, error) {
		v := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
		amount, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
			return "", Reject(reason)
		}
		return v, nil
	}
}

// Username validates a Telegram-style username, committing it without the
// leading @.
func Username(reason string) ValidateFunc {
	return func(_ Actor, raw string) (string, error) {
		v := strings.TrimPrefix(strings.TrimSpace(raw), "@")
		if v == "" {
			return "", Reject(reason)
		}
		return v, nil
	}
}

// OwnUsername validates that the actor echoed their own @username back
// verbatim. Anything else re-prompts.
func OwnUsername(reason string) ValidateFunc {
	return func(actor Actor, raw string) (string, error) {
		if strings.TrimSpace(raw) != "@"+actor.Username {
			return "", Reject(reason)
		}
		return actor.Username, nil
	}
}

// Skippable wraps a validator so the skip sentinel commits the empty value.
func Skippable(inner ValidateFunc) ValidateFunc {
	return func(actor Actor, raw string) (string, error) {
		if strings.TrimSpace(raw) == SkipSentinel {
			return "", nil
		}
		return inner(actor, raw)
	}
}
