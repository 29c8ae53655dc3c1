package port

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	apiErr := &APIError{Status: 400, Message: "mesa ocupada", Kind: ErrValidation}
	wrapped := fmt.Errorf("create reservation: %w", apiErr)

	if got := ErrorMessage(wrapped); got != "mesa ocupada" {
		t.Fatalf("expected api message, got %q", got)
	}
	if !errors.Is(wrapped, ErrValidation) {
		t.Fatal("expected wrapped error to match ErrValidation")
	}
	if got := ErrorMessage(&APIError{Status: 502, Kind: ErrUpstream}); got != "api status 502" {
		t.Fatalf("unexpected fallback message %q", got)
	}
	if got := ErrorMessage(errors.New("dial tcp: refused")); got != "dial tcp: refused" {
		t.Fatalf("unexpected transport message %q", got)
	}
	if got := ErrorMessage(nil); got != "" {
		t.Fatalf("expected empty message, got %q", got)
	}
}
