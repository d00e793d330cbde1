package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInsufficientCoverage, "POI %d has fewer than %d active sensors", 3, 2)

	if err.Code != ErrCodeInsufficientCoverage {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInsufficientCoverage)
	}
	if err.Message != "POI 3 has fewer than 2 active sensors" {
		t.Errorf("Message = %q", err.Message)
	}
	want := "INSUFFICIENT_COVERAGE: POI 3 has fewer than 2 active sensors"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("unexpected byte")
	err := Wrap(ErrCodeMalformedInstance, cause, "parse token %d", 4)

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInsufficientConnectivity, "POI 0 cannot reach 2 disjoint sinks")

	if !Is(err, ErrCodeInsufficientConnectivity) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeInsufficientCoverage) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is should not match plain errors")
	}

	// Code is found through wrapping layers.
	wrapped := fmt.Errorf("validate: %w", err)
	if !Is(wrapped, ErrCodeInsufficientConnectivity) {
		t.Error("Is should unwrap fmt-wrapped errors")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeMalformedInstance, "bad prefix")); got != ErrCodeMalformedInstance {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeMalformedInstance)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidInput, "m must be at least 1")
	if got := UserMessage(err); got != "m must be at least 1" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}
