// Package apperrors tests verify the custom error types (ErrNotFound,
// ErrUnexpectedStatus, ErrSubtitleResourceNotFound), their Error()
// messages, Is() matching semantics, and compatibility with errors.Is()
// including through fmt.Errorf wrapping.
package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

// ---------------------------------------------------------------------------
// ErrNotFound
// ---------------------------------------------------------------------------

func TestErrNotFound_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      *ErrNotFound
		expected string
	}{
		{
			name:     "with string ID",
			err:      &ErrNotFound{Resource: "episode", ID: "abc"},
			expected: "episode with ID abc not found",
		},
		{
			name:     "with int ID",
			err:      &ErrNotFound{Resource: "subtitle", ID: 42},
			expected: "subtitle with ID 42 not found",
		},
		{
			name:     "with nil ID",
			err:      NewNotFoundError("listing", nil),
			expected: "listing not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrNotFound_Is(t *testing.T) {
	t.Parallel()
	err := &ErrNotFound{Resource: "episode", ID: 1}

	if !errors.Is(err, &ErrNotFound{Resource: "other", ID: 99}) {
		t.Error("expected errors.Is to match *ErrNotFound regardless of field values")
	}
	if errors.Is(err, &ErrUnexpectedStatus{}) {
		t.Error("expected errors.Is not to match *ErrUnexpectedStatus")
	}
}

// ---------------------------------------------------------------------------
// ErrUnexpectedStatus
// ---------------------------------------------------------------------------

func TestErrUnexpectedStatus(t *testing.T) {
	t.Parallel()
	err := &ErrUnexpectedStatus{URL: "https://example.org/view/1", StatusCode: 503}

	if got, want := err.Error(), "https://example.org/view/1 returned status 503"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := fmt.Errorf("fetch episode: %w", err)
	if !errors.Is(wrapped, &ErrUnexpectedStatus{}) {
		t.Error("expected errors.Is to match through wrapping")
	}

	var statusErr *ErrUnexpectedStatus
	if !errors.As(wrapped, &statusErr) || statusErr.StatusCode != 503 {
		t.Errorf("expected errors.As to extract status 503, got %+v", statusErr)
	}
}

func TestErrUnexpectedStatus_Temporary(t *testing.T) {
	t.Parallel()
	tests := []struct {
		code int
		want bool
	}{
		{404, false},
		{403, false},
		{429, true},
		{500, true},
		{503, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.code), func(t *testing.T) {
			t.Parallel()
			err := &ErrUnexpectedStatus{StatusCode: tt.code}
			if got := err.Temporary(); got != tt.want {
				t.Errorf("Temporary() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// ErrSubtitleResourceNotFound
// ---------------------------------------------------------------------------

func TestErrSubtitleResourceNotFound(t *testing.T) {
	t.Parallel()
	err := &ErrSubtitleResourceNotFound{URL: "https://example.org/attach/1.ass"}

	if got, want := err.Error(), "subtitle resource not found at URL: https://example.org/attach/1.ass"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(fmt.Errorf("download: %w", err), &ErrSubtitleResourceNotFound{}) {
		t.Error("expected errors.Is to match through wrapping")
	}
	if errors.Is(err, &ErrNotFound{}) {
		t.Error("expected errors.Is not to match *ErrNotFound")
	}
}

func TestSentinelErrors(t *testing.T) {
	t.Parallel()
	if !errors.Is(fmt.Errorf("download trigger: %w", ErrNoSelection), ErrNoSelection) {
		t.Error("expected ErrNoSelection to survive wrapping")
	}
	if errors.Is(ErrNoSelection, ErrNoEpisodes) {
		t.Error("sentinel errors must be distinct")
	}
}
