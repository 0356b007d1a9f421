package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/quantdeck/quantdeck/internal/apiclient"
)

func TestUserFacingError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"cancellation is silent", context.Canceled, ""},
		{"bad request", &apiclient.StatusError{Status: 400}, "unsupported request"},
		{"server error offers retry", &apiclient.StatusError{Status: 503}, "server error (503) - press r to retry"},
		{"other status is generic", &apiclient.StatusError{Status: 404}, "request failed (404)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := userFacingError(tt.err); got != tt.want {
				t.Fatalf("userFacingError(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}

	if got := userFacingError(errors.New("dial tcp: refused")); !strings.Contains(got, "unable to load data") {
		t.Fatalf("transport error message = %q", got)
	}

	wrapped := &apiclient.StatusError{Status: 500}
	if got := userFacingError(errors.Join(errors.New("fetch markets"), wrapped)); !strings.Contains(got, "500") {
		t.Fatalf("wrapped status error message = %q", got)
	}
}
