package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/quantdeck/quantdeck/internal/apiclient"
)

// userFacingError maps a fetch failure to the inline message shown in a
// deck. Cancellations return "" and must not be displayed at all.
func userFacingError(err error) string {
	if err == nil || errors.Is(err, context.Canceled) {
		return ""
	}

	var statusErr *apiclient.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.Status == 400:
			return "unsupported request"
		case statusErr.Status >= 500:
			return fmt.Sprintf("server error (%d) - press r to retry", statusErr.Status)
		default:
			return fmt.Sprintf("request failed (%d)", statusErr.Status)
		}
	}

	// Transport and parse failures get one generic message.
	return "unable to load data - press r to retry"
}
