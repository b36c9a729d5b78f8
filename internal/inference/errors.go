package inference

import (
	"errors"
	"fmt"
	"net/http"
)

// UpstreamError is returned when the inference service answers with a non-success
// status. Callers decide whether to retry; the client never does.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("inference service error (status %d): %s", e.StatusCode, e.Message)
}

// RateLimited reports whether the service rejected the call with HTTP 429.
func (e *UpstreamError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// AsUpstreamError extracts an UpstreamError from err's chain.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
