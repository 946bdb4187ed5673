package bankclient

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned for any 401 from the backend. Callers are
// expected to funnel it through a single session-invalidation path rather
// than deciding per page.
var ErrUnauthorized = errors.New("bank api: unauthorized")

// ErrMalformedResponse is returned when a 2xx response does not decode into
// the documented contract (garbled JSON, empty token, missing envelope).
var ErrMalformedResponse = errors.New("bank api: malformed response")

// APIError carries a non-2xx status together with the server-supplied
// message, which flows are allowed to surface verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("bank api: status %d", e.Status)
	}
	return fmt.Sprintf("bank api: status %d: %s", e.Status, e.Message)
}
