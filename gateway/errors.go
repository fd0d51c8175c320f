package gateway

import (
	"context"
	"fmt"
	"net"
	"net/url"

	ierrors "github.com/jrsteele09/loyalty-admin/internal/errors"
)

// Error is a classified gateway failure. Unwrap yields one of the sentinel
// classes in internal/errors so callers can branch with errors.Is.
type Error struct {
	StatusCode int    // 0 when the request never completed
	Message    string // server-provided when present, generic otherwise
	class      error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status %d): %s", e.class.Error(), e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.class.Error(), e.Message)
}

func (e *Error) Unwrap() error {
	return e.class
}

const genericFailureMessage = "something went wrong, please try again"

func unauthorizedError(resp *Response) error {
	message := resp.Message()
	if message == "" {
		message = "session expired, please log in again"
	}
	return &Error{StatusCode: resp.StatusCode, Message: message, class: ierrors.ErrUnauthorized}
}

func serverError(resp *Response) error {
	message := resp.Message()
	if message == "" {
		message = genericFailureMessage
	}
	return &Error{StatusCode: resp.StatusCode, Message: message, class: ierrors.ErrServer}
}

func classifyTransportError(err error) error {
	class := ierrors.ErrNetwork
	if isTimeout(err) {
		class = ierrors.ErrTimeout
	}
	return &Error{Message: genericFailureMessage, class: class}
}

func isTimeout(err error) bool {
	if ierrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if ierrors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	var netErr net.Error
	return ierrors.As(err, &netErr) && netErr.Timeout()
}
