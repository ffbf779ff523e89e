package broker

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/vingd/internal/netx"
	"github.com/dmitrijs2005/vingd/internal/safeformat"
)

type (
	// FormatError reports a path argument that failed local validation.
	FormatError = safeformat.FormatError

	// TransportError reports a request that never produced an HTTP response.
	TransportError = netx.TransportError
)

var ErrTooManyRedirects = netx.ErrTooManyRedirects

var (
	ErrInvalidToken        = errors.New("invalid token")
	ErrInvalidGroupID      = errors.New("invalid voucher group id")
	ErrDescriptionTooLarge = errors.New("object description too large")
)

const (
	DefaultErrorContext = "General error"
	DefaultErrorCode    = http.StatusConflict
)

// Error is a failure reported by the broker itself: a non-2xx response with a
// message, or an entry of a batch response's errors list.
type Error struct {
	Message string
	Context string
	Code    int
	Subcode int
}

func newError(message, context string, code int) *Error {
	if context == "" {
		context = DefaultErrorContext
	}
	if code == 0 {
		code = DefaultErrorCode
	}
	return &Error{Message: message, Context: context, Code: code}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%d)", e.Context, e.Message, e.Code)
}

// ConnectionError means no usable broker answer was obtained: the transport
// failed, or the response was not the expected JSON envelope.
type ConnectionError struct {
	Status        int
	StatusMessage string
	Err           error
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to establish connection with Vingd Broker: %v", e.Err)
	}
	return fmt.Sprintf("failed to establish connection with Vingd Broker (HTTP error %d: %s)", e.Status, e.StatusMessage)
}

func (e *ConnectionError) Unwrap() error { return e.Err }
