package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/vietddude/outcall/internal/core/domain"
)

// Error is a transport-level failure: the attempt ended without an HTTP
// status code.
type Error struct {
	Kind domain.TransportErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf maps an underlying client error to a transport error kind.
// Cancellation is checked first so a caller abort is never reported as
// a timeout, then timeouts, then resolver and connection failures.
func KindOf(err error) domain.TransportErrorKind {
	if errors.Is(err, context.Canceled) {
		return domain.TransportErrCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.TransportErrTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.TransportErrTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return domain.TransportErrDNSFailure
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return domain.TransportErrConnectionRefused
	}

	return domain.TransportErrOther
}
