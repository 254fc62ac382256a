package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/vietddude/outcall/internal/core/domain"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind domain.TransportErrorKind
	}{
		{"canceled", fmt.Errorf("do: %w", context.Canceled), domain.TransportErrCanceled},
		{"deadline", fmt.Errorf("do: %w", context.DeadlineExceeded), domain.TransportErrTimeout},
		{"net timeout", fmt.Errorf("do: %w", timeoutError{}), domain.TransportErrTimeout},
		{"dns", fmt.Errorf("do: %w", &net.DNSError{Err: "no such host", IsNotFound: true}), domain.TransportErrDNSFailure},
		{"refused", fmt.Errorf("dial: %w", syscall.ECONNREFUSED), domain.TransportErrConnectionRefused},
		{"other", errors.New("connection reset by peer"), domain.TransportErrOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.kind {
				t.Errorf("KindOf(%v) = %s, want %s", tt.err, got, tt.kind)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &Error{Kind: domain.TransportErrOther, Err: cause}

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}
