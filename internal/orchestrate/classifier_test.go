package orchestrate

import (
	"errors"
	"testing"

	"github.com/vietddude/outcall/internal/core/domain"
	"github.com/vietddude/outcall/internal/infra/transport"
)

func TestClassifyStatusRanges(t *testing.T) {
	for status := 200; status <= 299; status++ {
		if got := Classify(status, nil); got != domain.ClassSuccess {
			t.Errorf("Classify(%d) = %s, want success", status, got)
		}
	}

	for status := 400; status <= 499; status++ {
		want := domain.ClassFatal
		if status == 429 {
			want = domain.ClassRetryable
		}
		if got := Classify(status, nil); got != want {
			t.Errorf("Classify(%d) = %s, want %s", status, got, want)
		}
	}

	for status := 500; status <= 599; status++ {
		if got := Classify(status, nil); got != domain.ClassRetryable {
			t.Errorf("Classify(%d) = %s, want retryable", status, got)
		}
	}
}

func TestClassifyTransportErrors(t *testing.T) {
	kinds := []domain.TransportErrorKind{
		domain.TransportErrTimeout,
		domain.TransportErrConnectionRefused,
		domain.TransportErrDNSFailure,
		domain.TransportErrOther,
	}
	for _, kind := range kinds {
		err := &transport.Error{Kind: kind, Err: errors.New("boom")}
		if got := Classify(0, err); got != domain.ClassRetryable {
			t.Errorf("Classify(err %s) = %s, want retryable", kind, got)
		}
	}
}

func TestClassifyOtherStatuses(t *testing.T) {
	for _, status := range []int{100, 101, 301, 302, 304} {
		if got := Classify(status, nil); got != domain.ClassFatal {
			t.Errorf("Classify(%d) = %s, want fatal", status, got)
		}
	}
}

// Classification must be a pure function of its input.
func TestClassifyIdempotent(t *testing.T) {
	err := &transport.Error{Kind: domain.TransportErrTimeout, Err: errors.New("timeout")}
	for i := 0; i < 10; i++ {
		if Classify(503, nil) != domain.ClassRetryable {
			t.Fatal("Classify(503) changed across calls")
		}
		if Classify(0, err) != domain.ClassRetryable {
			t.Fatal("Classify(err) changed across calls")
		}
	}
}
