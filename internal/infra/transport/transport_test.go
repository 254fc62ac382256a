package transport

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vietddude/outcall/internal/core/domain"
)

func descriptor(url string, timeout time.Duration) *domain.Descriptor {
	return &domain.Descriptor{
		URL:     url,
		Method:  domain.MethodGet,
		Headers: http.Header{},
		Timeout: timeout,
	}
}

func TestRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("X-Request-Id"); got != "abc" {
			t.Errorf("X-Request-Id = %q, want abc", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "payload" {
			t.Errorf("body = %q, want payload", body)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("created"))
	}))
	defer srv.Close()

	tr := NewHTTPTransport()
	desc := &domain.Descriptor{
		URL:     srv.URL,
		Method:  domain.MethodPost,
		Headers: http.Header{"X-Request-Id": []string{"abc"}},
		Body:    []byte("payload"),
		Timeout: 5 * time.Second,
	}

	resp, err := tr.RoundTrip(context.Background(), desc)
	if err != nil {
		t.Fatalf("RoundTrip() error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want 201", resp.StatusCode)
	}
	if string(resp.Body) != "created" {
		t.Errorf("body = %q, want created", resp.Body)
	}

	stats := tr.Monitor().Stats()
	if stats.Requests != 1 {
		t.Errorf("requests = %d, want 1", stats.Requests)
	}
}

func TestRoundTripTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	tr := NewHTTPTransport()
	_, err := tr.RoundTrip(context.Background(), descriptor(srv.URL, 30*time.Millisecond))

	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("RoundTrip() error = %v, want *Error", err)
	}
	if terr.Kind != domain.TransportErrTimeout {
		t.Errorf("kind = %s, want timeout", terr.Kind)
	}
	if stats := tr.Monitor().Stats(); stats.Timeouts != 1 {
		t.Errorf("timeouts = %d, want 1", stats.Timeouts)
	}
}

func TestRoundTripConnectionRefused(t *testing.T) {
	// Grab a free port, then close it so the dial is refused.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	url := "http://" + ln.Addr().String()
	_ = ln.Close()

	tr := NewHTTPTransport()
	_, err = tr.RoundTrip(context.Background(), descriptor(url, time.Second))

	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("RoundTrip() error = %v, want *Error", err)
	}
	if terr.Kind != domain.TransportErrConnectionRefused {
		t.Errorf("kind = %s, want connection_refused", terr.Kind)
	}
}

func TestRoundTripCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	tr := NewHTTPTransport()
	_, err := tr.RoundTrip(ctx, descriptor(srv.URL, 5*time.Second))

	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("RoundTrip() error = %v, want *Error", err)
	}
	if terr.Kind != domain.TransportErrCanceled {
		t.Errorf("kind = %s, want canceled", terr.Kind)
	}
}

func TestRoundTripRecordsThrottle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	tr := NewHTTPTransport()
	resp, err := tr.RoundTrip(context.Background(), descriptor(srv.URL, time.Second))
	if err != nil {
		t.Fatalf("RoundTrip() error = %v", err)
	}
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", resp.StatusCode)
	}

	stats := tr.Monitor().Stats()
	if stats.Throttled != 1 {
		t.Errorf("throttled = %d, want 1", stats.Throttled)
	}
	if stats.LastRetryAfter != "7" {
		t.Errorf("last retry-after = %q, want 7", stats.LastRetryAfter)
	}
}
