// Package transport performs single HTTP round trips for validated
// descriptors and maps client failures into a small error taxonomy.
//
// This package contains:
//   - Transport interface: one attempt, no retry logic
//   - HTTPTransport: net/http implementation with a shared tuned client
//   - Monitor: latency and throttle tracking across calls
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vietddude/outcall/internal/core/domain"
)

// Transport performs exactly one HTTP round trip. Implementations must
// be safe for concurrent use: independent orchestration calls share one
// transport.
type Transport interface {
	RoundTrip(ctx context.Context, desc *domain.Descriptor) (*Response, error)
}

// Response is one complete HTTP exchange with the body fully read.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// HTTPTransport executes descriptors over a shared net/http client.
type HTTPTransport struct {
	client  *http.Client
	monitor *Monitor
}

// NewHTTPTransport creates a transport with connection pooling suitable
// for repeated calls to the same host.
func NewHTTPTransport() *HTTPTransport {
	return &HTTPTransport{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		monitor: NewMonitor(),
	}
}

// Monitor returns the transport's stats tracker.
func (t *HTTPTransport) Monitor() *Monitor {
	return t.monitor
}

// RoundTrip performs one attempt. The descriptor timeout bounds the
// whole exchange including reading the body; exceeding it yields a
// timeout-kind error, never a status code.
func (t *HTTPTransport) RoundTrip(ctx context.Context, desc *domain.Descriptor) (*Response, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, desc.Timeout)
	defer cancel()

	var bodyReader io.Reader
	if len(desc.Body) > 0 {
		bodyReader = bytes.NewReader(desc.Body)
	}

	req, err := http.NewRequestWithContext(ctx, string(desc.Method), desc.URL, bodyReader)
	if err != nil {
		return nil, &Error{Kind: domain.TransportErrOther, Err: fmt.Errorf("create request: %w", err)}
	}
	for key, values := range desc.Headers {
		req.Header[key] = values // already canonical
	}

	resp, err := t.client.Do(req)
	if err != nil {
		kind := KindOf(err)
		t.monitor.RecordFailure(kind)
		return nil, &Error{Kind: kind, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		kind := KindOf(err)
		t.monitor.RecordFailure(kind)
		return nil, &Error{Kind: kind, Err: fmt.Errorf("read response: %w", err)}
	}

	// Rate limit detection. Recorded for diagnostics only; the backoff
	// schedule stays with the orchestrator.
	if resp.StatusCode == http.StatusTooManyRequests {
		t.monitor.RecordThrottle(resp.Header.Get("Retry-After"))
	}

	t.monitor.RecordRequest(time.Since(start))

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}
