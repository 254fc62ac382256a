// Package request turns raw caller input into validated descriptors.
package request

import (
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/vietddude/outcall/internal/core/domain"
)

// Raw is the unvalidated field set handed over by the caller, e.g. a
// parameter-extraction layer or the HTTP host.
type Raw struct {
	URL           string            `json:"url"`
	Method        string            `json:"method"`
	Headers       map[string]string `json:"headers,omitempty"`
	Body          string            `json:"body,omitempty"`
	TimeoutMillis int64             `json:"timeout_millis,omitempty"`
}

// Validate checks a raw field set and produces an immutable descriptor.
// It is a pure transform: no defaults are read from the environment and
// nothing is contacted over the network.
func Validate(raw Raw) (*domain.Descriptor, error) {
	if strings.TrimSpace(raw.URL) == "" {
		return nil, &Error{Reason: ReasonMissingURL}
	}

	u, err := url.Parse(raw.URL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, &Error{Reason: ReasonInvalidURL, Detail: raw.URL}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &Error{Reason: ReasonInvalidURL, Detail: "unsupported scheme " + u.Scheme}
	}

	method, err := parseMethod(raw.Method)
	if err != nil {
		return nil, err
	}

	headers, err := canonicalHeaders(raw.Headers)
	if err != nil {
		return nil, err
	}

	if raw.TimeoutMillis < 0 {
		return nil, &Error{Reason: ReasonInvalidTimeout, Detail: "timeout must be positive"}
	}
	timeout := domain.DefaultTimeout
	if raw.TimeoutMillis > 0 {
		timeout = time.Duration(raw.TimeoutMillis) * time.Millisecond
	}

	// Bodies pass through verbatim. GET and DELETE normally carry none,
	// but an explicitly provided body is kept.
	var body []byte
	if raw.Body != "" {
		body = []byte(raw.Body)
	}

	return &domain.Descriptor{
		URL:     raw.URL,
		Method:  method,
		Headers: headers,
		Body:    body,
		Timeout: timeout,
	}, nil
}

func parseMethod(m string) (domain.Method, error) {
	switch domain.Method(strings.ToUpper(strings.TrimSpace(m))) {
	case domain.MethodGet:
		return domain.MethodGet, nil
	case domain.MethodPost:
		return domain.MethodPost, nil
	case domain.MethodPut:
		return domain.MethodPut, nil
	case domain.MethodDelete:
		return domain.MethodDelete, nil
	case domain.MethodPatch:
		return domain.MethodPatch, nil
	case "":
		return "", &Error{Reason: ReasonInvalidMethod, Detail: "method is required"}
	default:
		return "", &Error{Reason: ReasonInvalidMethod, Detail: m}
	}
}

// canonicalHeaders folds keys into canonical MIME form and rejects
// case-insensitive collisions instead of silently merging them.
func canonicalHeaders(raw map[string]string) (http.Header, error) {
	if len(raw) == 0 {
		return http.Header{}, nil
	}

	headers := http.Header{}
	seen := make(map[string]string, len(raw))
	for key, value := range raw {
		canonical := textproto.CanonicalMIMEHeaderKey(key)
		if prev, ok := seen[canonical]; ok {
			return nil, &Error{Reason: ReasonDuplicateHeaderKey, Detail: prev + " / " + key}
		}
		seen[canonical] = key
		headers.Set(canonical, value)
	}
	return headers, nil
}
