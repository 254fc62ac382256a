package orchestrate

import (
	"net/http"

	"github.com/vietddude/outcall/internal/core/domain"
)

// Classify buckets one transport outcome. This is the single routing
// table for the retry loop; no other component re-derives retryability.
//
// Priority order, first match wins:
//   - transport failure (any kind): retryable
//   - 2xx: success
//   - 5xx: retryable
//   - 429: retryable (standard rate-limit semantics)
//   - remaining 4xx and anything else: fatal
func Classify(statusCode int, err error) domain.Classification {
	switch {
	case err != nil:
		return domain.ClassRetryable
	case statusCode >= 200 && statusCode <= 299:
		return domain.ClassSuccess
	case statusCode >= 500 && statusCode <= 599:
		return domain.ClassRetryable
	case statusCode == http.StatusTooManyRequests:
		return domain.ClassRetryable
	default:
		return domain.ClassFatal
	}
}
