package domain

// Classification buckets one transport outcome for the retry loop.
type Classification string

const (
	ClassSuccess   Classification = "success"
	ClassRetryable Classification = "retryable"
	ClassFatal     Classification = "fatal"
)

// TransportErrorKind identifies a failure that ended an attempt before
// an HTTP status was received.
type TransportErrorKind string

const (
	TransportErrTimeout           TransportErrorKind = "timeout"
	TransportErrConnectionRefused TransportErrorKind = "connection_refused"
	TransportErrDNSFailure        TransportErrorKind = "dns_failure"
	TransportErrCanceled          TransportErrorKind = "canceled"
	TransportErrOther             TransportErrorKind = "other"
)

// Attempt records one transport invocation and how it was classified.
// Records are append-only; insertion order is chronological.
type Attempt struct {
	Number               int                `json:"number"`
	StatusCode           int                `json:"status_code,omitempty"`     // 0 when no response was received
	TransportError       TransportErrorKind `json:"transport_error,omitempty"` // empty when a status was received
	Classification       Classification     `json:"classification"`
	WaitBeforeNextMillis int64              `json:"wait_before_next_millis,omitempty"` // 0 when no further attempt was scheduled
}
