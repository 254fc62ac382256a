package request

import "fmt"

// Reason identifies why validation rejected a raw request.
type Reason string

const (
	ReasonMissingURL         Reason = "missing_url"
	ReasonInvalidURL         Reason = "invalid_url"
	ReasonInvalidMethod      Reason = "invalid_method"
	ReasonDuplicateHeaderKey Reason = "duplicate_header_key"
	ReasonInvalidTimeout     Reason = "invalid_timeout"
)

// Error reports a rejected raw request. Validation runs before any
// network activity, so an Error means no attempt was made.
type Error struct {
	Reason Reason
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("invalid request: %s", e.Reason)
	}
	return fmt.Sprintf("invalid request: %s (%s)", e.Reason, e.Detail)
}
