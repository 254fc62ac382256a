package domain

import (
	"net/http"
	"time"
)

// Method is an allowed HTTP method for an outbound call.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodPatch  Method = "PATCH"
)

// DefaultTimeout bounds a single round trip when the caller does not
// set one.
const DefaultTimeout = 10 * time.Second

// Descriptor is a validated outbound request. It is only constructed by
// the request validator and must not be mutated afterwards, so one
// descriptor can be shared across retry attempts and goroutines.
type Descriptor struct {
	URL     string
	Method  Method
	Headers http.Header
	Body    []byte
	Timeout time.Duration
}
