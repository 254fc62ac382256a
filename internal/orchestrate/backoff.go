package orchestrate

import (
	"math"
	"math/rand"
	"time"
)

// Backoff computes the wait before a retry attempt.
//
// The default policy is pure and deterministic: attempt n waits
// BaseDelay * 2^n, so 2s, 4s, 8s for the 1s default. Jitter is an
// explicit extension point and stays off unless configured.
type Backoff struct {
	// BaseDelay is the backoff base; 0 means 1s.
	BaseDelay time.Duration

	// Jitter is a fraction in [0, 1] spreading each wait by up to
	// +/- Jitter around the computed delay. 0 disables jitter.
	Jitter float64

	// Rand supplies values in [0, 1) for jitter. Nil means math/rand.
	Rand func() float64
}

// Delay returns the wait before retry attempt n (n >= 1). It is never
// consulted for attempts beyond the retry ceiling.
func (b Backoff) Delay(attempt int) time.Duration {
	base := b.BaseDelay
	if base <= 0 {
		base = time.Second
	}

	delay := float64(base) * math.Pow(2, float64(attempt))

	if b.Jitter > 0 {
		random := b.Rand
		if random == nil {
			random = rand.Float64
		}
		delay += delay * b.Jitter * (2*random() - 1)
	}

	return time.Duration(delay)
}
