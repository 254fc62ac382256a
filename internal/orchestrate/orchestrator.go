// Package orchestrate drives the attempt loop for outbound HTTP calls:
// execute one round trip, classify the result, and either terminate or
// back off and retry within a fixed budget.
package orchestrate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vietddude/outcall/internal/core/domain"
	"github.com/vietddude/outcall/internal/infra/transport"
	"github.com/vietddude/outcall/internal/metrics"
)

// Config carries the recognized orchestration tunables.
type Config struct {
	// MaxRetries is the number of retries after the first attempt, so
	// MaxRetries=3 permits 4 transport invocations total. Negative
	// values are treated as 0.
	MaxRetries int

	// BaseDelay is the backoff base; 0 means 1s.
	BaseDelay time.Duration

	// Jitter is an optional backoff jitter fraction, default 0.
	Jitter float64
}

// DefaultConfig provides the documented defaults.
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		BaseDelay:  time.Second,
	}
}

// retryState is the mutable loop state for a single call. It is owned
// by exactly one Execute invocation and never shared.
type retryState struct {
	attempt              int
	maxRetries           int
	cumulativeWaitMillis int64
	history              []domain.Attempt
}

// Orchestrator drives the attempt loop. One instance serves many
// concurrent calls; the shared transport is the only shared resource.
type Orchestrator struct {
	transport  transport.Transport
	backoff    Backoff
	maxRetries int
	logger     *slog.Logger
}

// New creates an orchestrator over the given transport.
func New(t transport.Transport, cfg Config, logger *slog.Logger) *Orchestrator {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		transport:  t,
		backoff:    Backoff{BaseDelay: cfg.BaseDelay, Jitter: cfg.Jitter},
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

// Execute runs one orchestration call to completion and always returns
// a terminal result. Cancellation is reported inside the result rather
// than as an error: the outcome becomes transport_failure with the
// canceled marker and whatever attempts completed stay in the history.
func (o *Orchestrator) Execute(ctx context.Context, desc *domain.Descriptor) *domain.Result {
	callID := uuid.NewString()
	start := time.Now()
	log := o.logger.With("call_id", callID, "method", desc.Method, "url", desc.URL)

	state := retryState{maxRetries: o.maxRetries}
	log.Debug("Starting call", "max_retries", state.maxRetries, "timeout", desc.Timeout)

	for {
		resp, err := o.transport.RoundTrip(ctx, desc)

		if err != nil && isCanceled(ctx, err) {
			log.Info("Call canceled during attempt", "attempt", state.attempt)
			return o.finish(callID, domain.OutcomeTransportFailure, 0, nil, &state, start, true)
		}

		status := 0
		if resp != nil {
			status = resp.StatusCode
		}

		classification := Classify(status, err)
		metrics.AttemptsTotal.WithLabelValues(string(classification)).Inc()

		record := domain.Attempt{
			Number:         state.attempt,
			StatusCode:     status,
			TransportError: errorKind(err),
			Classification: classification,
		}

		switch classification {
		case domain.ClassSuccess:
			state.history = append(state.history, record)
			log.Info("Call succeeded", "status", status, "attempt", state.attempt)
			return o.finish(callID, domain.OutcomeSuccess, status, resp.Body, &state, start, false)

		case domain.ClassFatal:
			state.history = append(state.history, record)
			log.Warn("Call failed with client error", "status", status, "attempt", state.attempt)
			return o.finish(callID, domain.OutcomeFatalClientError, status, nil, &state, start, false)
		}

		// Retryable from here on.
		if state.attempt == state.maxRetries {
			state.history = append(state.history, record)
			log.Warn("Retry budget exhausted", "status", status, "error", err, "attempts", state.attempt+1)
			return o.finish(callID, domain.OutcomeRetriesExhausted, status, nil, &state, start, false)
		}

		delay := o.backoff.Delay(state.attempt + 1)
		record.WaitBeforeNextMillis = delay.Milliseconds()
		state.history = append(state.history, record)
		state.cumulativeWaitMillis += delay.Milliseconds()
		state.attempt++

		log.Info("Retrying after backoff",
			"status", status, "error", err, "next_attempt", state.attempt, "delay", delay)
		metrics.RetriesTotal.Inc()
		metrics.BackoffWait.Observe(delay.Seconds())

		select {
		case <-ctx.Done():
			log.Info("Call canceled during backoff", "attempts", state.attempt)
			return o.finish(callID, domain.OutcomeTransportFailure, 0, nil, &state, start, true)
		case <-time.After(delay):
		}
	}
}

// finish builds the immutable terminal result from the loop state.
func (o *Orchestrator) finish(callID string, outcome domain.Outcome, status int, body []byte,
	state *retryState, start time.Time, canceled bool) *domain.Result {

	elapsed := time.Since(start)
	metrics.CallsTotal.WithLabelValues(string(outcome)).Inc()
	metrics.CallDuration.Observe(elapsed.Seconds())

	history := make([]domain.Attempt, len(state.history))
	copy(history, state.history)

	return &domain.Result{
		CallID:               callID,
		Outcome:              outcome,
		FinalStatusCode:      status,
		ResponseBody:         body,
		Attempts:             history,
		TotalElapsedMillis:   elapsed.Milliseconds(),
		CumulativeWaitMillis: state.cumulativeWaitMillis,
		Canceled:             canceled,
	}
}

// isCanceled reports whether the attempt ended because the caller gave
// up, as opposed to the per-attempt timeout firing.
func isCanceled(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	var terr *transport.Error
	return errors.As(err, &terr) && terr.Kind == domain.TransportErrCanceled
}

func errorKind(err error) domain.TransportErrorKind {
	if err == nil {
		return ""
	}
	var terr *transport.Error
	if errors.As(err, &terr) {
		return terr.Kind
	}
	return domain.TransportErrOther
}
