package domain

// Outcome is the terminal state of one orchestration call.
type Outcome string

const (
	OutcomeSuccess          Outcome = "success"
	OutcomeFatalClientError Outcome = "fatal_client_error"
	OutcomeRetriesExhausted Outcome = "retries_exhausted"
	OutcomeTransportFailure Outcome = "transport_failure"
)

// Result is the terminal value of one orchestration call. It is handed
// to the caller once and never mutated again; the attempt history is a
// copy of the loop's internal state.
type Result struct {
	CallID               string    `json:"call_id"`
	Outcome              Outcome   `json:"outcome"`
	FinalStatusCode      int       `json:"final_status_code,omitempty"`
	ResponseBody         []byte    `json:"response_body,omitempty"` // present only on success
	Attempts             []Attempt `json:"attempts"`
	TotalElapsedMillis   int64     `json:"total_elapsed_millis"`
	CumulativeWaitMillis int64     `json:"cumulative_wait_millis"`
	Canceled             bool      `json:"canceled,omitempty"` // caller canceled before a terminal classification
}
