package model

// Decision is the outcome of evaluating a policy set against one request.
// An empty PolicyID means no policy matched and the default deny applied.
type Decision struct {
	Effect   string       `json:"effect"`
	PolicyID string       `json:"policy_id,omitempty"`
	Reason   string       `json:"reason,omitempty"`
	Trace    []TraceEntry `json:"trace,omitempty"`
}

// TraceEntry explains what happened to one policy during simulation: it
// either matched, was evaluated and did not match, or was skipped without
// evaluation (disabled, wrong credential type, or an earlier match already
// settled the decision).
type TraceEntry struct {
	PolicyID   string `json:"policy_id"`
	PolicyName string `json:"policy_name,omitempty"`
	Matched    bool   `json:"matched"`
	Skipped    bool   `json:"skipped"`
	Reason     string `json:"reason,omitempty"`
}

// Skip reasons surfaced in simulation traces. The dashboard keys on these
// strings to explain outcomes, so they are part of the API.
const (
	SkipReasonDisabled     = "policy disabled"
	SkipReasonTypeMismatch = "credential type mismatch"
	SkipReasonEarlierMatch = "earlier match"
)
