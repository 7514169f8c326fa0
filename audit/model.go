// audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

// AuditLog records one auditable event: an access decision produced by the
// engine, or a change to a policy or application made by an operator.
type AuditLog struct {
	Timestamp      time.Time       `json:"timestamp"`
	Action         string          `json:"action"` // e.g. "decision", "policy.created"
	Actor          string          `json:"actor,omitempty"`
	AppID          string          `json:"app_id,omitempty"`
	CredentialID   string          `json:"credential_id,omitempty"`
	CredentialType string          `json:"credential_type,omitempty"`
	Effect         string          `json:"effect,omitempty"`
	PolicyID       string          `json:"policy_id,omitempty"`
	ChangeDetails  json.RawMessage `json:"change_details,omitempty"`
}
