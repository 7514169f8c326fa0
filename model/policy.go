// model/policy.go
package model

import (
	"time"
)

const (
	PolicyEffectAllow = "allow"
	PolicyEffectDeny  = "deny"
)

// Policy is a named, versioned allow/deny rule scoped to one credential
// type. The engine receives policies as immutable snapshots; mutation is the
// store's business.
type Policy struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	CredentialType string         `json:"credential_type"`
	Effect         string         `json:"effect"` // "allow" or "deny"
	Priority       int            `json:"priority"`
	Condition      *ConditionNode `json:"condition,omitempty"` // nil = unconditional match
	Enabled        bool           `json:"enabled"`
	Version        int            `json:"version"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// ConditionNode is the wire form of a condition: either a combinator
// (Op + Children) or a leaf (Field + Operator + Value). The parser turns
// this loose shape into a typed tree; nothing else should evaluate it.
type ConditionNode struct {
	Op       string          `json:"op,omitempty"` // "AND", "OR" or "NOT"
	Children []ConditionNode `json:"children,omitempty"`
	Field    string          `json:"field,omitempty"`
	Operator string          `json:"operator,omitempty"`
	Value    interface{}     `json:"value,omitempty"`
}

// IsCombinator reports whether the node carries a boolean combinator rather
// than a leaf comparison.
func (n *ConditionNode) IsCombinator() bool {
	return n.Op != ""
}

// ValidationIssue names one offending path/operator/field in a policy
// document, as structured data the controller can map to a response.
type ValidationIssue struct {
	Path     string `json:"path"`
	Field    string `json:"field,omitempty"`
	Operator string `json:"operator,omitempty"`
	Reason   string `json:"reason"`
}

// ValidationResult is the outcome of validating one policy document.
// Warnings do not make the document invalid.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationIssue `json:"errors,omitempty"`
	Warnings []ValidationIssue `json:"warnings,omitempty"`
}

type PolicySearchCriteria struct {
	Name           string     `json:"name,omitempty"`
	CredentialType string     `json:"credential_type,omitempty"`
	Effect         string     `json:"effect,omitempty"`
	MinPriority    int        `json:"min_priority,omitempty"`
	MaxPriority    int        `json:"max_priority,omitempty"`
	Enabled        *bool      `json:"enabled,omitempty"`
	FromDate       time.Time  `json:"from_date,omitempty"`
	ToDate         time.Time  `json:"to_date,omitempty"`
	Limit          int        `json:"limit,omitempty"`
}
