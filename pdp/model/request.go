package model

import (
	"fmt"
	"time"

	keyward_errors "github.com/keyward/keyward/errors"
	"github.com/keyward/keyward/model"
	"github.com/keyward/keyward/schema"
)

// AccessRequest is the wire form of one access attempt: either a synthetic
// request from the authoring UI's dry-run screen or the facts of a live
// proxy request. Field values arrive untyped and are coerced against the
// credential type's schema when the context is built.
type AccessRequest struct {
	AppID          string                 `json:"app_id"`
	CredentialID   string                 `json:"credential_id"`
	CredentialType string                 `json:"credential_type"`
	Timestamp      time.Time              `json:"timestamp,omitempty"`
	Fields         map[string]interface{} `json:"fields"`
}

// RequestContext is the typed, immutable fact set for one evaluation.
// Built fresh per request and discarded after the decision.
type RequestContext struct {
	AppID          string
	CredentialID   string
	CredentialType string
	Timestamp      time.Time
	Fields         map[string]model.Value
}

// Lookup returns the value of a field path and whether it is present.
func (c *RequestContext) Lookup(path string) (model.Value, bool) {
	v, ok := c.Fields[path]
	return v, ok
}

// BuildRequestContext coerces a raw access request into a typed context
// using the declared schema of its credential type. Undeclared field paths
// are rejected: a context carrying facts no policy can reference is a
// caller bug, not something to silently ignore.
func BuildRequestContext(req AccessRequest, registry *schema.Registry) (*RequestContext, error) {
	if req.CredentialType == "" {
		return nil, fmt.Errorf("%w: credential type is required", keyward_errors.ErrInvalidRequestContext)
	}
	if _, err := registry.Type(req.CredentialType); err != nil {
		return nil, err
	}

	fields := make(map[string]model.Value, len(req.Fields))
	for path, raw := range req.Fields {
		declared, err := registry.ResolveType(req.CredentialType, path)
		if err != nil {
			return nil, err
		}
		value, err := model.CoerceValue(raw, declared)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", keyward_errors.ErrInvalidRequestContext, path, err)
		}
		fields[path] = value
	}

	timestamp := req.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	return &RequestContext{
		AppID:          req.AppID,
		CredentialID:   req.CredentialID,
		CredentialType: req.CredentialType,
		Timestamp:      timestamp,
		Fields:         fields,
	}, nil
}
