package validator

import (
	goerrors "errors"
	"fmt"

	keyward_errors "github.com/keyward/keyward/errors"
	"github.com/keyward/keyward/model"
	"github.com/keyward/keyward/pdp/condition"
	"github.com/keyward/keyward/schema"
)

// Validator checks policy documents against the condition language and the
// schema registry. It is pure and idempotent: validating the same document
// twice yields the same result, and nothing is ever mutated.
type Validator struct {
	registry *schema.Registry
}

func New(registry *schema.Registry) *Validator {
	return &Validator{registry: registry}
}

// Validate runs, in order: structural checks, condition parse, schema
// conformance (via the parse), and degenerate-policy detection. An empty
// condition is valid but flagged with an "unconditional effect" warning,
// since a catch-all rule may be intentional.
func (v *Validator) Validate(policy model.Policy) model.ValidationResult {
	var result model.ValidationResult

	if policy.Name == "" {
		result.Errors = append(result.Errors, model.ValidationIssue{
			Path:   "name",
			Reason: "policy name cannot be empty",
		})
	}
	if policy.Effect != model.PolicyEffectAllow && policy.Effect != model.PolicyEffectDeny {
		result.Errors = append(result.Errors, model.ValidationIssue{
			Path:   "effect",
			Reason: fmt.Sprintf("effect must be %q or %q", model.PolicyEffectAllow, model.PolicyEffectDeny),
		})
	}
	if policy.Priority < 0 {
		result.Errors = append(result.Errors, model.ValidationIssue{
			Path:   "priority",
			Reason: "priority cannot be negative",
		})
	}
	if policy.CredentialType == "" {
		result.Errors = append(result.Errors, model.ValidationIssue{
			Path:   "credential_type",
			Reason: "target credential type is required",
		})
	} else if _, err := v.registry.Type(policy.CredentialType); err != nil {
		result.Errors = append(result.Errors, model.ValidationIssue{
			Path:   "credential_type",
			Reason: fmt.Sprintf("unknown credential type %q", policy.CredentialType),
		})
	}

	// Without a resolvable target type the condition cannot be checked
	// against a schema; report what we have.
	if len(result.Errors) > 0 {
		return result
	}

	if policy.Condition == nil {
		result.Valid = true
		result.Warnings = append(result.Warnings, model.ValidationIssue{
			Path:   "condition",
			Reason: "unconditional effect: policy matches every request for its credential type",
		})
		return result
	}

	if _, err := condition.Parse(policy.Condition, policy.CredentialType, v.registry); err != nil {
		result.Errors = append(result.Errors, issueFromParseError(err))
		return result
	}

	result.Valid = true
	return result
}

func issueFromParseError(err error) model.ValidationIssue {
	var malformed *keyward_errors.MalformedConditionError
	if goerrors.As(err, &malformed) {
		return model.ValidationIssue{Path: malformed.Path, Reason: malformed.Reason}
	}
	var mismatch *keyward_errors.TypeMismatchError
	if goerrors.As(err, &mismatch) {
		return model.ValidationIssue{
			Path:     mismatch.Path,
			Field:    mismatch.Field,
			Operator: mismatch.Operator,
			Reason:   mismatch.Error(),
		}
	}
	var unknownField *keyward_errors.UnknownFieldError
	if goerrors.As(err, &unknownField) {
		return model.ValidationIssue{Path: unknownField.Path, Field: unknownField.Path, Reason: unknownField.Error()}
	}
	return model.ValidationIssue{Path: "condition", Reason: err.Error()}
}

// Template returns a skeleton policy for a credential type: required
// attributes filled with safe defaults and an empty condition. The skeleton
// passes Validate as-is, carrying only the unconditional-effect warning.
func (v *Validator) Template(typeID string) (model.Policy, error) {
	if _, err := v.registry.Type(typeID); err != nil {
		return model.Policy{}, err
	}
	return model.Policy{
		Name:           fmt.Sprintf("%s-policy", typeID),
		CredentialType: typeID,
		Effect:         model.PolicyEffectDeny,
		Priority:       100,
		Enabled:        false,
	}, nil
}

// FieldPaths returns the declared field paths of a credential type.
func (v *Validator) FieldPaths(typeID string) ([]model.FieldDef, error) {
	return v.registry.FieldPaths(typeID)
}

// Suggestions returns the prefix-filtered field paths of a credential type
// together with the operators applicable to each field's declared type.
func (v *Validator) Suggestions(typeID, prefix string) ([]model.FieldSuggestion, error) {
	fields, err := v.registry.Suggest(typeID, prefix)
	if err != nil {
		return nil, err
	}
	suggestions := make([]model.FieldSuggestion, 0, len(fields))
	for _, field := range fields {
		suggestions = append(suggestions, model.FieldSuggestion{
			Path:      field.Path,
			Type:      field.Type,
			Operators: condition.ApplicableOperators(field.Type),
		})
	}
	return suggestions, nil
}
