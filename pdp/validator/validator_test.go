// pdp/validator/validator_test.go
package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyward/keyward/model"
	"github.com/keyward/keyward/pdp/validator"
	"github.com/keyward/keyward/schema"
)

func newValidator(t *testing.T) *validator.Validator {
	t.Helper()
	registry, err := schema.DefaultRegistry()
	require.NoError(t, err)
	return validator.New(registry)
}

func validPolicy() model.Policy {
	return model.Policy{
		Name:           "business-hours",
		CredentialType: "db-password",
		Effect:         model.PolicyEffectAllow,
		Priority:       10,
		Enabled:        true,
		Condition: &model.ConditionNode{
			Op: "AND",
			Children: []model.ConditionNode{
				{Field: "app.id", Operator: "eq", Value: "svc-42"},
				{Field: "request.hour", Operator: "gte", Value: 9},
				{Field: "request.hour", Operator: "lt", Value: 18},
			},
		},
	}
}

func TestValidate_ValidPolicy(t *testing.T) {
	result := newValidator(t).Validate(validPolicy())

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidate_StructuralErrors(t *testing.T) {
	v := newValidator(t)

	policy := validPolicy()
	policy.Name = ""
	policy.Effect = "maybe"
	policy.Priority = -1
	policy.CredentialType = ""

	result := v.Validate(policy)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 4)

	paths := make(map[string]bool)
	for _, issue := range result.Errors {
		paths[issue.Path] = true
	}
	assert.True(t, paths["name"])
	assert.True(t, paths["effect"])
	assert.True(t, paths["priority"])
	assert.True(t, paths["credential_type"])
}

func TestValidate_UnknownCredentialType(t *testing.T) {
	policy := validPolicy()
	policy.CredentialType = "vault-token"

	result := newValidator(t).Validate(policy)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "credential_type", result.Errors[0].Path)
}

func TestValidate_UnconditionalPolicyWarns(t *testing.T) {
	policy := validPolicy()
	policy.Condition = nil

	result := newValidator(t).Validate(policy)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "condition", result.Warnings[0].Path)
	assert.Contains(t, result.Warnings[0].Reason, "unconditional")
}

func TestValidate_UnknownField(t *testing.T) {
	policy := validPolicy()
	policy.Condition = &model.ConditionNode{Field: "request.minute", Operator: "eq", Value: 30}

	result := newValidator(t).Validate(policy)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Reason, "request.minute")
}

func TestValidate_InapplicableOperator(t *testing.T) {
	policy := validPolicy()
	policy.Condition = &model.ConditionNode{Field: "credential.shared", Operator: "gt", Value: true}

	result := newValidator(t).Validate(policy)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "credential.shared", result.Errors[0].Field)
	assert.Equal(t, "gt", result.Errors[0].Operator)
}

func TestValidate_MalformedCondition(t *testing.T) {
	policy := validPolicy()
	policy.Condition = &model.ConditionNode{Op: "AND"}

	result := newValidator(t).Validate(policy)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "condition", result.Errors[0].Path)
}

func TestTemplate_PassesValidationForEveryType(t *testing.T) {
	registry, err := schema.DefaultRegistry()
	require.NoError(t, err)
	v := validator.New(registry)

	for _, ct := range registry.Types() {
		template, err := v.Template(ct.ID)
		require.NoError(t, err)

		assert.Equal(t, ct.ID, template.CredentialType)
		assert.Equal(t, model.PolicyEffectDeny, template.Effect)
		assert.False(t, template.Enabled)

		result := v.Validate(template)
		assert.True(t, result.Valid, "template for %s should validate", ct.ID)
		assert.Len(t, result.Warnings, 1)
	}
}

func TestTemplate_UnknownType(t *testing.T) {
	_, err := newValidator(t).Template("vault-token")
	assert.Error(t, err)
}

func TestSuggestions(t *testing.T) {
	v := newValidator(t)

	suggestions, err := v.Suggestions("db-password", "request.")
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)

	for _, s := range suggestions {
		assert.Contains(t, s.Path, "request.")
		assert.NotEmpty(t, s.Operators)
	}

	// A number field offers ordering operators, a boolean field does not.
	byPath := make(map[string]model.FieldSuggestion)
	all, err := v.Suggestions("db-password", "")
	require.NoError(t, err)
	for _, s := range all {
		byPath[s.Path] = s
	}
	assert.Contains(t, byPath["request.hour"].Operators, "lt")
	assert.NotContains(t, byPath["credential.shared"].Operators, "lt")
}
