// pdp/engine/simulator_test.go
package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyward/keyward/model"
	"github.com/keyward/keyward/pdp/engine"
	pdp_model "github.com/keyward/keyward/pdp/model"
)

func compiledPolicy(t *testing.T, policy model.Policy, doc *model.ConditionNode) engine.CompiledPolicy {
	t.Helper()
	return engine.CompiledPolicy{Policy: policy, Tree: compileTree(t, doc)}
}

func TestSimulate_DefaultDeny(t *testing.T) {
	simulator := engine.NewSimulator()
	reqCtx := buildContext(t, nil)

	decision := simulator.Simulate(nil, reqCtx)

	assert.Equal(t, model.PolicyEffectDeny, decision.Effect)
	assert.Empty(t, decision.PolicyID)
	assert.Equal(t, "no matching policy", decision.Reason)
	assert.Empty(t, decision.Trace)
}

func TestSimulate_FirstMatchWins(t *testing.T) {
	simulator := engine.NewSimulator()
	reqCtx := buildContext(t, map[string]interface{}{"app.id": "svc-42"})

	policies := []engine.CompiledPolicy{
		compiledPolicy(t, model.Policy{
			ID: "p-deny", Name: "deny-svc-42", CredentialType: "db-password",
			Effect: model.PolicyEffectDeny, Priority: 10, Enabled: true,
		}, &model.ConditionNode{Field: "app.id", Operator: "eq", Value: "svc-42"}),
		compiledPolicy(t, model.Policy{
			ID: "p-allow", Name: "allow-all", CredentialType: "db-password",
			Effect: model.PolicyEffectAllow, Priority: 20, Enabled: true,
		}, nil),
	}

	decision := simulator.Simulate(policies, reqCtx)

	assert.Equal(t, model.PolicyEffectDeny, decision.Effect)
	assert.Equal(t, "p-deny", decision.PolicyID)

	require.Len(t, decision.Trace, 2)
	assert.True(t, decision.Trace[0].Matched)
	assert.True(t, decision.Trace[1].Skipped)
	assert.Equal(t, pdp_model.SkipReasonEarlierMatch, decision.Trace[1].Reason)
}

func TestSimulate_PriorityOrdering(t *testing.T) {
	simulator := engine.NewSimulator()
	reqCtx := buildContext(t, nil)

	// Supplied out of order; the lower priority value must win.
	policies := []engine.CompiledPolicy{
		compiledPolicy(t, model.Policy{
			ID: "p-late", Name: "late", CredentialType: "db-password",
			Effect: model.PolicyEffectDeny, Priority: 200, Enabled: true,
		}, nil),
		compiledPolicy(t, model.Policy{
			ID: "p-early", Name: "early", CredentialType: "db-password",
			Effect: model.PolicyEffectAllow, Priority: 5, Enabled: true,
		}, nil),
	}

	decision := simulator.Simulate(policies, reqCtx)

	assert.Equal(t, model.PolicyEffectAllow, decision.Effect)
	assert.Equal(t, "p-early", decision.PolicyID)
	require.Len(t, decision.Trace, 2)
	assert.Equal(t, "p-early", decision.Trace[0].PolicyID)
}

func TestSimulate_StableTieBreak(t *testing.T) {
	simulator := engine.NewSimulator()
	reqCtx := buildContext(t, nil)

	// Equal priority: supplied order decides, deterministically.
	policies := []engine.CompiledPolicy{
		compiledPolicy(t, model.Policy{
			ID: "p-a", Name: "a", CredentialType: "db-password",
			Effect: model.PolicyEffectAllow, Priority: 50, Enabled: true,
		}, nil),
		compiledPolicy(t, model.Policy{
			ID: "p-b", Name: "b", CredentialType: "db-password",
			Effect: model.PolicyEffectDeny, Priority: 50, Enabled: true,
		}, nil),
	}

	for i := 0; i < 10; i++ {
		decision := simulator.Simulate(policies, reqCtx)
		assert.Equal(t, "p-a", decision.PolicyID)
		assert.Equal(t, model.PolicyEffectAllow, decision.Effect)
	}
}

func TestSimulate_SkipsDisabledAndForeignTypes(t *testing.T) {
	simulator := engine.NewSimulator()
	reqCtx := buildContext(t, nil)

	policies := []engine.CompiledPolicy{
		compiledPolicy(t, model.Policy{
			ID: "p-disabled", Name: "disabled", CredentialType: "db-password",
			Effect: model.PolicyEffectAllow, Priority: 1, Enabled: false,
		}, nil),
		compiledPolicy(t, model.Policy{
			ID: "p-foreign", Name: "foreign", CredentialType: "api-key",
			Effect: model.PolicyEffectAllow, Priority: 2, Enabled: true,
		}, nil),
	}

	decision := simulator.Simulate(policies, reqCtx)

	assert.Equal(t, model.PolicyEffectDeny, decision.Effect)
	assert.Empty(t, decision.PolicyID)

	require.Len(t, decision.Trace, 2)
	assert.True(t, decision.Trace[0].Skipped)
	assert.Equal(t, pdp_model.SkipReasonDisabled, decision.Trace[0].Reason)
	assert.True(t, decision.Trace[1].Skipped)
	assert.Equal(t, pdp_model.SkipReasonTypeMismatch, decision.Trace[1].Reason)
}

func TestSimulate_UnsatisfiedConditionIsTraced(t *testing.T) {
	simulator := engine.NewSimulator()
	reqCtx := buildContext(t, map[string]interface{}{"request.hour": 22})

	policies := []engine.CompiledPolicy{
		compiledPolicy(t, model.Policy{
			ID: "p-hours", Name: "business-hours", CredentialType: "db-password",
			Effect: model.PolicyEffectAllow, Priority: 10, Enabled: true,
		}, &model.ConditionNode{Field: "request.hour", Operator: "lt", Value: 18}),
	}

	decision := simulator.Simulate(policies, reqCtx)

	assert.Equal(t, model.PolicyEffectDeny, decision.Effect)
	require.Len(t, decision.Trace, 1)
	assert.False(t, decision.Trace[0].Matched)
	assert.False(t, decision.Trace[0].Skipped)
	assert.Equal(t, "condition not satisfied", decision.Trace[0].Reason)
}

func TestSimulate_DoesNotMutateInput(t *testing.T) {
	simulator := engine.NewSimulator()
	reqCtx := buildContext(t, nil)

	policies := []engine.CompiledPolicy{
		compiledPolicy(t, model.Policy{
			ID: "p-2", Name: "second", CredentialType: "db-password",
			Effect: model.PolicyEffectDeny, Priority: 20, Enabled: true,
		}, nil),
		compiledPolicy(t, model.Policy{
			ID: "p-1", Name: "first", CredentialType: "db-password",
			Effect: model.PolicyEffectAllow, Priority: 10, Enabled: true,
		}, nil),
	}

	simulator.Simulate(policies, reqCtx)

	assert.Equal(t, "p-2", policies[0].Policy.ID)
	assert.Equal(t, "p-1", policies[1].Policy.ID)
}
