// pdp/engine/evaluator_test.go
package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyward/keyward/model"
	"github.com/keyward/keyward/pdp/condition"
	"github.com/keyward/keyward/pdp/engine"
	pdp_model "github.com/keyward/keyward/pdp/model"
	"github.com/keyward/keyward/schema"
)

func compileTree(t *testing.T, doc *model.ConditionNode) *condition.Tree {
	t.Helper()
	registry, err := schema.DefaultRegistry()
	require.NoError(t, err)
	tree, err := condition.Parse(doc, "db-password", registry)
	require.NoError(t, err)
	return tree
}

func buildContext(t *testing.T, fields map[string]interface{}) *pdp_model.RequestContext {
	t.Helper()
	registry, err := schema.DefaultRegistry()
	require.NoError(t, err)
	reqCtx, err := pdp_model.BuildRequestContext(pdp_model.AccessRequest{
		AppID:          "svc-42",
		CredentialID:   "cred-7",
		CredentialType: "db-password",
		Fields:         fields,
	}, registry)
	require.NoError(t, err)
	return reqCtx
}

func TestEvaluate_UnconditionalTree(t *testing.T) {
	evaluator := engine.NewEvaluator()
	reqCtx := buildContext(t, nil)

	assert.True(t, evaluator.Evaluate(&condition.Tree{}, reqCtx))
	assert.True(t, evaluator.Evaluate(nil, reqCtx))
}

func TestEvaluate_BusinessHoursPolicy(t *testing.T) {
	// app.id == svc-42 AND 9 <= request.hour < 18
	tree := compileTree(t, &model.ConditionNode{
		Op: "AND",
		Children: []model.ConditionNode{
			{Field: "app.id", Operator: "eq", Value: "svc-42"},
			{Field: "request.hour", Operator: "gte", Value: 9},
			{Field: "request.hour", Operator: "lt", Value: 18},
		},
	})
	evaluator := engine.NewEvaluator()

	insideHours := buildContext(t, map[string]interface{}{
		"app.id":       "svc-42",
		"request.hour": 14,
	})
	assert.True(t, evaluator.Evaluate(tree, insideHours))

	afterHours := buildContext(t, map[string]interface{}{
		"app.id":       "svc-42",
		"request.hour": 20,
	})
	assert.False(t, evaluator.Evaluate(tree, afterHours))

	wrongApp := buildContext(t, map[string]interface{}{
		"app.id":       "svc-99",
		"request.hour": 14,
	})
	assert.False(t, evaluator.Evaluate(tree, wrongApp))
}

func TestEvaluate_Combinators(t *testing.T) {
	evaluator := engine.NewEvaluator()
	reqCtx := buildContext(t, map[string]interface{}{
		"credential.environment": "staging",
	})

	or := compileTree(t, &model.ConditionNode{
		Op: "OR",
		Children: []model.ConditionNode{
			{Field: "credential.environment", Operator: "eq", Value: "prod"},
			{Field: "credential.environment", Operator: "eq", Value: "staging"},
		},
	})
	assert.True(t, evaluator.Evaluate(or, reqCtx))

	not := compileTree(t, &model.ConditionNode{
		Op: "NOT",
		Children: []model.ConditionNode{
			{Field: "credential.environment", Operator: "eq", Value: "prod"},
		},
	})
	assert.True(t, evaluator.Evaluate(not, reqCtx))
}

func TestEvaluate_MissingFieldFailsClosed(t *testing.T) {
	evaluator := engine.NewEvaluator()
	empty := buildContext(t, nil)

	eq := compileTree(t, &model.ConditionNode{Field: "app.owner", Operator: "eq", Value: "platform"})
	assert.False(t, evaluator.Evaluate(eq, empty))

	// neq also fails closed on an absent field: absence is not inequality.
	neq := compileTree(t, &model.ConditionNode{Field: "app.owner", Operator: "neq", Value: "platform"})
	assert.False(t, evaluator.Evaluate(neq, empty))

	// NOT over an absent-field leaf flips the fail-closed false.
	notEq := compileTree(t, &model.ConditionNode{
		Op:       "NOT",
		Children: []model.ConditionNode{{Field: "app.owner", Operator: "eq", Value: "platform"}},
	})
	assert.True(t, evaluator.Evaluate(notEq, empty))
}

func TestEvaluate_Exists(t *testing.T) {
	evaluator := engine.NewEvaluator()
	tree := compileTree(t, &model.ConditionNode{Field: "app.owner", Operator: "exists"})

	present := buildContext(t, map[string]interface{}{"app.owner": "platform"})
	assert.True(t, evaluator.Evaluate(tree, present))

	absent := buildContext(t, nil)
	assert.False(t, evaluator.Evaluate(tree, absent))
}

func TestEvaluate_Membership(t *testing.T) {
	evaluator := engine.NewEvaluator()
	reqCtx := buildContext(t, map[string]interface{}{
		"request.weekday": "saturday",
		"credential.tags": []interface{}{"shared", "legacy"},
	})

	in := compileTree(t, &model.ConditionNode{
		Field: "request.weekday", Operator: "in", Value: []interface{}{"saturday", "sunday"},
	})
	assert.True(t, evaluator.Evaluate(in, reqCtx))

	notIn := compileTree(t, &model.ConditionNode{
		Field: "request.weekday", Operator: "notIn", Value: []interface{}{"saturday", "sunday"},
	})
	assert.False(t, evaluator.Evaluate(notIn, reqCtx))

	contains := compileTree(t, &model.ConditionNode{
		Field: "credential.tags", Operator: "contains", Value: "legacy",
	})
	assert.True(t, evaluator.Evaluate(contains, reqCtx))

	containsMissing := compileTree(t, &model.ConditionNode{
		Field: "credential.tags", Operator: "contains", Value: "rotated",
	})
	assert.False(t, evaluator.Evaluate(containsMissing, reqCtx))
}

func TestEvaluate_StringContainsAndMatches(t *testing.T) {
	evaluator := engine.NewEvaluator()
	reqCtx := buildContext(t, map[string]interface{}{
		"request.ip": "10.1.2.3",
	})

	contains := compileTree(t, &model.ConditionNode{
		Field: "request.ip", Operator: "contains", Value: "1.2",
	})
	assert.True(t, evaluator.Evaluate(contains, reqCtx))

	matches := compileTree(t, &model.ConditionNode{
		Field: "request.ip", Operator: "matches", Value: `^10\.`,
	})
	assert.True(t, evaluator.Evaluate(matches, reqCtx))

	noMatch := compileTree(t, &model.ConditionNode{
		Field: "request.ip", Operator: "matches", Value: `^192\.`,
	})
	assert.False(t, evaluator.Evaluate(noMatch, reqCtx))
}

func TestEvaluate_TimestampOrdering(t *testing.T) {
	evaluator := engine.NewEvaluator()
	reqCtx := buildContext(t, map[string]interface{}{
		"credential.rotated_at": "2026-06-01T12:00:00Z",
	})

	before := compileTree(t, &model.ConditionNode{
		Field: "credential.rotated_at", Operator: "lt", Value: "2026-07-01T00:00:00Z",
	})
	assert.True(t, evaluator.Evaluate(before, reqCtx))

	after := compileTree(t, &model.ConditionNode{
		Field: "credential.rotated_at", Operator: "gt", Value: "2026-07-01T00:00:00Z",
	})
	assert.False(t, evaluator.Evaluate(after, reqCtx))
}

func TestEvaluate_BooleanEquality(t *testing.T) {
	evaluator := engine.NewEvaluator()
	reqCtx := buildContext(t, map[string]interface{}{
		"credential.shared": true,
	})

	tree := compileTree(t, &model.ConditionNode{
		Field: "credential.shared", Operator: "eq", Value: true,
	})
	assert.True(t, evaluator.Evaluate(tree, reqCtx))
}

func TestEvaluate_IsDeterministic(t *testing.T) {
	evaluator := engine.NewEvaluator()
	tree := compileTree(t, &model.ConditionNode{
		Op: "AND",
		Children: []model.ConditionNode{
			{Field: "app.id", Operator: "eq", Value: "svc-42"},
			{Field: "request.hour", Operator: "lte", Value: 18},
		},
	})
	reqCtx := buildContext(t, map[string]interface{}{
		"app.id":       "svc-42",
		"request.hour": 10,
	})

	first := evaluator.Evaluate(tree, reqCtx)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, evaluator.Evaluate(tree, reqCtx))
	}
}
