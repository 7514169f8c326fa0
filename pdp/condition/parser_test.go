// pdp/condition/parser_test.go
package condition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	keyward_errors "github.com/keyward/keyward/errors"
	"github.com/keyward/keyward/model"
	"github.com/keyward/keyward/pdp/condition"
	"github.com/keyward/keyward/schema"
)

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	registry, err := schema.DefaultRegistry()
	require.NoError(t, err)
	return registry
}

func TestParse_NilDocumentIsUnconditional(t *testing.T) {
	tree, err := condition.Parse(nil, "db-password", testRegistry(t))
	require.NoError(t, err)
	assert.True(t, tree.IsUnconditional())
}

func TestParse_Leaf(t *testing.T) {
	doc := &model.ConditionNode{Field: "app.id", Operator: "eq", Value: "svc-42"}

	tree, err := condition.Parse(doc, "db-password", testRegistry(t))
	require.NoError(t, err)
	require.False(t, tree.IsUnconditional())

	leaf, ok := tree.Root.(*condition.Leaf)
	require.True(t, ok)
	assert.Equal(t, "app.id", leaf.Field)
	assert.Equal(t, condition.OpEq, leaf.Operator)
	assert.Equal(t, model.TypeString, leaf.FieldType)
	assert.Equal(t, "svc-42", leaf.Value.Str)
}

func TestParse_NestedCombinators(t *testing.T) {
	doc := &model.ConditionNode{
		Op: "AND",
		Children: []model.ConditionNode{
			{Field: "app.id", Operator: "eq", Value: "svc-42"},
			{
				Op: "NOT",
				Children: []model.ConditionNode{
					{Field: "credential.environment", Operator: "eq", Value: "prod"},
				},
			},
		},
	}

	tree, err := condition.Parse(doc, "db-password", testRegistry(t))
	require.NoError(t, err)

	root, ok := tree.Root.(*condition.Combinator)
	require.True(t, ok)
	assert.Equal(t, condition.CombinatorAnd, root.Op)
	require.Len(t, root.Children, 2)

	not, ok := root.Children[1].(*condition.Combinator)
	require.True(t, ok)
	assert.Equal(t, condition.CombinatorNot, not.Op)
	assert.Len(t, not.Children, 1)
}

func TestParse_MalformedDocuments(t *testing.T) {
	registry := testRegistry(t)

	cases := []struct {
		name string
		doc  *model.ConditionNode
		path string
	}{
		{
			name: "unknown combinator",
			doc:  &model.ConditionNode{Op: "XOR", Children: []model.ConditionNode{{Field: "app.id", Operator: "eq", Value: "x"}}},
			path: "condition",
		},
		{
			name: "combinator with leaf attributes",
			doc:  &model.ConditionNode{Op: "AND", Field: "app.id", Children: []model.ConditionNode{{Field: "app.id", Operator: "eq", Value: "x"}}},
			path: "condition",
		},
		{
			name: "NOT with two children",
			doc: &model.ConditionNode{Op: "NOT", Children: []model.ConditionNode{
				{Field: "app.id", Operator: "eq", Value: "x"},
				{Field: "app.id", Operator: "eq", Value: "y"},
			}},
			path: "condition",
		},
		{
			name: "empty combinator",
			doc:  &model.ConditionNode{Op: "AND"},
			path: "condition",
		},
		{
			name: "leaf without field",
			doc:  &model.ConditionNode{Operator: "eq", Value: "x"},
			path: "condition",
		},
		{
			name: "unknown operator",
			doc:  &model.ConditionNode{Field: "app.id", Operator: "like", Value: "x"},
			path: "condition",
		},
		{
			name: "exists with value",
			doc:  &model.ConditionNode{Field: "app.id", Operator: "exists", Value: true},
			path: "condition",
		},
		{
			name: "missing value",
			doc:  &model.ConditionNode{Field: "app.id", Operator: "eq"},
			path: "condition",
		},
		{
			name: "nested fault carries child path",
			doc: &model.ConditionNode{Op: "OR", Children: []model.ConditionNode{
				{Field: "app.id", Operator: "eq", Value: "x"},
				{Operator: "eq", Value: "y"},
			}},
			path: "condition.children[1]",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := condition.Parse(tc.doc, "db-password", registry)
			var malformed *keyward_errors.MalformedConditionError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tc.path, malformed.Path)
		})
	}
}

func TestParse_UnknownField(t *testing.T) {
	doc := &model.ConditionNode{Field: "request.minute", Operator: "eq", Value: 30}

	_, err := condition.Parse(doc, "db-password", testRegistry(t))
	var unknownField *keyward_errors.UnknownFieldError
	require.ErrorAs(t, err, &unknownField)
	assert.Equal(t, "request.minute", unknownField.Path)
	assert.Equal(t, "db-password", unknownField.CredentialType)
}

func TestParse_InapplicableOperator(t *testing.T) {
	// lt on a boolean field has no ordering to compare with.
	doc := &model.ConditionNode{Field: "credential.shared", Operator: "lt", Value: true}

	_, err := condition.Parse(doc, "db-password", testRegistry(t))
	var mismatch *keyward_errors.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "credential.shared", mismatch.Field)
	assert.Equal(t, "lt", mismatch.Operator)
}

func TestParse_LiteralCoercion(t *testing.T) {
	registry := testRegistry(t)

	t.Run("in requires list literal", func(t *testing.T) {
		doc := &model.ConditionNode{Field: "app.id", Operator: "in", Value: "svc-42"}
		_, err := condition.Parse(doc, "db-password", registry)
		var mismatch *keyward_errors.TypeMismatchError
		assert.ErrorAs(t, err, &mismatch)
	})

	t.Run("in coerces elements to field type", func(t *testing.T) {
		doc := &model.ConditionNode{Field: "request.hour", Operator: "in", Value: []interface{}{9, 10, 11}}
		tree, err := condition.Parse(doc, "db-password", registry)
		require.NoError(t, err)
		leaf := tree.Root.(*condition.Leaf)
		require.Len(t, leaf.Value.List, 3)
		assert.Equal(t, model.TypeNumber, leaf.Value.List[0].Type)
	})

	t.Run("number literal against string field fails", func(t *testing.T) {
		doc := &model.ConditionNode{Field: "app.id", Operator: "eq", Value: 42}
		_, err := condition.Parse(doc, "db-password", registry)
		var mismatch *keyward_errors.TypeMismatchError
		assert.ErrorAs(t, err, &mismatch)
	})

	t.Run("timestamp literal parses RFC3339", func(t *testing.T) {
		doc := &model.ConditionNode{Field: "credential.rotated_at", Operator: "lt", Value: "2026-01-01T00:00:00Z"}
		tree, err := condition.Parse(doc, "db-password", registry)
		require.NoError(t, err)
		leaf := tree.Root.(*condition.Leaf)
		assert.Equal(t, model.TypeTimestamp, leaf.Value.Type)
		assert.Equal(t, 2026, leaf.Value.Time.Year())
	})

	t.Run("matches compiles pattern", func(t *testing.T) {
		doc := &model.ConditionNode{Field: "app.id", Operator: "matches", Value: "^svc-"}
		tree, err := condition.Parse(doc, "db-password", registry)
		require.NoError(t, err)
		leaf := tree.Root.(*condition.Leaf)
		require.NotNil(t, leaf.Pattern)
		assert.True(t, leaf.Pattern.MatchString("svc-42"))
	})

	t.Run("matches rejects invalid pattern", func(t *testing.T) {
		doc := &model.ConditionNode{Field: "app.id", Operator: "matches", Value: "("}
		_, err := condition.Parse(doc, "db-password", registry)
		var malformed *keyward_errors.MalformedConditionError
		assert.ErrorAs(t, err, &malformed)
	})
}

func TestApplicableOperators(t *testing.T) {
	for _, op := range condition.ApplicableOperators(model.TypeBoolean) {
		assert.NotEqual(t, condition.OpLt, op)
		assert.NotEqual(t, condition.OpMatches, op)
	}
	assert.Contains(t, condition.ApplicableOperators(model.TypeString), condition.OpMatches)
	assert.Contains(t, condition.ApplicableOperators(model.TypeList), condition.OpContains)
}
