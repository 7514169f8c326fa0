package engine

import (
	"strings"

	"github.com/keyward/keyward/model"
	"github.com/keyward/keyward/pdp/condition"
	pdp_model "github.com/keyward/keyward/pdp/model"
)

// Evaluator decides whether a compiled condition tree holds for a request
// context. Evaluation is a pure recursive walk with no side effects: the
// same (tree, context) pair always yields the same boolean, and nothing is
// ever raised for a tree that passed validation. Any residual inconsistency
// — a missing field, a literal whose runtime type does not line up —
// degrades to false, because an access-control path must never fail open.
type Evaluator struct{}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate returns whether the condition holds for the context. A nil or
// unconditional tree matches everything.
func (e *Evaluator) Evaluate(tree *condition.Tree, reqCtx *pdp_model.RequestContext) bool {
	if tree.IsUnconditional() {
		return true
	}
	return e.evaluateNode(tree.Root, reqCtx)
}

func (e *Evaluator) evaluateNode(node condition.Node, reqCtx *pdp_model.RequestContext) bool {
	switch n := node.(type) {
	case *condition.Combinator:
		return e.evaluateCombinator(n, reqCtx)
	case *condition.Leaf:
		return e.evaluateLeaf(n, reqCtx)
	default:
		return false
	}
}

func (e *Evaluator) evaluateCombinator(n *condition.Combinator, reqCtx *pdp_model.RequestContext) bool {
	switch n.Op {
	case condition.CombinatorAnd:
		// Left-to-right, short-circuit on the first false child.
		for _, child := range n.Children {
			if !e.evaluateNode(child, reqCtx) {
				return false
			}
		}
		return true
	case condition.CombinatorOr:
		for _, child := range n.Children {
			if e.evaluateNode(child, reqCtx) {
				return true
			}
		}
		return false
	case condition.CombinatorNot:
		return !e.evaluateNode(n.Children[0], reqCtx)
	default:
		return false
	}
}

func (e *Evaluator) evaluateLeaf(leaf *condition.Leaf, reqCtx *pdp_model.RequestContext) bool {
	fieldValue, present := reqCtx.Lookup(leaf.Field)

	if leaf.Operator == condition.OpExists {
		return present
	}
	if !present {
		// Fail-closed: a stale or malformed context cannot grant access.
		return false
	}

	switch leaf.Operator {
	case condition.OpEq:
		return fieldValue.Equal(leaf.Value)
	case condition.OpNeq:
		return !fieldValue.Equal(leaf.Value)
	case condition.OpLt, condition.OpLte, condition.OpGt, condition.OpGte:
		return compareOrdered(leaf.Operator, fieldValue, leaf.Value)
	case condition.OpIn:
		return listContains(leaf.Value, fieldValue)
	case condition.OpNotIn:
		return !listContains(leaf.Value, fieldValue)
	case condition.OpContains:
		return evaluateContains(fieldValue, leaf.Value)
	case condition.OpMatches:
		if leaf.Pattern == nil || fieldValue.Type != model.TypeString {
			return false
		}
		return leaf.Pattern.MatchString(fieldValue.Str)
	default:
		return false
	}
}

func compareOrdered(op string, field, literal model.Value) bool {
	switch {
	case field.Type == model.TypeNumber && literal.Type == model.TypeNumber:
		return compareFloats(op, field.Num, literal.Num)
	case field.Type == model.TypeTimestamp && literal.Type == model.TypeTimestamp:
		switch op {
		case condition.OpLt:
			return field.Time.Before(literal.Time)
		case condition.OpLte:
			return !field.Time.After(literal.Time)
		case condition.OpGt:
			return field.Time.After(literal.Time)
		case condition.OpGte:
			return !field.Time.Before(literal.Time)
		}
	}
	return false
}

func compareFloats(op string, a, b float64) bool {
	switch op {
	case condition.OpLt:
		return a < b
	case condition.OpLte:
		return a <= b
	case condition.OpGt:
		return a > b
	case condition.OpGte:
		return a >= b
	default:
		return false
	}
}

func listContains(list, candidate model.Value) bool {
	if list.Type != model.TypeList {
		return false
	}
	for _, elem := range list.List {
		if elem.Equal(candidate) {
			return true
		}
	}
	return false
}

func evaluateContains(field, literal model.Value) bool {
	switch field.Type {
	case model.TypeList:
		return listContains(field, literal)
	case model.TypeString:
		if literal.Type != model.TypeString && literal.Type != model.TypeEnum {
			return false
		}
		return strings.Contains(field.Str, literal.Str)
	default:
		return false
	}
}
