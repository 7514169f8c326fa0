package condition

import "github.com/keyward/keyward/model"

// Leaf operators of the condition language.
const (
	OpEq       = "eq"
	OpNeq      = "neq"
	OpLt       = "lt"
	OpLte      = "lte"
	OpGt       = "gt"
	OpGte      = "gte"
	OpIn       = "in"
	OpNotIn    = "notIn"
	OpContains = "contains"
	OpMatches  = "matches"
	OpExists   = "exists"
)

// Boolean combinators.
const (
	CombinatorAnd = "AND"
	CombinatorOr  = "OR"
	CombinatorNot = "NOT"
)

// applicability maps each declared field type to the operators valid for
// it. The table is the single source of truth for both validation and the
// authoring suggestions.
var applicability = map[model.ValueType][]string{
	model.TypeString:    {OpEq, OpNeq, OpIn, OpNotIn, OpContains, OpMatches, OpExists},
	model.TypeNumber:    {OpEq, OpNeq, OpLt, OpLte, OpGt, OpGte, OpIn, OpNotIn, OpExists},
	model.TypeBoolean:   {OpEq, OpNeq, OpExists},
	model.TypeTimestamp: {OpEq, OpNeq, OpLt, OpLte, OpGt, OpGte, OpExists},
	model.TypeEnum:      {OpEq, OpNeq, OpIn, OpNotIn, OpExists},
	model.TypeList:      {OpEq, OpNeq, OpContains, OpExists},
}

// IsOperator reports whether op is a known leaf operator.
func IsOperator(op string) bool {
	switch op {
	case OpEq, OpNeq, OpLt, OpLte, OpGt, OpGte, OpIn, OpNotIn, OpContains, OpMatches, OpExists:
		return true
	default:
		return false
	}
}

// IsCombinator reports whether op is a known boolean combinator.
func IsCombinator(op string) bool {
	switch op {
	case CombinatorAnd, CombinatorOr, CombinatorNot:
		return true
	default:
		return false
	}
}

// IsApplicable reports whether op may be applied to a field of the given
// declared type.
func IsApplicable(op string, t model.ValueType) bool {
	for _, candidate := range applicability[t] {
		if candidate == op {
			return true
		}
	}
	return false
}

// ApplicableOperators returns the operators valid for a declared field
// type, in a stable order.
func ApplicableOperators(t model.ValueType) []string {
	ops := make([]string, len(applicability[t]))
	copy(ops, applicability[t])
	return ops
}
