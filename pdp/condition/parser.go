package condition

import (
	"fmt"
	"regexp"

	keyward_errors "github.com/keyward/keyward/errors"
	"github.com/keyward/keyward/model"
	"github.com/keyward/keyward/schema"
)

// Node is one node of a compiled condition tree. The tree is built
// bottom-up during parsing and never mutated afterwards, so cycles are
// structurally impossible.
type Node interface {
	nodeTag()
}

// Leaf is a single typed comparison against one field path.
type Leaf struct {
	Field     string
	Operator  string
	FieldType model.ValueType
	Value     model.Value
	Pattern   *regexp.Regexp // compiled pattern, set only for the matches operator
}

func (*Leaf) nodeTag() {}

// Combinator is a boolean connective over child nodes.
type Combinator struct {
	Op       string
	Children []Node
}

func (*Combinator) nodeTag() {}

// Tree is an immutable, side-effect-free compiled condition, ready for
// repeated evaluation. A nil Root matches unconditionally.
type Tree struct {
	Root Node
}

// IsUnconditional reports whether the tree matches every request.
func (t *Tree) IsUnconditional() bool {
	return t == nil || t.Root == nil
}

// Parse compiles a raw condition document against the schema of the given
// credential type. Structural faults yield a MalformedConditionError,
// inapplicable operators a TypeMismatchError and undeclared field paths an
// UnknownFieldError; all carry the document path of the offending node. A
// nil document compiles to an unconditional tree.
func Parse(doc *model.ConditionNode, credentialType string, registry *schema.Registry) (*Tree, error) {
	if doc == nil {
		return &Tree{}, nil
	}
	root, err := parseNode(doc, "condition", credentialType, registry)
	if err != nil {
		return nil, err
	}
	return &Tree{Root: root}, nil
}

func parseNode(doc *model.ConditionNode, path, credentialType string, registry *schema.Registry) (Node, error) {
	if doc.IsCombinator() {
		return parseCombinator(doc, path, credentialType, registry)
	}
	return parseLeaf(doc, path, credentialType, registry)
}

func parseCombinator(doc *model.ConditionNode, path, credentialType string, registry *schema.Registry) (Node, error) {
	if !IsCombinator(doc.Op) {
		return nil, &keyward_errors.MalformedConditionError{
			Path:   path,
			Reason: fmt.Sprintf("unknown combinator %q", doc.Op),
		}
	}
	if doc.Field != "" || doc.Operator != "" || doc.Value != nil {
		return nil, &keyward_errors.MalformedConditionError{
			Path:   path,
			Reason: "combinator node cannot carry leaf attributes",
		}
	}
	if doc.Op == CombinatorNot && len(doc.Children) != 1 {
		return nil, &keyward_errors.MalformedConditionError{
			Path:   path,
			Reason: fmt.Sprintf("NOT requires exactly one child, got %d", len(doc.Children)),
		}
	}
	if len(doc.Children) == 0 {
		return nil, &keyward_errors.MalformedConditionError{
			Path:   path,
			Reason: fmt.Sprintf("%s requires at least one child", doc.Op),
		}
	}

	children := make([]Node, 0, len(doc.Children))
	for i := range doc.Children {
		childPath := fmt.Sprintf("%s.children[%d]", path, i)
		child, err := parseNode(&doc.Children[i], childPath, credentialType, registry)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return &Combinator{Op: doc.Op, Children: children}, nil
}

func parseLeaf(doc *model.ConditionNode, path, credentialType string, registry *schema.Registry) (Node, error) {
	if len(doc.Children) > 0 {
		return nil, &keyward_errors.MalformedConditionError{
			Path:   path,
			Reason: "leaf node cannot carry children",
		}
	}
	if doc.Field == "" {
		return nil, &keyward_errors.MalformedConditionError{
			Path:   path,
			Reason: "leaf node requires a field",
		}
	}
	if !IsOperator(doc.Operator) {
		return nil, &keyward_errors.MalformedConditionError{
			Path:   path,
			Reason: fmt.Sprintf("unknown operator %q", doc.Operator),
		}
	}

	fieldType, err := registry.ResolveType(credentialType, doc.Field)
	if err != nil {
		return nil, err
	}
	if !IsApplicable(doc.Operator, fieldType) {
		return nil, &keyward_errors.TypeMismatchError{
			Path:      path,
			Field:     doc.Field,
			Operator:  doc.Operator,
			FieldType: string(fieldType),
		}
	}

	leaf := &Leaf{Field: doc.Field, Operator: doc.Operator, FieldType: fieldType}
	if doc.Operator == OpExists {
		// exists takes no literal; a supplied value is a structural fault.
		if doc.Value != nil {
			return nil, &keyward_errors.MalformedConditionError{
				Path:   path,
				Reason: "exists takes no value",
			}
		}
		return leaf, nil
	}

	if doc.Value == nil {
		return nil, &keyward_errors.MalformedConditionError{
			Path:   path,
			Reason: fmt.Sprintf("operator %q requires a value", doc.Operator),
		}
	}

	literal, err := parseLiteral(doc, path, fieldType)
	if err != nil {
		return nil, err
	}
	leaf.Value = literal

	if doc.Operator == OpMatches {
		pattern, err := regexp.Compile(literal.Str)
		if err != nil {
			return nil, &keyward_errors.MalformedConditionError{
				Path:   path,
				Reason: fmt.Sprintf("invalid pattern: %v", err),
			}
		}
		leaf.Pattern = pattern
	}

	return leaf, nil
}

// parseLiteral coerces the leaf literal to the shape its operator expects:
// a list of field-typed elements for in/notIn, a natural-typed scalar for
// contains on list fields, a string for matches, and a field-typed scalar
// for everything else.
func parseLiteral(doc *model.ConditionNode, path string, fieldType model.ValueType) (model.Value, error) {
	mismatch := func(reason string) error {
		return &keyward_errors.TypeMismatchError{
			Path:      path,
			Field:     doc.Field,
			Operator:  doc.Operator,
			FieldType: string(fieldType),
			Reason:    reason,
		}
	}

	switch doc.Operator {
	case OpIn, OpNotIn:
		elems, ok := doc.Value.([]interface{})
		if !ok {
			return model.Value{}, mismatch(fmt.Sprintf("operator %q requires a list literal", doc.Operator))
		}
		list := make([]model.Value, 0, len(elems))
		for _, elem := range elems {
			ev, err := model.CoerceValue(elem, fieldType)
			if err != nil {
				return model.Value{}, mismatch(err.Error())
			}
			list = append(list, ev)
		}
		return model.ListValue(list), nil
	case OpContains:
		if fieldType == model.TypeList {
			// Element types of a list field are not declared; take the
			// literal at its natural JSON type.
			v, err := model.ValueOf(doc.Value)
			if err != nil {
				return model.Value{}, mismatch(err.Error())
			}
			return v, nil
		}
		v, err := model.CoerceValue(doc.Value, model.TypeString)
		if err != nil {
			return model.Value{}, mismatch(err.Error())
		}
		return v, nil
	case OpMatches:
		v, err := model.CoerceValue(doc.Value, model.TypeString)
		if err != nil {
			return model.Value{}, mismatch(err.Error())
		}
		return v, nil
	default:
		v, err := model.CoerceValue(doc.Value, fieldType)
		if err != nil {
			return model.Value{}, mismatch(err.Error())
		}
		return v, nil
	}
}
