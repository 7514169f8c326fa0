// model/credential.go
package model

// ValueType is the declared type of an addressable field path. The set is
// closed: operator applicability is enumerated per type, so request context
// values never carry an open-ended dynamic type.
type ValueType string

const (
	TypeString    ValueType = "string"
	TypeNumber    ValueType = "number"
	TypeBoolean   ValueType = "boolean"
	TypeTimestamp ValueType = "timestamp"
	TypeEnum      ValueType = "enum"
	TypeList      ValueType = "list"
)

// IsValid reports whether t is one of the supported value types.
func (t ValueType) IsValid() bool {
	switch t {
	case TypeString, TypeNumber, TypeBoolean, TypeTimestamp, TypeEnum, TypeList:
		return true
	default:
		return false
	}
}

// FieldDef declares one dot-addressable field path of a credential type.
type FieldDef struct {
	Path        string    `json:"path"`
	Type        ValueType `json:"type"`
	Description string    `json:"description,omitempty"`
}

// CredentialType identifies a class of secret (database password, API key)
// together with the field paths a policy condition may reference. Immutable
// after registration with the schema registry.
type CredentialType struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"display_name"`
	Fields      []FieldDef `json:"fields"`
}

// FieldSuggestion is a field path together with the operators an authoring
// UI may offer for it.
type FieldSuggestion struct {
	Path      string    `json:"path"`
	Type      ValueType `json:"type"`
	Operators []string  `json:"operators"`
}
