// schema/bootstrap.go
package schema

import (
	"github.com/keyward/keyward/model"
)

// DefaultRegistry builds the registry with the built-in credential types.
// Plugins register additional types through RegisterType before the server
// starts serving; the registry is frozen once requests flow.
func DefaultRegistry() (*Registry, error) {
	registry := NewRegistry()

	builtins := []model.CredentialType{
		{
			ID:          "db-password",
			DisplayName: "Database Password",
			Fields: []model.FieldDef{
				{Path: "app.id", Type: model.TypeString, Description: "requesting application id"},
				{Path: "app.owner", Type: model.TypeString, Description: "owner of the requesting application"},
				{Path: "request.hour", Type: model.TypeNumber, Description: "hour of day of the request, 0-23"},
				{Path: "request.ip", Type: model.TypeString, Description: "source address of the request"},
				{Path: "request.weekday", Type: model.TypeEnum, Description: "day of week of the request"},
				{Path: "credential.environment", Type: model.TypeEnum, Description: "deployment environment of the credential"},
				{Path: "credential.shared", Type: model.TypeBoolean, Description: "whether the credential is shared across applications"},
				{Path: "credential.tags", Type: model.TypeList, Description: "operator-assigned credential tags"},
				{Path: "credential.rotated_at", Type: model.TypeTimestamp, Description: "time of the last rotation"},
			},
		},
		{
			ID:          "api-key",
			DisplayName: "API Key",
			Fields: []model.FieldDef{
				{Path: "app.id", Type: model.TypeString, Description: "requesting application id"},
				{Path: "request.hour", Type: model.TypeNumber, Description: "hour of day of the request, 0-23"},
				{Path: "credential.environment", Type: model.TypeEnum, Description: "deployment environment of the credential"},
				{Path: "credential.scopes", Type: model.TypeList, Description: "scopes granted to the key"},
				{Path: "credential.expires_at", Type: model.TypeTimestamp, Description: "expiry time of the key"},
			},
		},
		{
			ID:          "ssh-key",
			DisplayName: "SSH Key",
			Fields: []model.FieldDef{
				{Path: "app.id", Type: model.TypeString, Description: "requesting application id"},
				{Path: "request.hour", Type: model.TypeNumber, Description: "hour of day of the request, 0-23"},
				{Path: "credential.host", Type: model.TypeString, Description: "target host of the key"},
				{Path: "credential.port", Type: model.TypeNumber, Description: "target port of the key"},
				{Path: "credential.tags", Type: model.TypeList, Description: "operator-assigned credential tags"},
			},
		},
	}

	for _, ct := range builtins {
		if err := registry.RegisterType(ct); err != nil {
			return nil, err
		}
	}

	return registry, nil
}
