// model/neo4j/labels.go
package keyward_neo4j

// Node Labels
const (
	// LabelPolicy represents an access policy gating credential reads
	LabelPolicy = "Policy"

	// LabelApplication represents a registered consumer application
	LabelApplication = "Application"

	// LabelCredentialType represents a class of stored secret
	LabelCredentialType = "CredentialType"

	// LabelAuditLog represents an audit log entry
	LabelAuditLog = "AuditLog"
)

// Relationship Types
const (
	// RelGoverns represents the relationship between a policy and the credential type it gates
	RelGoverns = "GOVERNS"

	// RelRequestedBy represents the relationship between a decision and the requesting application
	RelRequestedBy = "REQUESTED_BY"

	// RelCreatedBy represents the relationship between a node and its creator
	RelCreatedBy = "CREATED_BY"

	// RelUpdatedBy represents the relationship between a node and its last updater
	RelUpdatedBy = "UPDATED_BY"
)
