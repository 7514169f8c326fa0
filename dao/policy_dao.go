package dao

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/keyward/keyward/audit"
	keyward_errors "github.com/keyward/keyward/errors"
	logger "github.com/keyward/keyward/logging"
	"github.com/keyward/keyward/model"
	keyward_neo4j "github.com/keyward/keyward/model/neo4j"
	helper_util "github.com/keyward/keyward/util/helper"
)

type PolicyDAO struct {
	Driver       neo4j.Driver
	AuditService audit.Service
}

func NewPolicyDAO(driver neo4j.Driver, auditService audit.Service) *PolicyDAO {
	dao := &PolicyDAO{Driver: driver, AuditService: auditService}
	ctx := context.Background()
	if err := dao.EnsureUniqueConstraint(ctx); err != nil {
		logger.Fatal("Failed to ensure unique constraint", zap.Error(err))
	}
	return dao
}

// EnsureUniqueConstraint ensures the unique constraint on the Policy ID
func (dao *PolicyDAO) EnsureUniqueConstraint(ctx context.Context) error {
	logger.Info("Ensuring unique constraint on Policy ID")
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer func() {
		if err := session.Close(); err != nil {
			logger.Error("Failed to close Neo4j session", zap.Error(err))
		}
	}()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        CREATE CONSTRAINT unique_policy_id IF NOT EXISTS
        FOR (p:` + keyward_neo4j.LabelPolicy + `) REQUIRE p.id IS UNIQUE
        `
		_, err := transaction.Run(query, nil)
		if err != nil {
			logger.Error("Failed to create unique constraint", zap.Error(err))
			return nil, fmt.Errorf("failed to create unique constraint: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		logger.Error("Failed to ensure unique constraint on Policy ID", zap.Error(err))
		return err
	}

	logger.Info("Successfully ensured unique constraint on Policy ID")
	return nil
}

// CreatePolicy creates a new policy node in Neo4j
func (dao *PolicyDAO) CreatePolicy(ctx context.Context, policy model.Policy, userID string) (string, error) {
	start := time.Now()
	logger.Info("Creating new policy", zap.String("policyName", policy.Name))
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	if policy.ID == "" {
		policy.ID = uuid.New().String()
	}

	result, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		checkQuery := `
        MATCH (p:` + keyward_neo4j.LabelPolicy + ` {id: $id})
        RETURN p.id
        `
		checkResult, err := transaction.Run(checkQuery, map[string]interface{}{"id": policy.ID})
		if err != nil {
			return nil, keyward_errors.ErrDatabaseOperation
		}
		if checkResult.Next() {
			return nil, keyward_errors.ErrPolicyConflict
		}

		createQuery := `
            MERGE (p:` + keyward_neo4j.LabelPolicy + ` {id: $id})
            ON CREATE SET p += $props
            RETURN p.id as id
        `

		conditionJSON, err := marshalCondition(policy.Condition)
		if err != nil {
			return nil, err
		}

		parameters := map[string]interface{}{
			"id": policy.ID,
			"props": map[string]interface{}{
				"name":           policy.Name,
				"description":    policy.Description,
				"credentialType": policy.CredentialType,
				"effect":         policy.Effect,
				"priority":       policy.Priority,
				"version":        policy.Version,
				"enabled":        policy.Enabled,
				"condition":      conditionJSON,
				"createdAt":      time.Now().UTC().Format(time.RFC3339),
				"updatedAt":      time.Now().UTC().Format(time.RFC3339),
				"createdBy":      userID,
			},
		}

		queryResult, err := transaction.Run(createQuery, parameters)
		if err != nil {
			logger.Error("Failed to create policy", zap.Error(err))
			return nil, keyward_errors.ErrDatabaseOperation
		}
		if !queryResult.Next() {
			return nil, keyward_errors.ErrDatabaseOperation
		}
		return queryResult.Record().Values[0], nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create policy",
			zap.Error(err),
			zap.Duration("duration", duration))
		return "", err
	}

	policyID := result.(string)
	dao.logChange(ctx, "policy.created", userID, policy)
	logger.Info("Policy created successfully",
		zap.String("policyID", policyID),
		zap.Duration("duration", duration))
	return policyID, nil
}

// UpdatePolicy rewrites the mutable properties of an existing policy node
func (dao *PolicyDAO) UpdatePolicy(ctx context.Context, policy model.Policy, userID string) (*model.Policy, error) {
	start := time.Now()
	logger.Info("Updating policy", zap.String("policyID", policy.ID))
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	updatedPolicy, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		conditionJSON, err := marshalCondition(policy.Condition)
		if err != nil {
			return nil, err
		}

		query := `
        MATCH (p:` + keyward_neo4j.LabelPolicy + ` {id: $id})
        SET p += $props
        RETURN p
        `
		parameters := map[string]interface{}{
			"id": policy.ID,
			"props": map[string]interface{}{
				"name":           policy.Name,
				"description":    policy.Description,
				"credentialType": policy.CredentialType,
				"effect":         policy.Effect,
				"priority":       policy.Priority,
				"version":        policy.Version,
				"enabled":        policy.Enabled,
				"condition":      conditionJSON,
				"updatedAt":      time.Now().UTC().Format(time.RFC3339),
				"updatedBy":      userID,
			},
		}

		result, err := transaction.Run(query, parameters)
		if err != nil {
			logger.Error("Failed to update policy", zap.Error(err))
			return nil, keyward_errors.ErrDatabaseOperation
		}
		if !result.Next() {
			return nil, keyward_errors.ErrPolicyNotFound
		}
		node := result.Record().Values[0].(neo4j.Node)
		return mapNodeToPolicy(node)
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to update policy",
			zap.Error(err),
			zap.String("policyID", policy.ID),
			zap.Duration("duration", duration))
		return nil, err
	}

	dao.logChange(ctx, "policy.updated", userID, policy)
	logger.Info("Policy updated successfully",
		zap.String("policyID", policy.ID),
		zap.Duration("duration", duration))
	return updatedPolicy.(*model.Policy), nil
}

// DeletePolicy removes a policy node
func (dao *PolicyDAO) DeletePolicy(ctx context.Context, policyID string, userID string) error {
	logger.Info("Deleting policy", zap.String("policyID", policyID))
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (p:` + keyward_neo4j.LabelPolicy + ` {id: $id})
        WITH p, p.id as deletedID
        DETACH DELETE p
        RETURN deletedID
        `
		result, err := transaction.Run(query, map[string]interface{}{"id": policyID})
		if err != nil {
			logger.Error("Failed to delete policy", zap.Error(err))
			return nil, keyward_errors.ErrDatabaseOperation
		}
		if !result.Next() {
			return nil, keyward_errors.ErrPolicyNotFound
		}
		return nil, nil
	})

	if err != nil {
		return err
	}

	dao.logChange(ctx, "policy.deleted", userID, model.Policy{ID: policyID})
	logger.Info("Policy deleted successfully", zap.String("policyID", policyID))
	return nil
}

// GetPolicy retrieves a policy by its ID
func (dao *PolicyDAO) GetPolicy(ctx context.Context, policyID string) (*model.Policy, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (p:` + keyward_neo4j.LabelPolicy + ` {id: $id})
        RETURN p
        `
		result, err := transaction.Run(query, map[string]interface{}{"id": policyID})
		if err != nil {
			return nil, keyward_errors.ErrDatabaseOperation
		}
		if !result.Next() {
			return nil, keyward_errors.ErrPolicyNotFound
		}
		node := result.Record().Values[0].(neo4j.Node)
		return mapNodeToPolicy(node)
	})

	if err != nil {
		return nil, err
	}
	return result.(*model.Policy), nil
}

// ListPolicies returns policies ordered for evaluation: priority ascending,
// id ascending as the stable tie-break.
func (dao *PolicyDAO) ListPolicies(ctx context.Context, limit int, offset int) ([]*model.Policy, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (p:` + keyward_neo4j.LabelPolicy + `)
        RETURN p
        ORDER BY p.priority ASC, p.id ASC
        SKIP $offset LIMIT $limit
        `
		result, err := transaction.Run(query, map[string]interface{}{
			"offset": offset,
			"limit":  limit,
		})
		if err != nil {
			return nil, keyward_errors.ErrDatabaseOperation
		}
		return collectPolicies(result)
	})

	if err != nil {
		return nil, err
	}
	return result.([]*model.Policy), nil
}

// RetrieveApplicablePolicies loads the enabled policy set for one
// credential type in evaluation order. This feeds the decision path, so the
// ordering here is the ordering the simulator sees.
func (dao *PolicyDAO) RetrieveApplicablePolicies(ctx context.Context, credentialType string) ([]*model.Policy, error) {
	start := time.Now()
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (p:` + keyward_neo4j.LabelPolicy + ` {credentialType: $credentialType})
        WHERE p.enabled = true
        RETURN p
        ORDER BY p.priority ASC, p.id ASC
        `
		result, err := transaction.Run(query, map[string]interface{}{
			"credentialType": credentialType,
		})
		if err != nil {
			return nil, keyward_errors.ErrDatabaseOperation
		}
		return collectPolicies(result)
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to retrieve applicable policies",
			zap.Error(err),
			zap.String("credentialType", credentialType),
			zap.Duration("duration", duration))
		return nil, err
	}

	policies := result.([]*model.Policy)
	logger.Info("Retrieved applicable policies",
		zap.String("credentialType", credentialType),
		zap.Int("policy_count", len(policies)),
		zap.Duration("duration", duration))
	return policies, nil
}

// SearchPolicies searches for policies based on given criteria
func (dao *PolicyDAO) SearchPolicies(ctx context.Context, criteria model.PolicySearchCriteria) ([]*model.Policy, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (p:` + keyward_neo4j.LabelPolicy + `)
        WHERE ($name = '' OR toLower(p.name) CONTAINS toLower($name))
          AND ($credentialType = '' OR p.credentialType = $credentialType)
          AND ($effect = '' OR p.effect = $effect)
          AND ($minPriority = 0 OR p.priority >= $minPriority)
          AND ($maxPriority = 0 OR p.priority <= $maxPriority)
          AND ($checkEnabled = false OR p.enabled = $enabled)
          AND ($fromDate = '' OR p.createdAt >= $fromDate)
          AND ($toDate = '' OR p.createdAt <= $toDate)
        RETURN p
        ORDER BY p.priority ASC, p.id ASC
        LIMIT $limit
        `
		limit := criteria.Limit
		if limit <= 0 {
			limit = 100
		}
		checkEnabled := criteria.Enabled != nil
		enabled := checkEnabled && *criteria.Enabled

		// Stored timestamps are RFC3339 in UTC, so lexicographic
		// comparison matches chronological order.
		fromDate, toDate := "", ""
		if !criteria.FromDate.IsZero() {
			fromDate = criteria.FromDate.UTC().Format(time.RFC3339)
		}
		if !criteria.ToDate.IsZero() {
			toDate = criteria.ToDate.UTC().Format(time.RFC3339)
		}

		result, err := transaction.Run(query, map[string]interface{}{
			"name":           criteria.Name,
			"credentialType": criteria.CredentialType,
			"effect":         criteria.Effect,
			"minPriority":    criteria.MinPriority,
			"maxPriority":    criteria.MaxPriority,
			"checkEnabled":   checkEnabled,
			"enabled":        enabled,
			"fromDate":       fromDate,
			"toDate":         toDate,
			"limit":          limit,
		})
		if err != nil {
			return nil, keyward_errors.ErrDatabaseOperation
		}
		return collectPolicies(result)
	})

	if err != nil {
		return nil, err
	}
	return result.([]*model.Policy), nil
}

func (dao *PolicyDAO) logChange(ctx context.Context, action, userID string, policy model.Policy) {
	details, _ := json.Marshal(policy)
	entry := audit.AuditLog{
		Timestamp:      time.Now(),
		Action:         action,
		Actor:          userID,
		PolicyID:       policy.ID,
		CredentialType: policy.CredentialType,
		ChangeDetails:  details,
	}
	if err := dao.AuditService.LogEvent(ctx, entry); err != nil {
		logger.Warn("Failed to write audit entry",
			zap.Error(err),
			zap.String("action", action),
			zap.String("policyID", policy.ID))
	}
}

func collectPolicies(result neo4j.Result) ([]*model.Policy, error) {
	var policies []*model.Policy
	for result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		policy, err := mapNodeToPolicy(node)
		if err != nil {
			return nil, err
		}
		policies = append(policies, policy)
	}
	return policies, nil
}

func marshalCondition(condition *model.ConditionNode) (string, error) {
	if condition == nil {
		return "", nil
	}
	data, err := json.Marshal(condition)
	if err != nil {
		return "", fmt.Errorf("failed to marshal condition: %w", err)
	}
	return string(data), nil
}

// mapNodeToPolicy maps a Neo4j node to a Policy struct
func mapNodeToPolicy(node neo4j.Node) (*model.Policy, error) {
	props := node.Props
	policy := &model.Policy{}

	if id, ok := props["id"].(string); ok {
		policy.ID = id
	} else {
		return nil, fmt.Errorf("failed to assert type for policy ID: %v", props["id"])
	}

	if name, ok := props["name"].(string); ok {
		policy.Name = name
	} else {
		return nil, fmt.Errorf("failed to assert type for policy name: %v", props["name"])
	}

	if description, ok := props["description"].(string); ok {
		policy.Description = description
	}

	if credentialType, ok := props["credentialType"].(string); ok {
		policy.CredentialType = credentialType
	} else {
		return nil, fmt.Errorf("failed to assert type for policy credential type: %v", props["credentialType"])
	}

	if effect, ok := props["effect"].(string); ok {
		if effect == model.PolicyEffectAllow || effect == model.PolicyEffectDeny {
			policy.Effect = effect
		} else {
			return nil, fmt.Errorf("invalid policy effect: %v", effect)
		}
	} else {
		return nil, fmt.Errorf("failed to assert type for policy effect: %v", props["effect"])
	}

	if priority, ok := props["priority"].(int64); ok {
		policy.Priority = int(priority)
	} else {
		return nil, fmt.Errorf("failed to assert type for policy priority: %v", props["priority"])
	}

	if version, ok := props["version"].(int64); ok {
		policy.Version = int(version)
	} else {
		return nil, fmt.Errorf("failed to assert type for policy version: %v", props["version"])
	}

	if enabled, ok := props["enabled"].(bool); ok {
		policy.Enabled = enabled
	} else {
		return nil, fmt.Errorf("failed to assert type for policy enabled flag: %v", props["enabled"])
	}

	if conditionJSON, ok := props["condition"].(string); ok && conditionJSON != "" {
		var condition model.ConditionNode
		if err := json.Unmarshal([]byte(conditionJSON), &condition); err != nil {
			return nil, fmt.Errorf("failed to unmarshal policy condition: %w", err)
		}
		policy.Condition = &condition
	}

	if createdAt, ok := props["createdAt"].(string); ok {
		policy.CreatedAt, _ = helper_util.ParseTime(createdAt)
	}

	if updatedAt, ok := props["updatedAt"].(string); ok {
		policy.UpdatedAt, _ = helper_util.ParseTime(updatedAt)
	}

	return policy, nil
}
