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

type ApplicationDAO struct {
	Driver       neo4j.Driver
	AuditService audit.Service
}

func NewApplicationDAO(driver neo4j.Driver, auditService audit.Service) *ApplicationDAO {
	dao := &ApplicationDAO{Driver: driver, AuditService: auditService}
	ctx := context.Background()
	if err := dao.EnsureUniqueConstraint(ctx); err != nil {
		logger.Fatal("Failed to ensure unique constraint", zap.Error(err))
	}
	return dao
}

// EnsureUniqueConstraint ensures the unique constraint on the Application ID
func (dao *ApplicationDAO) EnsureUniqueConstraint(ctx context.Context) error {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        CREATE CONSTRAINT unique_application_id IF NOT EXISTS
        FOR (a:` + keyward_neo4j.LabelApplication + `) REQUIRE a.id IS UNIQUE
        `
		_, err := transaction.Run(query, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create unique constraint: %w", err)
		}
		return nil, nil
	})
	return err
}

// CreateApplication registers a new consuming application
func (dao *ApplicationDAO) CreateApplication(ctx context.Context, app model.Application, userID string) (string, error) {
	start := time.Now()
	logger.Info("Creating new application", zap.String("appName", app.Name))
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	if app.ID == "" {
		app.ID = uuid.New().String()
	}

	result, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		checkQuery := `
        MATCH (a:` + keyward_neo4j.LabelApplication + ` {id: $id})
        RETURN a.id
        `
		checkResult, err := transaction.Run(checkQuery, map[string]interface{}{"id": app.ID})
		if err != nil {
			return nil, keyward_errors.ErrDatabaseOperation
		}
		if checkResult.Next() {
			return nil, keyward_errors.ErrApplicationConflict
		}

		createQuery := `
            MERGE (a:` + keyward_neo4j.LabelApplication + ` {id: $id})
            ON CREATE SET a += $props
            RETURN a.id as id
        `
		parameters := map[string]interface{}{
			"id": app.ID,
			"props": map[string]interface{}{
				"name":        app.Name,
				"description": app.Description,
				"owner":       app.Owner,
				"enabled":     app.Enabled,
				"createdAt":   time.Now().UTC().Format(time.RFC3339),
				"updatedAt":   time.Now().UTC().Format(time.RFC3339),
				"createdBy":   userID,
			},
		}

		queryResult, err := transaction.Run(createQuery, parameters)
		if err != nil {
			logger.Error("Failed to create application", zap.Error(err))
			return nil, keyward_errors.ErrDatabaseOperation
		}
		if !queryResult.Next() {
			return nil, keyward_errors.ErrDatabaseOperation
		}
		return queryResult.Record().Values[0], nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create application",
			zap.Error(err),
			zap.Duration("duration", duration))
		return "", err
	}

	appID := result.(string)
	dao.logChange(ctx, "application.created", userID, app)
	logger.Info("Application created successfully",
		zap.String("appID", appID),
		zap.Duration("duration", duration))
	return appID, nil
}

// UpdateApplication rewrites the mutable properties of an application node
func (dao *ApplicationDAO) UpdateApplication(ctx context.Context, app model.Application, userID string) (*model.Application, error) {
	logger.Info("Updating application", zap.String("appID", app.ID))
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	updatedApp, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (a:` + keyward_neo4j.LabelApplication + ` {id: $id})
        SET a += $props
        RETURN a
        `
		parameters := map[string]interface{}{
			"id": app.ID,
			"props": map[string]interface{}{
				"name":        app.Name,
				"description": app.Description,
				"owner":       app.Owner,
				"enabled":     app.Enabled,
				"updatedAt":   time.Now().UTC().Format(time.RFC3339),
				"updatedBy":   userID,
			},
		}

		result, err := transaction.Run(query, parameters)
		if err != nil {
			logger.Error("Failed to update application", zap.Error(err))
			return nil, keyward_errors.ErrDatabaseOperation
		}
		if !result.Next() {
			return nil, keyward_errors.ErrApplicationNotFound
		}
		node := result.Record().Values[0].(neo4j.Node)
		return mapNodeToApplication(node)
	})

	if err != nil {
		return nil, err
	}

	dao.logChange(ctx, "application.updated", userID, app)
	return updatedApp.(*model.Application), nil
}

// DeleteApplication removes an application node
func (dao *ApplicationDAO) DeleteApplication(ctx context.Context, appID string, userID string) error {
	logger.Info("Deleting application", zap.String("appID", appID))
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (a:` + keyward_neo4j.LabelApplication + ` {id: $id})
        WITH a, a.id as deletedID
        DETACH DELETE a
        RETURN deletedID
        `
		result, err := transaction.Run(query, map[string]interface{}{"id": appID})
		if err != nil {
			logger.Error("Failed to delete application", zap.Error(err))
			return nil, keyward_errors.ErrDatabaseOperation
		}
		if !result.Next() {
			return nil, keyward_errors.ErrApplicationNotFound
		}
		return nil, nil
	})

	if err != nil {
		return err
	}

	dao.logChange(ctx, "application.deleted", userID, model.Application{ID: appID})
	return nil
}

// GetApplication retrieves an application by its ID
func (dao *ApplicationDAO) GetApplication(ctx context.Context, appID string) (*model.Application, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (a:` + keyward_neo4j.LabelApplication + ` {id: $id})
        RETURN a
        `
		result, err := transaction.Run(query, map[string]interface{}{"id": appID})
		if err != nil {
			return nil, keyward_errors.ErrDatabaseOperation
		}
		if !result.Next() {
			return nil, keyward_errors.ErrApplicationNotFound
		}
		node := result.Record().Values[0].(neo4j.Node)
		return mapNodeToApplication(node)
	})

	if err != nil {
		return nil, err
	}
	return result.(*model.Application), nil
}

// ListApplications retrieves all applications with pagination
func (dao *ApplicationDAO) ListApplications(ctx context.Context, limit int, offset int) ([]*model.Application, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (a:` + keyward_neo4j.LabelApplication + `)
        RETURN a
        ORDER BY a.name ASC
        SKIP $offset LIMIT $limit
        `
		result, err := transaction.Run(query, map[string]interface{}{
			"offset": offset,
			"limit":  limit,
		})
		if err != nil {
			return nil, keyward_errors.ErrDatabaseOperation
		}

		var apps []*model.Application
		for result.Next() {
			node := result.Record().Values[0].(neo4j.Node)
			app, err := mapNodeToApplication(node)
			if err != nil {
				return nil, err
			}
			apps = append(apps, app)
		}
		return apps, nil
	})

	if err != nil {
		return nil, err
	}
	return result.([]*model.Application), nil
}

func (dao *ApplicationDAO) logChange(ctx context.Context, action, userID string, app model.Application) {
	details, _ := json.Marshal(app)
	entry := audit.AuditLog{
		Timestamp:     time.Now(),
		Action:        action,
		Actor:         userID,
		AppID:         app.ID,
		ChangeDetails: details,
	}
	if err := dao.AuditService.LogEvent(ctx, entry); err != nil {
		logger.Warn("Failed to write audit entry",
			zap.Error(err),
			zap.String("action", action),
			zap.String("appID", app.ID))
	}
}

// mapNodeToApplication maps a Neo4j node to an Application struct
func mapNodeToApplication(node neo4j.Node) (*model.Application, error) {
	props := node.Props
	app := &model.Application{}

	if id, ok := props["id"].(string); ok {
		app.ID = id
	} else {
		return nil, fmt.Errorf("failed to assert type for application ID: %v", props["id"])
	}

	if name, ok := props["name"].(string); ok {
		app.Name = name
	} else {
		return nil, fmt.Errorf("failed to assert type for application name: %v", props["name"])
	}

	if description, ok := props["description"].(string); ok {
		app.Description = description
	}

	if owner, ok := props["owner"].(string); ok {
		app.Owner = owner
	}

	if enabled, ok := props["enabled"].(bool); ok {
		app.Enabled = enabled
	}

	if createdAt, ok := props["createdAt"].(string); ok {
		app.CreatedAt, _ = helper_util.ParseTime(createdAt)
	}

	if updatedAt, ok := props["updatedAt"].(string); ok {
		app.UpdatedAt, _ = helper_util.ParseTime(updatedAt)
	}

	return app, nil
}
