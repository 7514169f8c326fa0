// util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/keyward/keyward/logging"
	"github.com/keyward/keyward/model"
)

type NotificationService struct {
	// A message queue client would slot in here; for now changes are
	// surfaced through the structured log stream.
}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func (n *NotificationService) NotifyPolicyChange(ctx context.Context, changeType string, policy model.Policy) error {
	switch changeType {
	case "created":
		logger.Info("NOTIFICATION: New policy created",
			zap.String("policyID", policy.ID),
			zap.String("policyName", policy.Name),
			zap.String("credentialType", policy.CredentialType))
	case "updated":
		logger.Info("NOTIFICATION: Policy updated",
			zap.String("policyID", policy.ID),
			zap.String("policyName", policy.Name))
	case "deleted":
		logger.Info("NOTIFICATION: Policy deleted",
			zap.String("policyID", policy.ID))
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}

	return nil
}

func (n *NotificationService) NotifyApplicationChange(ctx context.Context, changeType string, app model.Application) error {
	logger.Info("Notifying application change",
		zap.String("changeType", changeType),
		zap.String("appID", app.ID),
		zap.String("appName", app.Name))
	return nil
}

// NotifyDeniedAccess flags a denied credential read so operators can spot
// misconfigured applications or probing.
func (n *NotificationService) NotifyDeniedAccess(ctx context.Context, appID, credentialID, policyID string) error {
	logger.Warn("NOTIFICATION: Credential access denied",
		zap.String("appID", appID),
		zap.String("credentialID", credentialID),
		zap.String("policyID", policyID))
	return nil
}
