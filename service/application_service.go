// service/application_service.go
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/keyward/keyward/dao"
	keyward_errors "github.com/keyward/keyward/errors"
	logger "github.com/keyward/keyward/logging"
	"github.com/keyward/keyward/model"
	"github.com/keyward/keyward/util"
)

// IApplicationService defines the interface for application-related operations
type IApplicationService interface {
	CreateApplication(ctx context.Context, app model.Application, userID string) (string, error)
	UpdateApplication(ctx context.Context, app model.Application, userID string) (*model.Application, error)
	DeleteApplication(ctx context.Context, appID string, userID string) error
	GetApplication(ctx context.Context, appID string) (*model.Application, error)
	ListApplications(ctx context.Context, limit int, offset int) ([]*model.Application, error)
}

// ApplicationService handles business logic for consuming applications
type ApplicationService struct {
	appDAO              *dao.ApplicationDAO
	cacheService        *util.CacheService
	notificationService *util.NotificationService
	eventBus            *util.EventBus
}

var _ IApplicationService = &ApplicationService{}

func NewApplicationService(
	appDAO *dao.ApplicationDAO,
	cacheService *util.CacheService,
	notificationService *util.NotificationService,
	eventBus *util.EventBus) *ApplicationService {

	service := &ApplicationService{
		appDAO:              appDAO,
		cacheService:        cacheService,
		notificationService: notificationService,
		eventBus:            eventBus,
	}

	eventBus.Subscribe("application.created", service.handleApplicationChanged)
	eventBus.Subscribe("application.updated", service.handleApplicationChanged)
	eventBus.Subscribe("application.deleted", service.handleApplicationDeleted)

	return service
}

func (s *ApplicationService) handleApplicationChanged(ctx context.Context, event util.Event) error {
	app, ok := event.Payload.(model.Application)
	if !ok {
		return fmt.Errorf("invalid event payload type")
	}

	if err := s.cacheService.SetApplication(ctx, app); err != nil {
		logger.Error("Failed to cache application", zap.Error(err), zap.String("appID", app.ID))
	}

	changeType := "created"
	if event.Type == "application.updated" {
		changeType = "updated"
	}
	return s.notificationService.NotifyApplicationChange(ctx, changeType, app)
}

func (s *ApplicationService) handleApplicationDeleted(ctx context.Context, event util.Event) error {
	app, ok := event.Payload.(model.Application)
	if !ok {
		return fmt.Errorf("invalid event payload type")
	}

	if err := s.cacheService.DeleteApplication(ctx, app.ID); err != nil {
		logger.Error("Failed to delete application from cache", zap.Error(err), zap.String("appID", app.ID))
	}

	return s.notificationService.NotifyApplicationChange(ctx, "deleted", app)
}

func (s *ApplicationService) CreateApplication(ctx context.Context, app model.Application, userID string) (string, error) {
	if app.Name == "" {
		return "", fmt.Errorf("%w: application name cannot be empty", keyward_errors.ErrInvalidApplicationData)
	}

	appID, err := s.appDAO.CreateApplication(ctx, app, userID)
	if err != nil {
		return "", err
	}

	app.ID = appID
	s.eventBus.Publish(ctx, "application.created", app)
	return appID, nil
}

func (s *ApplicationService) UpdateApplication(ctx context.Context, app model.Application, userID string) (*model.Application, error) {
	if app.Name == "" {
		return nil, fmt.Errorf("%w: application name cannot be empty", keyward_errors.ErrInvalidApplicationData)
	}

	updatedApp, err := s.appDAO.UpdateApplication(ctx, app, userID)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, "application.updated", *updatedApp)
	return updatedApp, nil
}

func (s *ApplicationService) DeleteApplication(ctx context.Context, appID string, userID string) error {
	if err := s.appDAO.DeleteApplication(ctx, appID, userID); err != nil {
		return err
	}

	s.eventBus.Publish(ctx, "application.deleted", model.Application{ID: appID})
	return nil
}

func (s *ApplicationService) GetApplication(ctx context.Context, appID string) (*model.Application, error) {
	cached, err := s.cacheService.GetApplication(ctx, appID)
	if err == nil && cached != nil {
		return cached, nil
	}

	app, err := s.appDAO.GetApplication(ctx, appID)
	if err != nil {
		return nil, err
	}

	if err := s.cacheService.SetApplication(ctx, *app); err != nil {
		logger.Warn("Failed to cache application", zap.Error(err), zap.String("appID", appID))
	}
	return app, nil
}

func (s *ApplicationService) ListApplications(ctx context.Context, limit int, offset int) ([]*model.Application, error) {
	return s.appDAO.ListApplications(ctx, limit, offset)
}
