// controller/application_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	keyward_errors "github.com/keyward/keyward/errors"
	"github.com/keyward/keyward/model"
	"github.com/keyward/keyward/service"
	"github.com/keyward/keyward/util"
	helper_util "github.com/keyward/keyward/util/helper"
)

type ApplicationController struct {
	applicationService service.IApplicationService
}

func NewApplicationController(applicationService service.IApplicationService) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
	}
}

// RegisterRoutes registers the API routes
func (ac *ApplicationController) RegisterRoutes(r *gin.RouterGroup) {
	apps := r.Group("/applications")
	{
		apps.POST("", ac.CreateApplication)
		apps.PUT("/:id", ac.UpdateApplication)
		apps.DELETE("/:id", ac.DeleteApplication)
		apps.GET("/:id", ac.GetApplication)
		apps.GET("", ac.ListApplications)
	}
}

// CreateApplication endpoint
func (ac *ApplicationController) CreateApplication(c *gin.Context) {
	var app model.Application
	if err := c.ShouldBindJSON(&app); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid application data", keyward_errors.ErrInvalidApplicationData)
		return
	}
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", keyward_errors.ErrUnauthorized)
		return
	}

	appID, err := ac.applicationService.CreateApplication(c, app, userID)
	if err != nil {
		switch {
		case errors.Is(err, keyward_errors.ErrInvalidApplicationData):
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, keyward_errors.ErrApplicationConflict):
			util.RespondWithError(c, http.StatusConflict, "Application already exists", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create application", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": appID})
}

// UpdateApplication endpoint
func (ac *ApplicationController) UpdateApplication(c *gin.Context) {
	appID := c.Param("id")
	var app model.Application
	if err := c.ShouldBindJSON(&app); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid application data", err)
		return
	}
	app.ID = appID
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updatedApp, err := ac.applicationService.UpdateApplication(c, app, userID)
	if err != nil {
		switch {
		case errors.Is(err, keyward_errors.ErrApplicationNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Application not found", err)
		case errors.Is(err, keyward_errors.ErrInvalidApplicationData):
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update application", err)
		}
		return
	}

	c.JSON(http.StatusOK, updatedApp)
}

// DeleteApplication endpoint
func (ac *ApplicationController) DeleteApplication(c *gin.Context) {
	appID := c.Param("id")
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := ac.applicationService.DeleteApplication(c, appID, userID); err != nil {
		if errors.Is(err, keyward_errors.ErrApplicationNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Application not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete application", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetApplication endpoint
func (ac *ApplicationController) GetApplication(c *gin.Context) {
	appID := c.Param("id")

	app, err := ac.applicationService.GetApplication(c, appID)
	if err != nil {
		if errors.Is(err, keyward_errors.ErrApplicationNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Application not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve application", err)
		}
		return
	}

	c.JSON(http.StatusOK, app)
}

// ListApplications endpoint
func (ac *ApplicationController) ListApplications(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	apps, err := ac.applicationService.ListApplications(c, limit, offset)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list applications", err)
		return
	}

	c.JSON(http.StatusOK, apps)
}
