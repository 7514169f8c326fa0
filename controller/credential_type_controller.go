// controller/credential_type_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	keyward_errors "github.com/keyward/keyward/errors"
	"github.com/keyward/keyward/service"
	"github.com/keyward/keyward/util"
)

// CredentialTypeController serves the read-only schema surface the
// authoring UI builds policies against: declared types, their field paths,
// skeleton policies and typeahead suggestions.
type CredentialTypeController struct {
	policyService service.IPolicyService
}

func NewCredentialTypeController(policyService service.IPolicyService) *CredentialTypeController {
	return &CredentialTypeController{
		policyService: policyService,
	}
}

// RegisterRoutes registers the API routes
func (cc *CredentialTypeController) RegisterRoutes(r *gin.RouterGroup) {
	types := r.Group("/credential-types")
	{
		types.GET("", cc.ListCredentialTypes)
		types.GET("/:id/template", cc.GetPolicyTemplate)
		types.GET("/:id/field-paths", cc.GetFieldPaths)
		types.GET("/:id/suggestions", cc.GetSuggestions)
	}
}

// ListCredentialTypes endpoint
func (cc *CredentialTypeController) ListCredentialTypes(c *gin.Context) {
	c.JSON(http.StatusOK, cc.policyService.GetCredentialTypes(c))
}

// GetPolicyTemplate endpoint
func (cc *CredentialTypeController) GetPolicyTemplate(c *gin.Context) {
	typeID := c.Param("id")

	template, err := cc.policyService.GetPolicyTemplate(c, typeID)
	if err != nil {
		if errors.Is(err, keyward_errors.ErrUnknownCredentialType) {
			util.RespondWithError(c, http.StatusNotFound, "Unknown credential type", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to build policy template", err)
		}
		return
	}

	c.JSON(http.StatusOK, template)
}

// GetFieldPaths endpoint
func (cc *CredentialTypeController) GetFieldPaths(c *gin.Context) {
	typeID := c.Param("id")

	fields, err := cc.policyService.GetFieldPaths(c, typeID)
	if err != nil {
		if errors.Is(err, keyward_errors.ErrUnknownCredentialType) {
			util.RespondWithError(c, http.StatusNotFound, "Unknown credential type", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to list field paths", err)
		}
		return
	}

	c.JSON(http.StatusOK, fields)
}

// GetSuggestions endpoint
func (cc *CredentialTypeController) GetSuggestions(c *gin.Context) {
	typeID := c.Param("id")
	prefix := c.Query("prefix")

	suggestions, err := cc.policyService.GetSuggestions(c, typeID, prefix)
	if err != nil {
		if errors.Is(err, keyward_errors.ErrUnknownCredentialType) {
			util.RespondWithError(c, http.StatusNotFound, "Unknown credential type", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to build suggestions", err)
		}
		return
	}

	c.JSON(http.StatusOK, suggestions)
}
