// controller/policy_controller.go
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

type PolicyController struct {
	policyService service.IPolicyService
}

func NewPolicyController(policyService service.IPolicyService) *PolicyController {
	return &PolicyController{
		policyService: policyService,
	}
}

// RegisterRoutes registers the API routes
func (pc *PolicyController) RegisterRoutes(r *gin.RouterGroup) {
	policies := r.Group("/policies")
	{
		policies.POST("", pc.CreatePolicy)
		policies.PUT("/:id", pc.UpdatePolicy)
		policies.DELETE("/:id", pc.DeletePolicy)
		policies.GET("/:id", pc.GetPolicy)
		policies.GET("", pc.ListPolicies)
		policies.POST("/search", pc.SearchPolicies)
		policies.POST("/bulk", pc.BulkCreatePolicies)
		policies.POST("/validate", pc.ValidatePolicy)
		policies.POST("/simulate", pc.SimulateAccess)
	}
}

// CreatePolicy endpoint
func (pc *PolicyController) CreatePolicy(c *gin.Context) {
	var policy model.Policy
	if err := c.ShouldBindJSON(&policy); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid policy data", keyward_errors.ErrInvalidPolicyData)
		return
	}
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", keyward_errors.ErrUnauthorized)
		return
	}

	policyID, err := pc.policyService.CreatePolicy(c, policy, userID)
	if err != nil {
		switch {
		case errors.Is(err, keyward_errors.ErrInvalidPolicyData):
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, keyward_errors.ErrPolicyConflict):
			util.RespondWithError(c, http.StatusConflict, "Policy already exists", err)
		case errors.Is(err, keyward_errors.ErrDatabaseOperation):
			util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create policy", keyward_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": policyID})
}

// UpdatePolicy endpoint
func (pc *PolicyController) UpdatePolicy(c *gin.Context) {
	policyID := c.Param("id")
	var policy model.Policy
	if err := c.ShouldBindJSON(&policy); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid policy data", err)
		return
	}
	policy.ID = policyID
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updatedPolicy, err := pc.policyService.UpdatePolicy(c, policy, userID)
	if err != nil {
		switch {
		case errors.Is(err, keyward_errors.ErrPolicyNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Policy not found", err)
		case errors.Is(err, keyward_errors.ErrInvalidPolicyData):
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update policy", err)
		}
		return
	}

	c.JSON(http.StatusOK, updatedPolicy)
}

// DeletePolicy endpoint
func (pc *PolicyController) DeletePolicy(c *gin.Context) {
	policyID := c.Param("id")
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := pc.policyService.DeletePolicy(c, policyID, userID); err != nil {
		if errors.Is(err, keyward_errors.ErrPolicyNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Policy not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete policy", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetPolicy endpoint
func (pc *PolicyController) GetPolicy(c *gin.Context) {
	policyID := c.Param("id")

	policy, err := pc.policyService.GetPolicy(c, policyID)
	if err != nil {
		if errors.Is(err, keyward_errors.ErrPolicyNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Policy not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve policy", err)
		}
		return
	}

	c.JSON(http.StatusOK, policy)
}

// ListPolicies endpoint
func (pc *PolicyController) ListPolicies(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	policies, err := pc.policyService.ListPolicies(c, limit, offset)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list policies", err)
		return
	}

	c.JSON(http.StatusOK, policies)
}

// SearchPolicies endpoint
func (pc *PolicyController) SearchPolicies(c *gin.Context) {
	var criteria model.PolicySearchCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid search criteria", keyward_errors.ErrInvalidSearchCriteria)
		return
	}

	policies, err := pc.policyService.SearchPolicies(c, criteria)
	if err != nil {
		if errors.Is(err, keyward_errors.ErrInvalidSearchCriteria) {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid search criteria", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to search policies", err)
		}
		return
	}

	c.JSON(http.StatusOK, policies)
}

// BulkCreatePolicies endpoint
func (pc *PolicyController) BulkCreatePolicies(c *gin.Context) {
	var policies []model.Policy
	if err := c.ShouldBindJSON(&policies); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid policy data", keyward_errors.ErrInvalidPolicyData)
		return
	}
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	ids, err := pc.policyService.BulkCreatePolicies(c, policies, userID)
	if err != nil {
		switch {
		case errors.Is(err, keyward_errors.ErrInvalidPolicyData):
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, keyward_errors.ErrPolicyConflict):
			util.RespondWithError(c, http.StatusConflict, "Policy already exists", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create policies", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ids": ids})
}

// ValidatePolicy endpoint. Always responds 200 with the validation result;
// an invalid document is a successful validation, not a request failure.
func (pc *PolicyController) ValidatePolicy(c *gin.Context) {
	var policy model.Policy
	if err := c.ShouldBindJSON(&policy); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid policy data", keyward_errors.ErrInvalidPolicyData)
		return
	}

	result := pc.policyService.ValidatePolicy(c, policy)
	c.JSON(http.StatusOK, result)
}

// SimulateAccess endpoint
func (pc *PolicyController) SimulateAccess(c *gin.Context) {
	var input service.SimulationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid simulation input", err)
		return
	}

	decision, err := pc.policyService.SimulateAccess(c, input)
	if err != nil {
		var unknownField *keyward_errors.UnknownFieldError
		switch {
		case errors.Is(err, keyward_errors.ErrUnknownCredentialType),
			errors.Is(err, keyward_errors.ErrInvalidRequestContext),
			errors.Is(err, keyward_errors.ErrInvalidPolicyData),
			errors.As(err, &unknownField):
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to simulate access", err)
		}
		return
	}

	c.JSON(http.StatusOK, decision)
}
