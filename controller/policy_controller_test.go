// controller/policy_controller_test.go
package controller_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/keyward/keyward/controller"
	keyward_errors "github.com/keyward/keyward/errors"
	logger "github.com/keyward/keyward/logging"
	"github.com/keyward/keyward/model"
	pdp_model "github.com/keyward/keyward/pdp/model"
	mock_service "github.com/keyward/keyward/test/service_mock"
)

func setupRouter() *gin.Engine {
	r := gin.Default()
	return r
}

func TestPolicyController(t *testing.T) {
	// Initialize logger
	logger.InitLogger("../logging")
	defer logger.Sync()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPolicyService := mock_service.NewMockIPolicyService(ctrl)
	policyController := controller.NewPolicyController(mockPolicyService)
	router := setupRouter()
	api := router.Group("/")
	policyController.RegisterRoutes(api)

	t.Run("CreatePolicy_Success", func(t *testing.T) {
		mockPolicyService.EXPECT().
			CreatePolicy(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("policy-1", nil)

		body := strings.NewReader(`{"name":"Test Policy","credential_type":"db-password","effect":"deny"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/policies", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "policy-1")
	})

	t.Run("CreatePolicy_Failure_Invalid", func(t *testing.T) {
		mockPolicyService.EXPECT().
			CreatePolicy(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", keyward_errors.ErrInvalidPolicyData)

		body := strings.NewReader(`{"name":"Bad Policy"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/policies", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("UpdatePolicy_Success", func(t *testing.T) {
		mockPolicyService.EXPECT().
			UpdatePolicy(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&model.Policy{ID: "1", Name: "Updated Policy"}, nil)

		body := strings.NewReader(`{"name":"Updated Policy"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/policies/1", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("UpdatePolicy_Failure_NotFound", func(t *testing.T) {
		mockPolicyService.EXPECT().
			UpdatePolicy(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, keyward_errors.ErrPolicyNotFound)

		body := strings.NewReader(`{"name":"Updated Policy"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/policies/1", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("DeletePolicy_Success", func(t *testing.T) {
		mockPolicyService.EXPECT().
			DeletePolicy(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/policies/1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("DeletePolicy_Failure_NotFound", func(t *testing.T) {
		mockPolicyService.EXPECT().
			DeletePolicy(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(keyward_errors.ErrPolicyNotFound)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/policies/1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GetPolicy_Success", func(t *testing.T) {
		mockPolicyService.EXPECT().
			GetPolicy(gomock.Any(), gomock.Any()).
			Return(&model.Policy{ID: "1", Name: "Test Policy"}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/policies/1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("GetPolicy_Failure_NotFound", func(t *testing.T) {
		mockPolicyService.EXPECT().
			GetPolicy(gomock.Any(), gomock.Any()).
			Return(nil, keyward_errors.ErrPolicyNotFound)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/policies/1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("ListPolicies_Success", func(t *testing.T) {
		mockPolicyService.EXPECT().
			ListPolicies(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]*model.Policy{{ID: "1"}, {ID: "2"}}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/policies", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ValidatePolicy_InvalidDocumentStillOK", func(t *testing.T) {
		mockPolicyService.EXPECT().
			ValidatePolicy(gomock.Any(), gomock.Any()).
			Return(model.ValidationResult{
				Valid: false,
				Errors: []model.ValidationIssue{
					{Path: "effect", Reason: `effect must be "allow" or "deny"`},
				},
			})

		body := strings.NewReader(`{"name":"Bad Policy","effect":"maybe"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/policies/validate", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "effect")
	})

	t.Run("SimulateAccess_Success", func(t *testing.T) {
		mockPolicyService.EXPECT().
			SimulateAccess(gomock.Any(), gomock.Any()).
			Return(&pdp_model.Decision{
				Effect:   model.PolicyEffectAllow,
				PolicyID: "policy-1",
				Reason:   `matched policy "business-hours"`,
			}, nil)

		body := strings.NewReader(`{"request":{"app_id":"svc-42","credential_type":"db-password","fields":{"request.hour":14}}}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/policies/simulate", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "allow")
	})

	t.Run("SimulateAccess_Failure_UnknownType", func(t *testing.T) {
		mockPolicyService.EXPECT().
			SimulateAccess(gomock.Any(), gomock.Any()).
			Return(nil, keyward_errors.ErrUnknownCredentialType)

		body := strings.NewReader(`{"request":{"app_id":"svc-42","credential_type":"nope"}}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/policies/simulate", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("BulkCreatePolicies_Success", func(t *testing.T) {
		mockPolicyService.EXPECT().
			BulkCreatePolicies(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]string{"p-1", "p-2"}, nil)

		body := strings.NewReader(`[{"name":"A"},{"name":"B"}]`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/policies/bulk", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})
}
