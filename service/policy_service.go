// service/policy_service.go
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/keyward/keyward/audit"
	"github.com/keyward/keyward/dao"
	keyward_errors "github.com/keyward/keyward/errors"
	logger "github.com/keyward/keyward/logging"
	"github.com/keyward/keyward/model"
	"github.com/keyward/keyward/pdp/condition"
	"github.com/keyward/keyward/pdp/engine"
	pdp_model "github.com/keyward/keyward/pdp/model"
	"github.com/keyward/keyward/pdp/validator"
	"github.com/keyward/keyward/schema"
	"github.com/keyward/keyward/util"
)

// SimulationInput carries one dry-run: the synthetic request plus an
// optional inline policy set. With no inline policies the enabled store
// set for the request's credential type is used instead.
type SimulationInput struct {
	Request  pdp_model.AccessRequest `json:"request"`
	Policies []model.Policy          `json:"policies,omitempty"`
}

// IPolicyService defines the interface for policy-related operations
type IPolicyService interface {
	CreatePolicy(ctx context.Context, policy model.Policy, userID string) (string, error)
	UpdatePolicy(ctx context.Context, policy model.Policy, userID string) (*model.Policy, error)
	DeletePolicy(ctx context.Context, policyID string, userID string) error
	GetPolicy(ctx context.Context, policyID string) (*model.Policy, error)
	ListPolicies(ctx context.Context, limit int, offset int) ([]*model.Policy, error)
	SearchPolicies(ctx context.Context, criteria model.PolicySearchCriteria) ([]*model.Policy, error)
	BulkCreatePolicies(ctx context.Context, policies []model.Policy, userID string) ([]string, error)
	ValidatePolicy(ctx context.Context, policy model.Policy) model.ValidationResult
	SimulateAccess(ctx context.Context, input SimulationInput) (*pdp_model.Decision, error)
	GetPolicyTemplate(ctx context.Context, typeID string) (model.Policy, error)
	GetFieldPaths(ctx context.Context, typeID string) ([]model.FieldDef, error)
	GetSuggestions(ctx context.Context, typeID, prefix string) ([]model.FieldSuggestion, error)
	GetCredentialTypes(ctx context.Context) []model.CredentialType
}

// PolicyService handles business logic for policies
type PolicyService struct {
	policyDAO           *dao.PolicyDAO
	validator           *validator.Validator
	registry            *schema.Registry
	simulator           *engine.Simulator
	cacheService        *util.CacheService
	notificationService *util.NotificationService
	eventBus            *util.EventBus
	auditService        audit.Service
}

var _ IPolicyService = &PolicyService{}

func NewPolicyService(
	policyDAO *dao.PolicyDAO,
	v *validator.Validator,
	registry *schema.Registry,
	cacheService *util.CacheService,
	notificationService *util.NotificationService,
	eventBus *util.EventBus,
	auditService audit.Service) *PolicyService {

	service := &PolicyService{
		policyDAO:           policyDAO,
		validator:           v,
		registry:            registry,
		simulator:           engine.NewSimulator(),
		cacheService:        cacheService,
		notificationService: notificationService,
		eventBus:            eventBus,
		auditService:        auditService,
	}

	// Set up event subscriptions
	eventBus.Subscribe("policy.created", service.handlePolicyCreated)
	eventBus.Subscribe("policy.updated", service.handlePolicyUpdated)
	eventBus.Subscribe("policy.deleted", service.handlePolicyDeleted)

	return service
}

func (s *PolicyService) handlePolicyCreated(ctx context.Context, event util.Event) error {
	policy, ok := event.Payload.(model.Policy)
	if !ok {
		return fmt.Errorf("invalid event payload type")
	}

	if err := s.cacheService.SetPolicy(ctx, policy); err != nil {
		logger.Error("Failed to cache policy", zap.Error(err), zap.String("policyID", policy.ID))
	}

	return s.notificationService.NotifyPolicyChange(ctx, "created", policy)
}

func (s *PolicyService) handlePolicyUpdated(ctx context.Context, event util.Event) error {
	policy, ok := event.Payload.(model.Policy)
	if !ok {
		return fmt.Errorf("invalid event payload type")
	}

	if err := s.cacheService.SetPolicy(ctx, policy); err != nil {
		logger.Error("Failed to update policy in cache", zap.Error(err), zap.String("policyID", policy.ID))
	}

	return s.notificationService.NotifyPolicyChange(ctx, "updated", policy)
}

func (s *PolicyService) handlePolicyDeleted(ctx context.Context, event util.Event) error {
	policy, ok := event.Payload.(model.Policy)
	if !ok {
		return fmt.Errorf("invalid event payload type")
	}

	if err := s.cacheService.DeletePolicy(ctx, policy.ID); err != nil {
		logger.Error("Failed to delete policy from cache", zap.Error(err), zap.String("policyID", policy.ID))
	}

	return s.notificationService.NotifyPolicyChange(ctx, "deleted", policy)
}

// CreatePolicy validates the policy document and persists it. A document
// that fails validation never reaches the store.
func (s *PolicyService) CreatePolicy(ctx context.Context, policy model.Policy, userID string) (string, error) {
	result := s.validator.Validate(policy)
	if !result.Valid {
		logger.Warn("Rejected invalid policy document",
			zap.String("policyName", policy.Name),
			zap.Int("errorCount", len(result.Errors)))
		return "", fmt.Errorf("%w: %s", keyward_errors.ErrInvalidPolicyData, firstIssue(result.Errors))
	}

	policy.Version = 1
	policyID, err := s.policyDAO.CreatePolicy(ctx, policy, userID)
	if err != nil {
		return "", err
	}

	policy.ID = policyID
	s.eventBus.Publish(ctx, "policy.created", policy)
	return policyID, nil
}

// UpdatePolicy validates and persists the new revision, bumping the version.
func (s *PolicyService) UpdatePolicy(ctx context.Context, policy model.Policy, userID string) (*model.Policy, error) {
	result := s.validator.Validate(policy)
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s", keyward_errors.ErrInvalidPolicyData, firstIssue(result.Errors))
	}

	existing, err := s.policyDAO.GetPolicy(ctx, policy.ID)
	if err != nil {
		return nil, err
	}
	policy.Version = existing.Version + 1

	updatedPolicy, err := s.policyDAO.UpdatePolicy(ctx, policy, userID)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, "policy.updated", *updatedPolicy)
	return updatedPolicy, nil
}

func (s *PolicyService) DeletePolicy(ctx context.Context, policyID string, userID string) error {
	if err := s.policyDAO.DeletePolicy(ctx, policyID, userID); err != nil {
		return err
	}

	s.eventBus.Publish(ctx, "policy.deleted", model.Policy{ID: policyID})
	return nil
}

// GetPolicy retrieves a policy, checking the cache before the store.
func (s *PolicyService) GetPolicy(ctx context.Context, policyID string) (*model.Policy, error) {
	cached, err := s.cacheService.GetPolicy(ctx, policyID)
	if err == nil && cached != nil {
		return cached, nil
	}

	policy, err := s.policyDAO.GetPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}

	if err := s.cacheService.SetPolicy(ctx, *policy); err != nil {
		logger.Warn("Failed to cache policy", zap.Error(err), zap.String("policyID", policyID))
	}
	return policy, nil
}

func (s *PolicyService) ListPolicies(ctx context.Context, limit int, offset int) ([]*model.Policy, error) {
	return s.policyDAO.ListPolicies(ctx, limit, offset)
}

func (s *PolicyService) SearchPolicies(ctx context.Context, criteria model.PolicySearchCriteria) ([]*model.Policy, error) {
	if criteria.MinPriority < 0 || criteria.MaxPriority < 0 {
		return nil, keyward_errors.ErrInvalidSearchCriteria
	}
	return s.policyDAO.SearchPolicies(ctx, criteria)
}

// BulkCreatePolicies validates every document up front, then persists the
// batch concurrently. All-or-nothing on validation: one bad document fails
// the whole batch before anything is written.
func (s *PolicyService) BulkCreatePolicies(ctx context.Context, policies []model.Policy, userID string) ([]string, error) {
	for i, policy := range policies {
		result := s.validator.Validate(policy)
		if !result.Valid {
			return nil, fmt.Errorf("%w: policy %d (%s): %s",
				keyward_errors.ErrInvalidPolicyData, i, policy.Name, firstIssue(result.Errors))
		}
	}

	ids := make([]string, len(policies))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i := range policies {
		i := i
		g.Go(func() error {
			policy := policies[i]
			policy.Version = 1
			id, err := s.policyDAO.CreatePolicy(gctx, policy, userID)
			if err != nil {
				return err
			}
			ids[i] = id
			policy.ID = id
			s.eventBus.Publish(gctx, "policy.created", policy)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ids, nil
}

// ValidatePolicy runs the validator without touching the store.
func (s *PolicyService) ValidatePolicy(ctx context.Context, policy model.Policy) model.ValidationResult {
	return s.validator.Validate(policy)
}

// SimulateAccess evaluates one access request against a policy set and
// returns the decision with its full trace. With inline policies the call
// is a pure dry-run; otherwise the enabled store set for the request's
// credential type is loaded, and the decision is cached and audited.
func (s *PolicyService) SimulateAccess(ctx context.Context, input SimulationInput) (*pdp_model.Decision, error) {
	start := time.Now()

	reqCtx, err := pdp_model.BuildRequestContext(input.Request, s.registry)
	if err != nil {
		return nil, err
	}

	inline := len(input.Policies) > 0

	var fingerprint string
	if !inline {
		fingerprint = decisionFingerprint(input.Request)
		if cached, err := s.cacheService.GetDecision(ctx, fingerprint); err == nil && cached != nil {
			logger.Debug("Decision cache hit", zap.String("fingerprint", fingerprint))
			return cached, nil
		}
	}

	var policies []model.Policy
	if inline {
		policies = input.Policies
	} else {
		stored, err := s.policyDAO.RetrieveApplicablePolicies(ctx, input.Request.CredentialType)
		if err != nil {
			return nil, err
		}
		policies = make([]model.Policy, 0, len(stored))
		for _, p := range stored {
			policies = append(policies, *p)
		}
	}

	compiled := make([]engine.CompiledPolicy, 0, len(policies))
	for _, policy := range policies {
		tree, err := condition.Parse(policy.Condition, policy.CredentialType, s.registry)
		if err != nil {
			return nil, fmt.Errorf("%w: policy %q: %v", keyward_errors.ErrInvalidPolicyData, policy.Name, err)
		}
		compiled = append(compiled, engine.CompiledPolicy{Policy: policy, Tree: tree})
	}

	decision := s.simulator.Simulate(compiled, reqCtx)

	duration := time.Since(start)
	logger.Info("Simulated access request",
		zap.String("appID", input.Request.AppID),
		zap.String("credentialType", input.Request.CredentialType),
		zap.String("effect", decision.Effect),
		zap.String("policyID", decision.PolicyID),
		zap.Int("policy_count", len(compiled)),
		zap.Bool("inline", inline),
		zap.Duration("duration", duration))

	if !inline {
		if err := s.cacheService.SetDecision(ctx, fingerprint, &decision); err != nil {
			logger.Warn("Failed to cache decision", zap.Error(err))
		}
		s.auditDecision(ctx, input.Request, decision)
		if decision.Effect == model.PolicyEffectDeny {
			if err := s.notificationService.NotifyDeniedAccess(ctx,
				input.Request.AppID, input.Request.CredentialID, decision.PolicyID); err != nil {
				logger.Warn("Failed to notify denied access", zap.Error(err))
			}
		}
	}

	return &decision, nil
}

func (s *PolicyService) auditDecision(ctx context.Context, req pdp_model.AccessRequest, decision pdp_model.Decision) {
	entry := audit.AuditLog{
		Timestamp:      time.Now(),
		Action:         "decision",
		AppID:          req.AppID,
		CredentialID:   req.CredentialID,
		CredentialType: req.CredentialType,
		Effect:         decision.Effect,
		PolicyID:       decision.PolicyID,
	}
	if err := s.auditService.LogEvent(ctx, entry); err != nil {
		logger.Warn("Failed to audit decision", zap.Error(err), zap.String("appID", req.AppID))
	}
}

func (s *PolicyService) GetPolicyTemplate(ctx context.Context, typeID string) (model.Policy, error) {
	return s.validator.Template(typeID)
}

func (s *PolicyService) GetFieldPaths(ctx context.Context, typeID string) ([]model.FieldDef, error) {
	return s.validator.FieldPaths(typeID)
}

func (s *PolicyService) GetSuggestions(ctx context.Context, typeID, prefix string) ([]model.FieldSuggestion, error) {
	return s.validator.Suggestions(typeID, prefix)
}

func (s *PolicyService) GetCredentialTypes(ctx context.Context) []model.CredentialType {
	return s.registry.Types()
}

// decisionFingerprint derives a stable cache key from the request facts.
// Only store-backed simulations are cached; the key does not cover inline
// policy sets.
func decisionFingerprint(req pdp_model.AccessRequest) string {
	payload, _ := json.Marshal(req)
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

func firstIssue(issues []model.ValidationIssue) string {
	if len(issues) == 0 {
		return "invalid policy"
	}
	issue := issues[0]
	if issue.Path != "" {
		return fmt.Sprintf("%s: %s", issue.Path, issue.Reason)
	}
	return issue.Reason
}
