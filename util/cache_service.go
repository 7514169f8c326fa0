// util/cache_service.go

package util

import (
	"context"

	"github.com/keyward/keyward/db"
	"github.com/keyward/keyward/model"
	pdp_model "github.com/keyward/keyward/pdp/model"
)

type CacheService struct{}

func NewCacheService() *CacheService {
	return &CacheService{}
}

func (c *CacheService) GetPolicy(ctx context.Context, policyID string) (*model.Policy, error) {
	return db.GetCachedPolicy(ctx, policyID)
}

func (c *CacheService) SetPolicy(ctx context.Context, policy model.Policy) error {
	return db.CachePolicy(ctx, &policy)
}

func (c *CacheService) DeletePolicy(ctx context.Context, policyID string) error {
	return db.DeleteCachedPolicy(ctx, policyID)
}

func (c *CacheService) GetDecision(ctx context.Context, fingerprint string) (*pdp_model.Decision, error) {
	return db.GetCachedDecision(ctx, fingerprint)
}

func (c *CacheService) SetDecision(ctx context.Context, fingerprint string, decision *pdp_model.Decision) error {
	return db.CacheDecision(ctx, fingerprint, decision)
}

func (c *CacheService) GetApplication(ctx context.Context, applicationID string) (*model.Application, error) {
	return db.GetCachedApplication(ctx, applicationID)
}

func (c *CacheService) SetApplication(ctx context.Context, application model.Application) error {
	return db.CacheApplication(ctx, &application)
}

func (c *CacheService) DeleteApplication(ctx context.Context, applicationID string) error {
	return db.DeleteCachedApplication(ctx, applicationID)
}
