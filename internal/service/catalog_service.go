package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/nextgenrdp/platform/internal/domain"
	"github.com/nextgenrdp/platform/internal/persistence"
	"github.com/nextgenrdp/platform/internal/repository"
)

const (
	planCacheKey = "catalog:plans:active"
	planCacheTTL = 5 * time.Minute
)

// CatalogService serves the plan catalog with a redis read-through cache
// in front of postgres. Cache misses and redis outages degrade to the
// database, never to an error.
type CatalogService struct {
	plans  repository.PlanRepository
	redis  *persistence.Redis
	logger *zap.Logger
}

// NewCatalogService builds the service.
func NewCatalogService(plans repository.PlanRepository, redis *persistence.Redis, logger *zap.Logger) *CatalogService {
	return &CatalogService{plans: plans, redis: redis, logger: logger}
}

// ListActivePlans returns the sellable plans, cached.
func (s *CatalogService) ListActivePlans(ctx context.Context) ([]*domain.Plan, error) {
	if cached, ok := s.readCache(ctx); ok {
		return cached, nil
	}

	plans, err := s.plans.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	s.writeCache(ctx, plans)
	return plans, nil
}

// GetPlanBySlug loads one plan, active or not.
func (s *CatalogService) GetPlanBySlug(ctx context.Context, slug string) (*domain.Plan, error) {
	return s.plans.GetBySlug(ctx, slug)
}

// ListAllPlans returns every plan for the admin panel, bypassing the cache.
func (s *CatalogService) ListAllPlans(ctx context.Context) ([]*domain.Plan, error) {
	return s.plans.ListAll(ctx)
}

// CreatePlan stores a new plan and invalidates the cache.
func (s *CatalogService) CreatePlan(ctx context.Context, plan *domain.Plan) error {
	if err := s.plans.Create(ctx, plan); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// UpdatePlan updates a plan and invalidates the cache.
func (s *CatalogService) UpdatePlan(ctx context.Context, plan *domain.Plan) error {
	if err := s.plans.Update(ctx, plan); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *CatalogService) readCache(ctx context.Context) ([]*domain.Plan, bool) {
	if s.redis == nil || s.redis.Client == nil {
		return nil, false
	}
	raw, err := s.redis.Client.Get(ctx, planCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var plans []*domain.Plan
	if err := json.Unmarshal(raw, &plans); err != nil {
		s.logger.Warn("corrupt plan cache entry", zap.Error(err))
		return nil, false
	}
	return plans, true
}

func (s *CatalogService) writeCache(ctx context.Context, plans []*domain.Plan) {
	if s.redis == nil || s.redis.Client == nil {
		return
	}
	raw, err := json.Marshal(plans)
	if err != nil {
		return
	}
	if err := s.redis.Client.Set(ctx, planCacheKey, raw, planCacheTTL).Err(); err != nil {
		s.logger.Debug("plan cache write failed", zap.Error(err))
	}
}

func (s *CatalogService) invalidateCache(ctx context.Context) {
	if s.redis == nil || s.redis.Client == nil {
		return
	}
	if err := s.redis.Client.Del(ctx, planCacheKey).Err(); err != nil {
		s.logger.Debug("plan cache invalidation failed", zap.Error(err))
	}
}
