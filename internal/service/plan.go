package service

import (
	"context"
	"time"

	"skill-daily/internal/cache"
	"skill-daily/internal/fallback"
	"skill-daily/internal/logger"
	"skill-daily/internal/model"

	"golang.org/x/sync/singleflight"
)

const CategoryDailyPlan = "daily-plan"

const maxPlanField = 500

type PlanGenerator interface {
	Generate(ctx context.Context, req model.PlanRequest) ([]string, error)
}

// PlanService serves daily plans from the cache, then the generator, then the
// fallback templates. Whatever source answered is written back to the cache.
type PlanService struct {
	cache    *cache.Store
	gen      PlanGenerator
	fallback *fallback.Selector
	timeout  time.Duration
	group    singleflight.Group
}

// NewPlanService accepts a nil generator, in which case every miss is served
// by the fallback selector.
func NewPlanService(c *cache.Store, gen PlanGenerator, fb *fallback.Selector, timeout time.Duration) *PlanService {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &PlanService{cache: c, gen: gen, fallback: fb, timeout: timeout}
}

func (s *PlanService) DailyPlan(ctx context.Context, req model.PlanRequest) (model.PlanResponse, error) {
	for field, v := range map[string]string{"mood": req.Mood, "daily_plans": req.DailyPlans, "learning_goal": req.LearningGoal} {
		if len(v) > maxPlanField {
			return model.PlanResponse{}, model.Invalid(field, "longer than %d characters", maxPlanField)
		}
	}

	input := planInput(req)
	if v, ok := s.cache.Get(CategoryDailyPlan, input); ok {
		logger.Debug("plan.cache.hit", "mood", req.Mood)
		return model.PlanResponse{Tasks: clone(v.([]string)), Source: model.SourceCache}, nil
	}

	// concurrent misses for the same normalized input share one generation
	key := cache.BuildKey(CategoryDailyPlan, input)
	v, _, _ := s.group.Do(key, func() (interface{}, error) {
		if v, ok := s.cache.Get(CategoryDailyPlan, input); ok {
			return model.PlanResponse{Tasks: v.([]string), Source: model.SourceCache}, nil
		}
		resp := s.generate(ctx, req)
		s.cache.Set(CategoryDailyPlan, input, resp.Tasks)
		return resp, nil
	})
	resp := v.(model.PlanResponse)
	resp.Tasks = clone(resp.Tasks)
	return resp, nil
}

func (s *PlanService) generate(ctx context.Context, req model.PlanRequest) model.PlanResponse {
	if s.gen != nil {
		gctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		tasks, err := s.gen.Generate(gctx, req)
		if err == nil && len(tasks) > 0 {
			logger.Info("plan.ai.ok", "tasks", len(tasks))
			return model.PlanResponse{Tasks: tasks, Source: model.SourceAI}
		}
		logger.Warn("plan.fallback", "err", err)
	}
	return model.PlanResponse{Tasks: s.fallback.Select(req.Mood, req.LearningGoal), Source: model.SourceFallback}
}

func planInput(req model.PlanRequest) map[string]any {
	return map[string]any{
		"mood":         req.Mood,
		"dailyPlans":   req.DailyPlans,
		"learningGoal": req.LearningGoal,
	}
}

func clone(s []string) []string { return append([]string(nil), s...) }
