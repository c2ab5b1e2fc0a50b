package handler

import (
	"net/http"
	"strings"

	"skill-daily/internal/logger"
	"skill-daily/internal/middleware"
	"skill-daily/internal/model"
	"skill-daily/internal/service"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	plans  *service.PlanService
	skills *service.SkillService
}

func NewPlanHandler(plans *service.PlanService, skills *service.SkillService) *PlanHandler {
	return &PlanHandler{plans: plans, skills: skills}
}

// Daily builds today's plan. An empty learning_goal is filled from the
// user's skill names.
func (h *PlanHandler) Daily(c *gin.Context) {
	var req model.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	if strings.TrimSpace(req.LearningGoal) == "" && h.skills != nil {
		names, err := h.skills.Names(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			logger.Warn("plan.skills.failed", "uid", middleware.UserID(c), "err", err)
		}
		req.LearningGoal = names
	}

	resp, err := h.plans.DailyPlan(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("plan.ok", "uid", middleware.UserID(c), "source", resp.Source, "tasks", len(resp.Tasks))
	c.JSON(http.StatusOK, resp)
}
