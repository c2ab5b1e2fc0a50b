package handler

import (
	"net/http"

	"skill-daily/internal/middleware"
	"skill-daily/internal/model"
	"skill-daily/internal/service"

	"github.com/gin-gonic/gin"
)

type SkillHandler struct{ skills *service.SkillService }

func NewSkillHandler(skills *service.SkillService) *SkillHandler {
	return &SkillHandler{skills: skills}
}

func (h *SkillHandler) List(c *gin.Context) {
	list, err := h.skills.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": list})
}

func (h *SkillHandler) Create(c *gin.Context) {
	var req model.SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	sk, err := h.skills.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sk)
}

func (h *SkillHandler) Update(c *gin.Context) {
	var req model.SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	sk, err := h.skills.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sk)
}

func (h *SkillHandler) Delete(c *gin.Context) {
	if err := h.skills.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
