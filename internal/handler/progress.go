package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"skill-daily/internal/middleware"
	"skill-daily/internal/model"
	"skill-daily/internal/progress"
	"skill-daily/internal/service"
	"skill-daily/internal/stats"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ProgressHandler struct {
	progress *progress.Service
	now      func() time.Time
}

func NewProgressHandler(p *progress.Service) *ProgressHandler {
	return &ProgressHandler{progress: p, now: time.Now}
}

func (h *ProgressHandler) PutDay(c *gin.Context) {
	date, err := progress.ParseDateParam(c.Param("date"), h.now())
	if err != nil {
		respondError(c, err)
		return
	}
	var req model.DayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	day, err := h.progress.UpsertDay(c.Request.Context(), middleware.UserID(c), progress.DayInput{
		Date:          date,
		Tasks:         req.Tasks,
		Mood:          req.Mood,
		FreeformPlans: req.FreeformPlans,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

func (h *ProgressHandler) GetDay(c *gin.Context) {
	date, err := progress.ParseDateParam(c.Param("date"), h.now())
	if err != nil {
		respondError(c, err)
		return
	}
	day, err := h.progress.Day(c.Request.Context(), middleware.UserID(c), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

func (h *ProgressHandler) Ledger(c *gin.Context) {
	l, err := h.progress.Ledger(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *ProgressHandler) Stats(c *gin.Context) {
	l, err := h.progress.Ledger(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats.Compute(l, h.now()))
}

func (h *ProgressHandler) Export(c *gin.Context) {
	uid := middleware.UserID(c)
	l, err := h.progress.Ledger(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := service.WriteLedgerXLSX(&buf, l, stats.Compute(l, h.now())); err != nil {
		respondError(c, err)
		return
	}
	name := fmt.Sprintf("progress-%s.xlsx", h.now().Format(model.DateLayout))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
