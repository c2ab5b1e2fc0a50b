package handler

import (
	"net/http"

	"skill-daily/internal/cache"
	"skill-daily/internal/logger"
	"skill-daily/internal/middleware"

	"github.com/gin-gonic/gin"
)

type CacheHandler struct{ cache *cache.Store }

func NewCacheHandler(c *cache.Store) *CacheHandler { return &CacheHandler{cache: c} }

func (h *CacheHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.cache.Stats())
}

func (h *CacheHandler) ClearExpired(c *gin.Context) {
	n := h.cache.ClearExpired()
	logger.Info("cache.clear_expired", "uid", middleware.UserID(c), "removed", n)
	c.JSON(http.StatusOK, gin.H{"removed": n})
}

func (h *CacheHandler) ClearAll(c *gin.Context) {
	h.cache.ClearAll()
	logger.Info("cache.clear_all", "uid", middleware.UserID(c))
	c.Status(http.StatusNoContent)
}
