package handler

import (
	"skill-daily/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth     *AuthHandler
	Skill    *SkillHandler
	Progress *ProgressHandler
	Plan     *PlanHandler
	Cache    *CacheHandler
}

// NewRouter mounts the API. Only admins may clear the plan cache, since it
// is shared by every user.
func NewRouter(h Handlers, jwt *middleware.JWT, admins []int) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"X-New-Token", "Content-Disposition"},
	}))

	r.POST("/api/register", h.Auth.Register)
	r.POST("/api/login", h.Auth.Login)

	api := r.Group("/api", jwt.Handler())
	api.GET("/skills", h.Skill.List)
	api.POST("/skills", h.Skill.Create)
	api.PUT("/skills/:id", h.Skill.Update)
	api.DELETE("/skills/:id", h.Skill.Delete)

	api.GET("/progress", h.Progress.Ledger)
	api.GET("/progress/stats", h.Progress.Stats)
	api.GET("/progress/export", h.Progress.Export)
	api.PUT("/progress/days/:date", h.Progress.PutDay)
	api.GET("/progress/days/:date", h.Progress.GetDay)

	api.POST("/plans/daily", h.Plan.Daily)

	api.GET("/cache/stats", h.Cache.Stats)
	admin := api.Group("", middleware.RequireUsers(admins))
	admin.POST("/cache/clear-expired", h.Cache.ClearExpired)
	admin.DELETE("/cache", h.Cache.ClearAll)
	return r
}
