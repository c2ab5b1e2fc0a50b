package handler

import (
	"net/http"

	"skill-daily/internal/logger"
	"skill-daily/internal/middleware"
	"skill-daily/internal/model"
	"skill-daily/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *service.AuthService
	jwt  *middleware.JWT
}

func NewAuthHandler(auth *service.AuthService, jwt *middleware.JWT) *AuthHandler {
	return &AuthHandler{auth: auth, jwt: jwt}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	u, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("register.ok", "uid", u.ID, "username", u.Username)
	h.issue(c, http.StatusCreated, u)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	u, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		logger.Warn("login.failed", "username", req.Username)
		respondError(c, err)
		return
	}

	logger.Info("login.ok", "uid", u.ID, "name", u.Name)
	h.issue(c, http.StatusOK, u)
}

func (h *AuthHandler) issue(c *gin.Context, status int, u *model.User) {
	token, err := h.jwt.Sign(u.ID, u.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, model.LoginResponse{
		Token: token,
		User:  model.UserInfo{ID: u.ID, Username: u.Username, Name: u.Name},
	})
}
