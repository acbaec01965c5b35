package handler

import (
	"errors"
	"net/http"

	"bitbuzz/internal/logger"
	"bitbuzz/internal/model"
	"bitbuzz/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ auth *service.AuthService }

func NewAuthHandler(auth *service.AuthService) *AuthHandler { return &AuthHandler{auth: auth} }

// Login unlocks admin mode. An empty password is answered with
// admin=false and no error so the UI can stay quiet.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ok, err := h.auth.Authenticate(req.Password)
	if errors.Is(err, service.ErrWrongPassword) {
		logger.Warn("admin.login_failed", "ip", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusOK, model.LoginResponse{})
		return
	}

	token, exp, err := h.auth.IssueToken()
	if err != nil {
		logger.Error("admin.token_failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token unavailable"})
		return
	}
	logger.Info("admin.login_ok", "ip", c.ClientIP())
	c.JSON(http.StatusOK, model.LoginResponse{Admin: true, Token: token, ExpiresAt: exp})
}
