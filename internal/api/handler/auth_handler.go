package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/giorgiovilardo/easyorario/internal/dto"
	"github.com/giorgiovilardo/easyorario/internal/i18n"
	"github.com/giorgiovilardo/easyorario/internal/service"
	"github.com/giorgiovilardo/easyorario/pkg/response"
)

// AuthHandler serves the auth endpoints.
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, i18n.MsgInvalidEmail)
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			response.BadRequest(c, 11001, i18n.MsgInvalidEmail)
		case errors.Is(err, service.ErrPasswordTooShort):
			response.BadRequest(c, 11002, i18n.MsgPasswordTooShort)
		case errors.Is(err, service.ErrEmailTaken):
			response.Conflict(c, 11003, i18n.MsgEmailTaken)
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, user)
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, i18n.MsgInvalidCreds)
		return
	}

	tokens, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, 11004, i18n.MsgInvalidCreds)
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, tokens)
}

// Logout handles POST /api/v1/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString("jti")
	expiresAt, _ := c.Get("token_expires_at")
	exp, _ := expiresAt.(time.Time)

	if err := h.authSvc.Logout(c.Request.Context(), jti, exp); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// GetCurrentUser handles GET /api/v1/auth/me.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 11005, i18n.MsgInvalidCreds)
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}
