package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/giorgiovilardo/easyorario/internal/dto"
	"github.com/giorgiovilardo/easyorario/internal/i18n"
	"github.com/giorgiovilardo/easyorario/internal/llm"
	"github.com/giorgiovilardo/easyorario/internal/service"
	"github.com/giorgiovilardo/easyorario/pkg/response"
)

// SettingsHandler serves the LLM settings endpoints.
type SettingsHandler struct {
	settingsSvc service.SettingsService
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

// Get handles GET /api/v1/settings/llm.
func (h *SettingsHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	settings, err := h.settingsSvc.GetLLMSettings(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, settings)
}

// Update handles PUT /api/v1/settings/llm. The endpoint is probed before
// being stored; a failing probe reports the configuration problem and stores
// nothing.
func (h *SettingsHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateLLMSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, i18n.MsgLLMBaseURLRequired)
		return
	}

	if err := h.settingsSvc.UpdateLLMSettings(c.Request.Context(), userID, &req); err != nil {
		h.handleSettingsError(c, err)
		return
	}

	response.OK(c, gin.H{"message": i18n.MsgLLMConfigSaved})
}

// handleSettingsError maps settings business errors, including the adapter's
// ConfigError kinds, onto HTTP responses.
func (h *SettingsHandler) handleSettingsError(c *gin.Context, err error) {
	var cfgErr *llm.ConfigError
	if errors.As(err, &cfgErr) {
		switch cfgErr.Kind {
		case llm.ConfigTimeout:
			response.BadRequest(c, 14001, i18n.MsgLLMTimeout)
		case llm.ConfigAuthFailed:
			response.BadRequest(c, 14002, i18n.MsgLLMAuthFailed)
		default:
			response.BadRequest(c, 14003, i18n.MsgLLMConnectionFailed)
		}
		return
	}

	switch {
	case errors.Is(err, service.ErrLLMBaseURLRequired):
		response.BadRequest(c, 14005, i18n.MsgLLMBaseURLRequired)
	case errors.Is(err, service.ErrLLMAPIKeyRequired):
		response.BadRequest(c, 14006, i18n.MsgLLMAPIKeyRequired)
	default:
		response.InternalError(c)
	}
}
