package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/giorgiovilardo/easyorario/internal/dto"
	"github.com/giorgiovilardo/easyorario/internal/i18n"
	"github.com/giorgiovilardo/easyorario/internal/service"
	"github.com/giorgiovilardo/easyorario/pkg/response"
)

// ConstraintHandler serves the constraint lifecycle endpoints.
type ConstraintHandler struct {
	constraintSvc service.ConstraintService
	settingsSvc   service.SettingsService
}

// NewConstraintHandler creates a ConstraintHandler.
func NewConstraintHandler(constraintSvc service.ConstraintService, settingsSvc service.SettingsService) *ConstraintHandler {
	return &ConstraintHandler{constraintSvc: constraintSvc, settingsSvc: settingsSvc}
}

// List handles GET /api/v1/timetables/:id/constraints.
func (h *ConstraintHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	constraints, err := h.constraintSvc.ListConstraints(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.handleConstraintError(c, err)
		return
	}

	response.OK(c, gin.H{"list": constraints})
}

// Add handles POST /api/v1/timetables/:id/constraints.
func (h *ConstraintHandler) Add(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AddConstraintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, i18n.MsgConstraintTextRequired)
		return
	}

	constraint, err := h.constraintSvc.AddConstraint(c.Request.Context(), c.Param("id"), userID, req.Text)
	if err != nil {
		h.handleConstraintError(c, err)
		return
	}

	response.Created(c, constraint)
}

// Translate handles POST /api/v1/timetables/:id/constraints/translate.
// It resolves the caller's stored LLM endpoint and runs one batch.
func (h *ConstraintHandler) Translate(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	ep, err := h.settingsSvc.ResolveLLMEndpoint(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrLLMNotConfigured) {
			response.BadRequest(c, 14004, i18n.MsgLLMConfigRequired)
			return
		}
		response.InternalError(c)
		return
	}

	result, err := h.constraintSvc.TranslatePending(c.Request.Context(), c.Param("id"), userID, ep)
	if err != nil {
		h.handleConstraintError(c, err)
		return
	}

	response.OK(c, result)
}

// Verify handles POST /api/v1/timetables/:id/constraints/:constraintID/verify.
func (h *ConstraintHandler) Verify(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	constraint, err := h.constraintSvc.VerifyConstraint(c.Request.Context(), c.Param("constraintID"), c.Param("id"), userID)
	if err != nil {
		h.handleConstraintError(c, err)
		return
	}

	response.OK(c, constraint)
}

// Reject handles POST /api/v1/timetables/:id/constraints/:constraintID/reject.
func (h *ConstraintHandler) Reject(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	constraint, err := h.constraintSvc.RejectConstraint(c.Request.Context(), c.Param("constraintID"), c.Param("id"), userID)
	if err != nil {
		h.handleConstraintError(c, err)
		return
	}

	response.OK(c, constraint)
}

// Conflicts handles GET /api/v1/timetables/:id/conflicts.
func (h *ConstraintHandler) Conflicts(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	warnings, err := h.constraintSvc.DetectConflicts(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.handleConstraintError(c, err)
		return
	}

	response.OK(c, gin.H{"warnings": warnings})
}

// handleConstraintError maps constraint business errors onto HTTP responses.
func (h *ConstraintHandler) handleConstraintError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTimetableNotFound):
		response.NotFound(c, 12001, i18n.MsgTimetableNotFound)
	case errors.Is(err, service.ErrTimetableForbidden),
		errors.Is(err, service.ErrConstraintForbidden):
		response.Forbidden(c, 10003, i18n.MsgForbidden)
	case errors.Is(err, service.ErrConstraintTextRequired):
		response.BadRequest(c, 13001, i18n.MsgConstraintTextRequired)
	case errors.Is(err, service.ErrConstraintTextTooLong):
		response.BadRequest(c, 13002, i18n.MsgConstraintTextTooLong)
	case errors.Is(err, service.ErrConstraintNotFound):
		response.NotFound(c, 13003, i18n.MsgConstraintNotFound)
	case errors.Is(err, service.ErrConstraintNotTranslatable):
		response.Conflict(c, 13004, i18n.MsgConstraintNotTranslatable)
	default:
		response.InternalError(c)
	}
}
