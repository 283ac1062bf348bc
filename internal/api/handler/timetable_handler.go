package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/giorgiovilardo/easyorario/internal/dto"
	"github.com/giorgiovilardo/easyorario/internal/i18n"
	"github.com/giorgiovilardo/easyorario/internal/service"
	"github.com/giorgiovilardo/easyorario/pkg/response"
)

// TimetableHandler serves the timetable endpoints.
type TimetableHandler struct {
	timetableSvc service.TimetableService
}

// NewTimetableHandler creates a TimetableHandler.
func NewTimetableHandler(timetableSvc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetableSvc: timetableSvc}
}

// Create handles POST /api/v1/timetables.
func (h *TimetableHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, i18n.MsgClassIdentifierRequired)
		return
	}

	timetable, err := h.timetableSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.Created(c, timetable)
}

// List handles GET /api/v1/timetables.
func (h *TimetableHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	timetables, err := h.timetableSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": timetables})
}

// Get handles GET /api/v1/timetables/:id.
func (h *TimetableHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	timetable, err := h.timetableSvc.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.OK(c, timetable)
}

// handleTimetableError maps timetable business errors onto HTTP responses.
func (h *TimetableHandler) handleTimetableError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTimetableNotFound):
		response.NotFound(c, 12001, i18n.MsgTimetableNotFound)
	case errors.Is(err, service.ErrTimetableForbidden):
		response.Forbidden(c, 10003, i18n.MsgForbidden)
	case errors.Is(err, service.ErrClassIdentifierRequired):
		response.BadRequest(c, 12002, i18n.MsgClassIdentifierRequired)
	case errors.Is(err, service.ErrClassIdentifierTooLong):
		response.BadRequest(c, 12003, i18n.MsgClassIdentifierTooLong)
	case errors.Is(err, service.ErrSchoolYearRequired):
		response.BadRequest(c, 12004, i18n.MsgSchoolYearRequired)
	case errors.Is(err, service.ErrWeeklyHoursInvalid):
		response.BadRequest(c, 12005, i18n.MsgWeeklyHoursInvalid)
	case errors.Is(err, service.ErrSubjectsRequired):
		response.BadRequest(c, 12006, i18n.MsgSubjectsRequired)
	case errors.Is(err, service.ErrTeachersFormatInvalid):
		response.BadRequest(c, 12007, i18n.MsgTeachersFormatInvalid)
	default:
		response.InternalError(c)
	}
}
