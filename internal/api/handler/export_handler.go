package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/giorgiovilardo/easyorario/internal/i18n"
	"github.com/giorgiovilardo/easyorario/internal/service"
	"github.com/giorgiovilardo/easyorario/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the constraint export endpoint.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportConstraints handles GET /api/v1/timetables/:id/constraints/export.
func (h *ExportHandler) ExportConstraints(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportConstraints(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTimetableNotFound):
			response.NotFound(c, 12001, i18n.MsgTimetableNotFound)
		case errors.Is(err, service.ErrTimetableForbidden):
			response.Forbidden(c, 10003, i18n.MsgForbidden)
		case errors.Is(err, service.ErrExportNoConstraints):
			response.NotFound(c, 15001, "Nessun vincolo da esportare")
		default:
			response.InternalError(c)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
