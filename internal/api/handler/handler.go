package handler

import "github.com/giorgiovilardo/easyorario/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth       *AuthHandler
	Timetable  *TimetableHandler
	Constraint *ConstraintHandler
	Settings   *SettingsHandler
	Export     *ExportHandler
}

// NewHandler wires the handler layer.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Timetable:  NewTimetableHandler(svc.Timetable),
		Constraint: NewConstraintHandler(svc.Constraint, svc.Settings),
		Settings:   NewSettingsHandler(svc.Settings),
		Export:     NewExportHandler(svc.Export),
	}
}
