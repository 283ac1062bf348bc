package service

import (
	"go.uber.org/zap"

	"github.com/giorgiovilardo/easyorario/config"
	"github.com/giorgiovilardo/easyorario/internal/llm"
	"github.com/giorgiovilardo/easyorario/internal/repository"
	"github.com/giorgiovilardo/easyorario/pkg/jwt"
	"github.com/giorgiovilardo/easyorario/pkg/redis"
)

// Service aggregates every business service.
type Service struct {
	Auth       AuthService
	Timetable  TimetableService
	Constraint ConstraintService
	Settings   SettingsService
	Export     ExportService
}

// NewService wires the service layer.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	llmClient *llm.Client,
	logger *zap.Logger,
) *Service {
	// A nil *redis.Client must stay a nil interface for the degraded-mode
	// checks in the settings service.
	var store LLMSettingsStore
	if rdb != nil {
		store = rdb
	}

	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Timetable:  NewTimetableService(repo, logger),
		Constraint: NewConstraintService(repo, llmClient, logger),
		Settings:   NewSettingsService(store, llmClient, logger),
		Export:     NewExportService(repo, logger),
	}
}
