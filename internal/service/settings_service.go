package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/giorgiovilardo/easyorario/internal/dto"
	"github.com/giorgiovilardo/easyorario/internal/llm"
	"github.com/giorgiovilardo/easyorario/pkg/redis"
)

// ── LLM settings business errors ──

var (
	ErrLLMBaseURLRequired  = errors.New("llm base url required")
	ErrLLMAPIKeyRequired   = errors.New("llm api key required")
	ErrLLMNotConfigured    = errors.New("llm endpoint not configured")
	ErrSettingsUnavailable = errors.New("settings storage unavailable")
)

// ConnectivityTester is the slice of the LLM adapter the settings flow needs.
type ConnectivityTester interface {
	TestConnectivity(ctx context.Context, ep llm.Endpoint) error
}

// LLMSettingsStore is the slice of the Redis client the settings flow needs.
type LLMSettingsStore interface {
	GetLLMEndpoint(ctx context.Context, userID string) (*redis.LLMEndpoint, error)
	SaveLLMEndpoint(ctx context.Context, userID string, ep redis.LLMEndpoint) error
}

// SettingsService stores each professor's LLM endpoint configuration.
// Saving probes the endpoint first, so a stored configuration has passed a
// connectivity test at least once.
type SettingsService interface {
	GetLLMSettings(ctx context.Context, userID string) (*dto.LLMSettingsResponse, error)
	UpdateLLMSettings(ctx context.Context, userID string, req *dto.UpdateLLMSettingsRequest) error
	// ResolveLLMEndpoint returns the stored endpoint for adapter calls, or
	// ErrLLMNotConfigured.
	ResolveLLMEndpoint(ctx context.Context, userID string) (llm.Endpoint, error)
}

type settingsService struct {
	store  LLMSettingsStore
	tester ConnectivityTester
	logger *zap.Logger
}

// NewSettingsService creates a SettingsService instance. A nil store leaves
// the service in degraded mode: every operation fails with
// ErrSettingsUnavailable.
func NewSettingsService(store LLMSettingsStore, tester ConnectivityTester, logger *zap.Logger) SettingsService {
	return &settingsService{store: store, tester: tester, logger: logger}
}

func (s *settingsService) GetLLMSettings(ctx context.Context, userID string) (*dto.LLMSettingsResponse, error) {
	if s.store == nil {
		return nil, ErrSettingsUnavailable
	}
	ep, err := s.store.GetLLMEndpoint(ctx, userID)
	if err != nil {
		s.logger.Error("reading llm settings", zap.Error(err))
		return nil, err
	}
	if ep == nil {
		return &dto.LLMSettingsResponse{Configured: false}, nil
	}
	return &dto.LLMSettingsResponse{
		Configured: true,
		BaseURL:    ep.BaseURL,
		ModelID:    ep.ModelID,
	}, nil
}

func (s *settingsService) UpdateLLMSettings(ctx context.Context, userID string, req *dto.UpdateLLMSettingsRequest) error {
	if s.store == nil {
		return ErrSettingsUnavailable
	}

	baseURL := strings.TrimSpace(req.BaseURL)
	if baseURL == "" {
		return ErrLLMBaseURLRequired
	}
	apiKey := strings.TrimSpace(req.APIKey)
	if apiKey == "" {
		return ErrLLMAPIKeyRequired
	}
	modelID := strings.TrimSpace(req.ModelID)

	ep := llm.Endpoint{BaseURL: baseURL, APIKey: apiKey, ModelID: modelID}
	if err := s.tester.TestConnectivity(ctx, ep); err != nil {
		// ConfigError propagates with its kind; the handler maps it to the
		// Italian message.
		return err
	}

	if err := s.store.SaveLLMEndpoint(ctx, userID, redis.LLMEndpoint{
		BaseURL: baseURL,
		APIKey:  apiKey,
		ModelID: modelID,
	}); err != nil {
		s.logger.Error("saving llm settings", zap.Error(err))
		return err
	}

	s.logger.Info("llm settings saved", zap.String("user_id", userID))
	return nil
}

func (s *settingsService) ResolveLLMEndpoint(ctx context.Context, userID string) (llm.Endpoint, error) {
	if s.store == nil {
		return llm.Endpoint{}, ErrSettingsUnavailable
	}
	ep, err := s.store.GetLLMEndpoint(ctx, userID)
	if err != nil {
		s.logger.Error("reading llm settings", zap.Error(err))
		return llm.Endpoint{}, err
	}
	if ep == nil || ep.BaseURL == "" || ep.APIKey == "" {
		return llm.Endpoint{}, ErrLLMNotConfigured
	}
	return llm.Endpoint{BaseURL: ep.BaseURL, APIKey: ep.APIKey, ModelID: ep.ModelID}, nil
}
