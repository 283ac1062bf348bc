package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/giorgiovilardo/easyorario/internal/dto"
	"github.com/giorgiovilardo/easyorario/internal/llm"
	"github.com/giorgiovilardo/easyorario/pkg/redis"
)

// ── test helpers ──

func setupSettingsService() (SettingsService, *mockSettingsStore, *stubTester) {
	store := newMockSettingsStore()
	tester := &stubTester{}
	return NewSettingsService(store, tester, zap.NewNop()), store, tester
}

func validSettingsRequest() *dto.UpdateLLMSettingsRequest {
	return &dto.UpdateLLMSettingsRequest{
		BaseURL: "https://api.example.com/v1",
		APIKey:  "sk-test",
		ModelID: "gpt-test",
	}
}

// ── UpdateLLMSettings ──

func TestSettingsService_Update_ProbesBeforeSaving(t *testing.T) {
	svc, store, tester := setupSettingsService()

	if err := svc.UpdateLLMSettings(context.Background(), "user-1", validSettingsRequest()); err != nil {
		t.Fatalf("UpdateLLMSettings should succeed: %v", err)
	}
	if tester.calls != 1 {
		t.Errorf("the endpoint must be probed exactly once, got %d", tester.calls)
	}
	saved, ok := store.endpoints["user-1"]
	if !ok {
		t.Fatal("endpoint should be stored")
	}
	if saved.BaseURL != "https://api.example.com/v1" || saved.APIKey != "sk-test" {
		t.Errorf("unexpected stored endpoint: %+v", saved)
	}
}

func TestSettingsService_Update_FailedProbeNotSaved(t *testing.T) {
	svc, store, tester := setupSettingsService()
	tester.err = &llm.ConfigError{Kind: llm.ConfigAuthFailed}

	err := svc.UpdateLLMSettings(context.Background(), "user-1", validSettingsRequest())
	var cfgErr *llm.ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Kind != llm.ConfigAuthFailed {
		t.Errorf("want ConfigError auth_failed, got %v", err)
	}
	if _, ok := store.endpoints["user-1"]; ok {
		t.Error("a failed probe must not store the endpoint")
	}
}

func TestSettingsService_Update_Validation(t *testing.T) {
	svc, _, tester := setupSettingsService()

	err := svc.UpdateLLMSettings(context.Background(), "user-1", &dto.UpdateLLMSettingsRequest{BaseURL: " ", APIKey: "sk-test"})
	if !errors.Is(err, ErrLLMBaseURLRequired) {
		t.Errorf("want ErrLLMBaseURLRequired, got %v", err)
	}
	err = svc.UpdateLLMSettings(context.Background(), "user-1", &dto.UpdateLLMSettingsRequest{BaseURL: "https://api.example.com", APIKey: ""})
	if !errors.Is(err, ErrLLMAPIKeyRequired) {
		t.Errorf("want ErrLLMAPIKeyRequired, got %v", err)
	}
	if tester.calls != 0 {
		t.Errorf("invalid input must not reach the probe, got %d calls", tester.calls)
	}
}

// ── GetLLMSettings ──

func TestSettingsService_Get_NeverEchoesAPIKey(t *testing.T) {
	svc, store, _ := setupSettingsService()
	store.endpoints["user-1"] = redis.LLMEndpoint{
		BaseURL: "https://api.example.com/v1",
		APIKey:  "sk-test",
		ModelID: "gpt-test",
	}

	result, err := svc.GetLLMSettings(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetLLMSettings should succeed: %v", err)
	}
	if !result.Configured {
		t.Error("endpoint should report as configured")
	}
	if result.BaseURL != "https://api.example.com/v1" || result.ModelID != "gpt-test" {
		t.Errorf("unexpected settings: %+v", result)
	}
}

func TestSettingsService_Get_Unconfigured(t *testing.T) {
	svc, _, _ := setupSettingsService()

	result, err := svc.GetLLMSettings(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetLLMSettings should succeed: %v", err)
	}
	if result.Configured {
		t.Error("missing endpoint should report as unconfigured")
	}
}

// ── ResolveLLMEndpoint ──

func TestSettingsService_Resolve(t *testing.T) {
	svc, store, _ := setupSettingsService()

	_, err := svc.ResolveLLMEndpoint(context.Background(), "user-1")
	if !errors.Is(err, ErrLLMNotConfigured) {
		t.Errorf("want ErrLLMNotConfigured, got %v", err)
	}

	store.endpoints["user-1"] = redis.LLMEndpoint{BaseURL: "https://api.example.com/v1", APIKey: "sk-test"}
	ep, err := svc.ResolveLLMEndpoint(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ResolveLLMEndpoint should succeed: %v", err)
	}
	if ep.BaseURL != "https://api.example.com/v1" || ep.APIKey != "sk-test" {
		t.Errorf("unexpected endpoint: %+v", ep)
	}
}

// ── degraded mode ──

func TestSettingsService_NilStore(t *testing.T) {
	svc := NewSettingsService(nil, &stubTester{}, zap.NewNop())

	if _, err := svc.GetLLMSettings(context.Background(), "user-1"); !errors.Is(err, ErrSettingsUnavailable) {
		t.Errorf("Get: want ErrSettingsUnavailable, got %v", err)
	}
	if err := svc.UpdateLLMSettings(context.Background(), "user-1", validSettingsRequest()); !errors.Is(err, ErrSettingsUnavailable) {
		t.Errorf("Update: want ErrSettingsUnavailable, got %v", err)
	}
	if _, err := svc.ResolveLLMEndpoint(context.Background(), "user-1"); !errors.Is(err, ErrSettingsUnavailable) {
		t.Errorf("Resolve: want ErrSettingsUnavailable, got %v", err)
	}
}
