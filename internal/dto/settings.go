package dto

// ── LLM settings DTOs ──

// UpdateLLMSettingsRequest carries the professor-supplied endpoint data.
type UpdateLLMSettingsRequest struct {
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"`
	ModelID string `json:"model_id"`
}

// LLMSettingsResponse echoes the stored configuration. The API key is never
// returned.
type LLMSettingsResponse struct {
	Configured bool   `json:"configured"`
	BaseURL    string `json:"base_url,omitempty"`
	ModelID    string `json:"model_id,omitempty"`
}
