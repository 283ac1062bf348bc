// Package llm is the sole contact point with the professor-supplied
// OpenAI-compatible endpoint. The client holds no session state: endpoint
// configuration travels with every call.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/giorgiovilardo/easyorario/config"
)

// Endpoint identifies one OpenAI-compatible endpoint.
type Endpoint struct {
	BaseURL string
	APIKey  string
	ModelID string
}

// Client performs the two HTTP operations the core needs: the connectivity
// probe and the constraint translation.
type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds the adapter with the configured per-request timeout.
func NewClient(cfg *config.LLMConfig, logger *zap.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// TestConnectivity probes the endpoint with a list-models call.
// Any failure is a ConfigError.
func (c *Client) TestConnectivity(ctx context.Context, ep Endpoint) error {
	url := strings.TrimRight(ep.BaseURL, "/") + "/models"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &ConfigError{Kind: ConfigConnectionFailed, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+ep.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return &ConfigError{Kind: ConfigTimeout, Err: err}
		}
		return &ConfigError{Kind: ConfigConnectionFailed, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &ConfigError{Kind: ConfigAuthFailed}
	case resp.StatusCode >= 400:
		return &ConfigError{Kind: ConfigConnectionFailed, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	return nil
}

// chat completion wire types, reduced to the fields the adapter reads.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model          string                 `json:"model"`
	Messages       []chatMessage          `json:"messages"`
	ResponseFormat map[string]interface{} `json:"response_format"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// TranslateConstraint sends one natural-language constraint with the
// timetable context and returns the schema-validated structured fact.
//
// Failure taxonomy: network timeout → TranslationError{timeout}; other
// network failure → TranslationError{failed}; HTTP 401/403 →
// ConfigError{auth_failed} (the fail-fast signal); other HTTP ≥ 400 →
// TranslationError{failed}; schema-violating content →
// TranslationError{malformed}.
func (c *Client) TranslateConstraint(ctx context.Context, ep Endpoint, constraintText string, tctx TimetableContext) (map[string]interface{}, error) {
	url := strings.TrimRight(ep.BaseURL, "/") + "/chat/completions"

	body := chatCompletionRequest{
		Model: ep.ModelID,
		Messages: []chatMessage{
			{Role: "system", Content: tctx.systemPrompt()},
			{Role: "user", Content: fmt.Sprintf("Traduci questo vincolo: %q", constraintText)},
		},
		ResponseFormat: responseSchema(tctx.MaxSlots()),
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &TranslationError{Kind: TranslationFailed, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &TranslationError{Kind: TranslationFailed, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+ep.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &TranslationError{Kind: TranslationTimeout, Err: err}
		}
		return nil, &TranslationError{Kind: TranslationFailed, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &ConfigError{Kind: ConfigAuthFailed}
	case resp.StatusCode >= 400:
		return nil, &TranslationError{Kind: TranslationFailed, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TranslationError{Kind: TranslationFailed, Err: err}
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(raw, &completion); err != nil {
		return nil, &TranslationError{Kind: TranslationMalformed, Err: err}
	}
	if len(completion.Choices) == 0 {
		return nil, &TranslationError{Kind: TranslationMalformed, Err: errors.New("empty choices")}
	}

	fact, err := parseFormalConstraint(completion.Choices[0].Message.Content, tctx.MaxSlots())
	if err != nil {
		c.logger.Warn("model returned schema-violating content", zap.Error(err))
		return nil, &TranslationError{Kind: TranslationMalformed, Err: err}
	}

	result, err := fact.asMap()
	if err != nil {
		return nil, &TranslationError{Kind: TranslationMalformed, Err: err}
	}
	return result, nil
}

// isTimeout reports whether err is a deadline or network timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
