package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/plateful/backend/config"
)

// Gateway error codes. The HTTP layer maps these to status codes; the service
// layer only classifies.
const (
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeUpstreamError   = "UPSTREAM_ERROR"
	ErrCodeHTTPError       = "HTTP_ERROR"
	ErrCodeTimeout         = "TIMEOUT"
	ErrCodeInvalidResponse = "INVALID_RESPONSE"
	ErrCodeStreamError     = "STREAM_ERROR"
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeUnknown         = "UNKNOWN_ERROR"
)

// OpenRouterError is the error type for all gateway failures. Status carries
// the provider's HTTP status where one exists.
type OpenRouterError struct {
	Code    string
	Status  int
	Message string
}

func (e *OpenRouterError) Error() string {
	return fmt.Sprintf("openrouter: %s: %s", e.Code, e.Message)
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenRouterParams are the sampling parameters sent with a completion
// request. Nil fields fall back to the service defaults.
type OpenRouterParams struct {
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
}

// ChatCompletionInput is the input for a plain chat completion.
type ChatCompletionInput struct {
	Messages       []Message
	Model          string
	Params         *OpenRouterParams
	ResponseFormat map[string]interface{}
}

// StructuredResponseInput is the input for a schema-constrained completion.
type StructuredResponseInput struct {
	Messages   []Message
	Model      string
	Params     *OpenRouterParams
	SchemaName string
	Schema     map[string]interface{}
}

// ChatChoice is one completion choice in a provider response.
type ChatChoice struct {
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// ChatCompletionResponse is the decoded provider response.
type ChatCompletionResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
}

type chatCompletionRequest struct {
	Model          string                 `json:"model"`
	Messages       []Message              `json:"messages"`
	Temperature    *float64               `json:"temperature,omitempty"`
	MaxTokens      *int                   `json:"max_tokens,omitempty"`
	TopP           *float64               `json:"top_p,omitempty"`
	Stream         bool                   `json:"stream"`
	ResponseFormat map[string]interface{} `json:"response_format,omitempty"`
}

// OpenRouterService talks to the OpenRouter chat-completions API.
type OpenRouterService struct {
	apiKey  string
	baseURL string
	model   string
	timeout time.Duration
	appURL  string
	appName string
	client  *http.Client
}

// NewOpenRouterService validates the gateway configuration and returns a
// client. Missing credentials fail here, at startup, not on first use.
func NewOpenRouterService(cfg config.OpenRouterConfig) (*OpenRouterService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter: API key is missing")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("openrouter: base URL is missing")
	}
	if cfg.Model == "" {
		return nil, errors.New("openrouter: default model is missing")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OpenRouterService{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		model:   cfg.Model,
		timeout: timeout,
		appURL:  cfg.AppURL,
		appName: cfg.AppName,
		client:  &http.Client{},
	}, nil
}

// CreateChatCompletion sends a non-streaming chat completion request and
// returns the decoded response. The call is bounded by the configured
// timeout.
func (s *OpenRouterService) CreateChatCompletion(ctx context.Context, input ChatCompletionInput) (*ChatCompletionResponse, error) {
	if err := validateMessages(input.Messages); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.do(ctx, s.buildRequest(input, false))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, s.statusError(resp)
	}

	var decoded ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &OpenRouterError{
			Code:    ErrCodeInvalidResponse,
			Status:  http.StatusBadGateway,
			Message: "failed to decode provider response: " + err.Error(),
		}
	}

	if len(decoded.Choices) == 0 {
		return nil, &OpenRouterError{
			Code:    ErrCodeInvalidResponse,
			Status:  http.StatusBadGateway,
			Message: "provider response is missing choices",
		}
	}

	return &decoded, nil
}

// StreamChatCompletion sends a streaming chat completion request and returns
// the raw body for the caller to consume. Streaming and structured response
// modes are mutually exclusive; the caller owns closing the stream and bounds
// it through ctx.
func (s *OpenRouterService) StreamChatCompletion(ctx context.Context, input ChatCompletionInput) (io.ReadCloser, error) {
	if input.ResponseFormat != nil {
		return nil, &OpenRouterError{
			Code:    ErrCodeInvalidInput,
			Status:  http.StatusBadRequest,
			Message: "structured responses do not support streaming",
		}
	}
	if err := validateMessages(input.Messages); err != nil {
		return nil, err
	}

	resp, err := s.do(ctx, s.buildRequest(input, true))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, s.statusError(resp)
	}

	if resp.Body == nil {
		return nil, &OpenRouterError{
			Code:    ErrCodeStreamError,
			Status:  http.StatusBadGateway,
			Message: "stream body is missing",
		}
	}

	return resp.Body, nil
}

// CreateStructuredResponse requests a completion constrained to the given
// JSON schema and returns the parsed object. The schema descriptor is
// advisory; the provider is not trusted to honor it, so the content goes
// through ExtractJSON regardless.
func (s *OpenRouterService) CreateStructuredResponse(ctx context.Context, input StructuredResponseInput) (map[string]interface{}, error) {
	if strings.TrimSpace(input.SchemaName) == "" {
		return nil, &OpenRouterError{
			Code:    ErrCodeInvalidInput,
			Status:  http.StatusBadRequest,
			Message: "schema name is required",
		}
	}
	if len(input.Schema) == 0 {
		return nil, &OpenRouterError{
			Code:    ErrCodeInvalidInput,
			Status:  http.StatusBadRequest,
			Message: "schema object is required",
		}
	}

	responseFormat := map[string]interface{}{
		"type": "json_schema",
		"json_schema": map[string]interface{}{
			"name":   strings.TrimSpace(input.SchemaName),
			"strict": true,
			"schema": input.Schema,
		},
	}

	resp, err := s.CreateChatCompletion(ctx, ChatCompletionInput{
		Messages:       input.Messages,
		Model:          input.Model,
		Params:         input.Params,
		ResponseFormat: responseFormat,
	})
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return nil, &OpenRouterError{
			Code:    ErrCodeInvalidResponse,
			Status:  http.StatusBadGateway,
			Message: "provider response content is missing",
		}
	}

	return ExtractJSON(content)
}

func (s *OpenRouterService) buildRequest(input ChatCompletionInput, stream bool) chatCompletionRequest {
	req := chatCompletionRequest{
		Model:          s.model,
		Messages:       input.Messages,
		Stream:         stream,
		ResponseFormat: input.ResponseFormat,
	}
	if model := strings.TrimSpace(input.Model); model != "" {
		req.Model = model
	}

	// Defaults favor deterministic, bounded output.
	temperature := 0.2
	maxTokens := 800
	topP := 0.9
	req.Temperature = &temperature
	req.MaxTokens = &maxTokens
	req.TopP = &topP

	if input.Params != nil {
		if input.Params.Temperature != nil {
			req.Temperature = input.Params.Temperature
		}
		if input.Params.MaxTokens != nil {
			req.MaxTokens = input.Params.MaxTokens
		}
		if input.Params.TopP != nil {
			req.TopP = input.Params.TopP
		}
	}

	return req
}

func (s *OpenRouterService) do(ctx context.Context, payload chatCompletionRequest) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &OpenRouterError{
			Code:    ErrCodeUnknown,
			Status:  http.StatusInternalServerError,
			Message: "failed to marshal request: " + err.Error(),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, &OpenRouterError{
			Code:    ErrCodeUnknown,
			Status:  http.StatusInternalServerError,
			Message: "failed to create request: " + err.Error(),
		}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	if s.appURL != "" {
		req.Header.Set("HTTP-Referer", s.appURL)
	}
	if s.appName != "" {
		req.Header.Set("X-Title", s.appName)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &OpenRouterError{
				Code:    ErrCodeTimeout,
				Status:  http.StatusGatewayTimeout,
				Message: "provider request timed out",
			}
		}
		return nil, &OpenRouterError{
			Code:    ErrCodeUnknown,
			Status:  http.StatusInternalServerError,
			Message: "provider request failed: " + err.Error(),
		}
	}

	return resp, nil
}

func (s *OpenRouterService) statusError(resp *http.Response) *OpenRouterError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	message := strings.TrimSpace(string(body))
	if message == "" {
		message = "provider request failed"
	}

	return &OpenRouterError{
		Code:    mapStatusToErrorCode(resp.StatusCode),
		Status:  resp.StatusCode,
		Message: message,
	}
}

func mapStatusToErrorCode(status int) string {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrCodeUnauthorized
	case status == http.StatusBadRequest:
		return ErrCodeBadRequest
	case status == http.StatusNotFound:
		return ErrCodeNotFound
	case status == http.StatusTooManyRequests:
		return ErrCodeRateLimited
	case status >= 500:
		return ErrCodeUpstreamError
	default:
		return ErrCodeHTTPError
	}
}

func validateMessages(messages []Message) error {
	if len(messages) == 0 {
		return &OpenRouterError{
			Code:    ErrCodeInvalidInput,
			Status:  http.StatusBadRequest,
			Message: "messages cannot be empty",
		}
	}

	for _, m := range messages {
		if m.Role == "" || strings.TrimSpace(m.Content) == "" {
			return &OpenRouterError{
				Code:    ErrCodeInvalidInput,
				Status:  http.StatusBadRequest,
				Message: "every message must include a non-empty role and content",
			}
		}
	}

	return nil
}
