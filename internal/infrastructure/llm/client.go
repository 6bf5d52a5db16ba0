package llm

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/pricelens/backend/internal/domain"
)

const defaultTimeout = 30 * time.Second

// Config holds configuration for the completion client
type Config struct {
	Provider string // deepseek, openai or any OpenAI-compatible name
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// providerDefaults maps a provider to its base URL and default model.
var providerDefaults = map[string]struct{ baseURL, model string }{
	"deepseek": {"https://api.deepseek.com", "deepseek-chat"},
	"openai":   {"https://api.openai.com/v1", "gpt-4o-mini"},
}

// Client implements domain.CompletionService on an OpenAI-compatible
// chat completions API.
type Client struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	log     zerolog.Logger
}

// NewClient creates a completion client. An empty API key is an error; callers
// that run without a completion service pass nil to the agent instead.
func NewClient(cfg Config, log zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: missing api key", domain.ErrCompletionUnavailable)
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	defaults := providerDefaults[provider]

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	switch {
	case cfg.BaseURL != "":
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	case defaults.baseURL != "":
		clientConfig.BaseURL = defaults.baseURL
	}
	clientConfig.HTTPClient = newHTTPClient()

	model := cfg.Model
	if model == "" {
		model = defaults.model
	}
	if model == "" {
		return nil, fmt.Errorf("%w: no model configured for provider %q", domain.ErrCompletionUnavailable, cfg.Provider)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   model,
		timeout: timeout,
		log:     log,
	}, nil
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        20,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}

// Complete sends one chat completion request. The caller's deadline wins when
// it is shorter than the client timeout.
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: req.Temperature,
		Messages:    buildMessages(req),
	}
	if req.ForceJSON {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCompletionUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", domain.ErrCompletionUnavailable)
	}

	c.log.Debug().
		Str("model", c.model).
		Bool("json", req.ForceJSON).
		Int("total_tokens", resp.Usage.TotalTokens).
		Dur("duration", time.Since(start)).
		Msg("completion done")

	return resp.Choices[0].Message.Content, nil
}

// buildMessages orders the system instruction, the history and the user turn.
func buildMessages(req domain.CompletionRequest) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	if req.SystemInstruction != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemInstruction,
		})
	}
	for _, m := range req.History {
		role := openai.ChatMessageRoleUser
		if m.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	// the current turn may already close the history
	if n := len(req.History); n > 0 && req.History[n-1].Role == "user" && req.History[n-1].Content == req.UserContent {
		return messages
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserContent,
	})
	return messages
}
