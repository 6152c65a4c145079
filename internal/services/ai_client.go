package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yungbote/dayplanner-backend/internal/logger"
	"github.com/yungbote/dayplanner-backend/internal/utils"
)

// AIClient is the text-generation advisor boundary. One blocking request per
// call, bounded by the caller's context; no retries live here.
type AIClient interface {
	Chat(ctx context.Context, messages []AIMessage, opts *AIOptions) (*AICompletion, error)
}

type AIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AIOptions struct {
	Temperature float32
	MaxTokens   int
	JSONMode    bool
}

type AICompletion struct {
	Content string
}

type aiClient struct {
	httpClient *http.Client
	log        *logger.Logger
	apiKey     string
	baseURL    string
	chatModel  string
}

func NewAIClient(baseLog *logger.Logger) (AIClient, error) {
	serviceLog := baseLog.With("service", "AIClient")
	apiKey := utils.GetEnv("OPENAI_API_KEY", "", baseLog)
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	baseURL := utils.GetEnv("OPENAI_BASE_URL", "https://api.openai.com/v1", baseLog)
	chatModel := utils.GetEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini", baseLog)
	return &aiClient{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		log:       serviceLog,
		apiKey:    apiKey,
		baseURL:   baseURL,
		chatModel: chatModel,
	}, nil
}

type chatCompletionRequest struct {
	Model          string      `json:"model"`
	Messages       []AIMessage `json:"messages"`
	Temperature    float32     `json:"temperature,omitempty"`
	MaxTokens      int         `json:"max_tokens,omitempty"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *aiClient) Chat(ctx context.Context, messages []AIMessage, opts *AIOptions) (*AICompletion, error) {
	reqBody := chatCompletionRequest{
		Model:    c.chatModel,
		Messages: messages,
	}
	if opts != nil {
		reqBody.Temperature = opts.Temperature
		reqBody.MaxTokens = opts.MaxTokens
		if opts.JSONMode {
			reqBody.ResponseFormat = &struct {
				Type string `json:"type"`
			}{Type: "json_object"}
		}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read chat response: %w", err)
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode chat response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := "unknown error"
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return nil, fmt.Errorf("chat API status %d: %s", resp.StatusCode, msg)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("chat API returned no choices")
	}

	return &AICompletion{Content: parsed.Choices[0].Message.Content}, nil
}
