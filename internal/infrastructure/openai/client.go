package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/lenscart/backend/internal/domain"
	"golang.org/x/time/rate"
)

// keywordInstruction tells the model to answer with structured output only.
// The model still wraps it inside a conversational message body, so the
// content field has to be decoded a second time.
const keywordInstruction = `Return JSON only: {"keywords":[]}`

// Client handles communication with an OpenAI-compatible vision API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	rateLimiter *rate.Limiter
	debug       bool
}

// Options tunes the vision request. Zero values fall back to the
// defaults the service was designed against.
type Options struct {
	Model         string
	Temperature   float64
	MaxTokens     int
	Timeout       time.Duration
	RatePerMinute int
}

// NewClient creates a new vision API client. An empty apiKey is allowed;
// every call will then fail with ErrVisionNotConfigured and the caller
// falls back to catalog keywords.
func NewClient(apiKey, baseURL string, opts Options) *Client {
	model := opts.Model
	if model == "" {
		model = "gpt-4.1-mini"
	}
	temperature := opts.Temperature
	if temperature <= 0 {
		temperature = 0.1
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 120
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	perMinute := opts.RatePerMinute
	if perMinute <= 0 {
		perMinute = 30
	}

	limiter := rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		apiKey:      apiKey,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		rateLimiter: limiter,
	}
}

// SetDebug enables debug logging of request/response details
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// chatRequest is the chat-completions payload
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

// chatResponse is the subset of the chat-completions response we read
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// keywordPayload is the structured output embedded in the message content
type keywordPayload struct {
	Keywords []string `json:"keywords"`
}

// ExtractKeywords sends the image to the vision API and returns the
// lowercase keywords it identified. One attempt, no retries: every failure
// here degrades to the fallback vocabulary, so retrying would only delay a
// request that already has a second answer.
func (c *Client) ExtractKeywords(ctx context.Context, image []byte) ([]string, error) {
	if c.apiKey == "" {
		return nil, domain.ErrVisionNotConfigured
	}
	if len(image) == 0 {
		return nil, domain.ErrInvalidImage
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(image)
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: keywordInstruction},
				{Type: "image_url", ImageURL: &imageURL{
					URL: "data:image/jpeg;base64," + encoded,
				}},
			},
		}},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrVisionAPIFailure, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrVisionAPIFailure, err)
	}

	if resp.StatusCode != http.StatusOK {
		if c.debug {
			log.Printf("[VISION] API error - Status: %d, Body: %s", resp.StatusCode, string(respBody))
		}
		return nil, fmt.Errorf("%w: status %d", domain.ErrVisionAPIFailure, resp.StatusCode)
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrVisionAPIFailure, err)
	}
	if len(chat.Choices) == 0 {
		return nil, domain.ErrNoKeywords
	}

	// Second decode: the structured output is a JSON string inside the
	// conversational message content.
	var kp keywordPayload
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &kp); err != nil {
		if c.debug {
			log.Printf("[VISION] non-JSON message content: %q", chat.Choices[0].Message.Content)
		}
		return nil, fmt.Errorf("%w: decoding message content: %v", domain.ErrNoKeywords, err)
	}
	if len(kp.Keywords) == 0 {
		return nil, domain.ErrNoKeywords
	}

	keywords := make([]string, 0, len(kp.Keywords))
	for _, kw := range kp.Keywords {
		keywords = append(keywords, strings.ToLower(kw))
	}

	if c.debug {
		log.Printf("[VISION] extracted %d keywords: %v", len(keywords), keywords)
	}

	return keywords, nil
}
