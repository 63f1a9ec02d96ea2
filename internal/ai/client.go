package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

const (
	chatSystemPrompt = "You are CrypTex, a concise cryptocurrency trading assistant. " +
		"Answer questions about markets, portfolio strategy and the CrypTex app. " +
		"Never give financial advice presented as a guarantee."

	analysisSystemPrompt = "You are a cryptocurrency market analyst. Given a symbol and " +
		"recent market data, produce a short technical analysis covering trend, support, " +
		"resistance and momentum."

	signalSystemPrompt = "You are a trading signal generator. Reply with a JSON object of the form " +
		`{"action":"buy|sell|hold","confidence":0-100,"entry":number,"stopLoss":number,"takeProfit":number,"reason":"..."}` +
		" followed by nothing else."
)

// Config carries the upstream completion API settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

// Client relays prompts to a hosted chat-completion API. Structurally the
// same pattern as the payment gateway client: attach a bearer token, one
// POST, relay the reply.
type Client struct {
	cfg  Config
	http *resty.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: resty.New().SetBaseURL(cfg.BaseURL),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// complete wraps the caller's message in the fixed system prompt, with the
// optional serialized context prepended as an extra user turn.
func (c *Client) complete(ctx context.Context, system, message string, extra map[string]any) (string, error) {
	msgs := []chatMessage{{Role: "system", Content: system}}

	if len(extra) > 0 {
		b, err := json.Marshal(extra)
		if err == nil {
			msgs = append(msgs, chatMessage{Role: "user", Content: "Context: " + string(b)})
		}
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: message})

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(completionRequest{Model: c.cfg.Model, Messages: msgs}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}

	var out completionResponse
	_ = json.Unmarshal(resp.Body(), &out)

	if resp.StatusCode() != http.StatusOK {
		if out.Error.Message != "" {
			return "", fmt.Errorf("completion API error: %s", out.Error.Message)
		}
		return "", fmt.Errorf("completion API error: status %d", resp.StatusCode())
	}

	if len(out.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}

	return out.Choices[0].Message.Content, nil
}

// Chat relays a free-form user message.
func (c *Client) Chat(ctx context.Context, message string, extra map[string]any) (string, error) {
	return c.complete(ctx, chatSystemPrompt, message, extra)
}

// Analyze requests a market analysis for a symbol.
func (c *Client) Analyze(ctx context.Context, symbol, timeframe string, data map[string]any) (string, error) {
	prompt := fmt.Sprintf("Analyze %s", symbol)
	if timeframe != "" {
		prompt += " on the " + timeframe + " timeframe"
	}
	return c.complete(ctx, analysisSystemPrompt, prompt, data)
}

// GenerateSignal requests a trading signal and extracts the embedded JSON
// object from the reply. Extraction is best-effort; a reply without a
// parseable object comes back as raw text, not as an error.
func (c *Client) GenerateSignal(ctx context.Context, symbol string, price float64, indicators map[string]any) (Extraction, error) {
	prompt := fmt.Sprintf("Generate a trading signal for %s", symbol)
	if price > 0 {
		prompt += fmt.Sprintf(" at current price %g", price)
	}

	reply, err := c.complete(ctx, signalSystemPrompt, prompt, indicators)
	if err != nil {
		return Extraction{}, err
	}

	return ExtractJSON(reply), nil
}
