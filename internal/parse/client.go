package parse

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

	"hand-forge/internal/config"
)

var (
	ErrNoAPIKey   = errors.New("parser_api_key_missing")
	ErrBadPayload = errors.New("parser_bad_payload")
)

const systemPrompt = `You extract poker hands from free text. Reply with a single JSON object:
{"players":[{"position":"...","cards":"AsKd"}],
 "preflop":{"actions":[{"position":"...","action":"fold|check|call|bet|raise","amount":"12"}]},
 "flop":{"cards":"7h8d9s","actions":[...]},
 "turn":{"cards":"2c","actions":[...]},
 "river":{"cards":"Qd","actions":[...]}}
Use standard position names (UTG, MP, HJ, CO, BTN, SB, BB). Omit anything the text does not state.`

// Client is the boundary adapter for the external text-understanding
// collaborator: one OpenAI-style chat completion per import, no retries.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	httpc   *http.Client
}

func NewClient(cfg config.ParserConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		model:   cfg.Model,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Extract sends the hand description and decodes the structured reply.
// Failure leaves no trace on the caller's engine state.
func (c *Client) Extract(ctx context.Context, text string) (*Extraction, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	payload := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": text},
		},
		"response_format": map[string]any{"type": "json_object"},
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("parser http %d: %s", resp.StatusCode, truncate(string(raw), 400))
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &completion); err != nil {
		return nil, ErrBadPayload
	}
	if len(completion.Choices) == 0 {
		return nil, ErrBadPayload
	}
	return DecodeExtraction(completion.Choices[0].Message.Content)
}

// DecodeExtraction parses the collaborator's reply, trimming any prose
// wrapped around the JSON object.
func DecodeExtraction(content string) (*Extraction, error) {
	text := strings.TrimSpace(content)
	var ex Extraction
	if err := json.Unmarshal([]byte(text), &ex); err != nil {
		cleaned := innerJSONObject(text)
		if cleaned == "" {
			return nil, ErrBadPayload
		}
		if err := json.Unmarshal([]byte(cleaned), &ex); err != nil {
			return nil, ErrBadPayload
		}
	}
	return &ex, nil
}

func innerJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return ""
	}
	return strings.TrimSpace(s[start : end+1])
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
