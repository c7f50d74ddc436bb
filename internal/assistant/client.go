// Package assistant forwards operator questions plus a snapshot of the
// queues to an OpenAI-compatible chat-completion endpoint and returns the
// generated guidance. Calls are bounded by a fixed timeout and never
// retried; every failure mode maps to one user-facing error.
package assistant

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
)

const (
	// RequestTimeout bounds one completion call end to end.
	RequestTimeout = 30 * time.Second

	// SnapshotLimit caps how many rows of a queue go into the prompt context.
	SnapshotLimit = 30

	systemInstruction = "You are an operations analyst. " +
		"Give concise, actionable guidance in bullet points."
)

// User-facing failure modes. Each call fails with exactly one of these (or
// a wrapped transport/decode error) and is never retried automatically.
var (
	ErrMissingAPIKey   = errors.New("assistant API key is not set; configure OPENROUTER_API_KEY and restart")
	ErrPaymentRequired = errors.New("assistant endpoint returned HTTP 402 (payment required); add credits to the account")
	ErrTimeout         = errors.New("assistant request timed out")
	ErrEmptyReply      = errors.New("assistant returned an empty response")
)

// StatusError reports a non-2xx response other than 402.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("assistant endpoint error HTTP %d: %s", e.Code, e.Body)
}

// Client talks to one chat-completion endpoint.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	httpc   *http.Client
}

// NewClient builds a client for the given endpoint. baseURL is the API root
// (e.g. https://openrouter.ai/api/v1); trailing slashes are trimmed.
func NewClient(apiKey, model, baseURL string) *Client {
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		model:   model,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpc:   &http.Client{Timeout: RequestTimeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ExplainQueue asks the model one question about the serialized queue
// snapshot and returns the generated text.
func (c *Client) ExplainQueue(ctx context.Context, question, contextBlock string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: fmt.Sprintf("Question:\n%s\n\nContext:\n%s", question, contextBlock)},
		},
		Temperature: 0.4,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	// OpenRouter requires a referer and application title on every call.
	req.Header.Set("HTTP-Referer", "http://localhost")
	req.Header.Set("X-Title", "Ops Command Center")

	resp, err := c.httpc.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("assistant request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusPaymentRequired {
		return "", ErrPaymentRequired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(excerpt))}
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode assistant response: %w", err)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", ErrEmptyReply
	}
	return out.Choices[0].Message.Content, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}

// ContextBlock serializes up to SnapshotLimit rows of one queue as a labeled
// JSON-lines section for the prompt.
func ContextBlock[T any](label string, rows []T) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== %s (%d rows", label, len(rows))
	if len(rows) > SnapshotLimit {
		fmt.Fprintf(&b, ", first %d shown", SnapshotLimit)
		rows = rows[:SnapshotLimit]
	}
	b.WriteString(") ===\n")
	for _, row := range rows {
		j, err := json.Marshal(row)
		if err != nil {
			continue
		}
		b.Write(j)
		b.WriteByte('\n')
	}
	return b.String()
}
