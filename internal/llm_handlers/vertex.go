package llmHandlers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// VertexAnthropicClient implements Client over the Vertex AI publisher
// endpoint for Claude models (rawPredict / streamRawPredict).
type VertexAnthropicClient struct {
	MaxTokens int
}

func NewVertexAnthropicClient() *VertexAnthropicClient {
	return &VertexAnthropicClient{MaxTokens: 1024}
}

type claudeStreamEvent struct {
	Type  string `json:"type"` // e.g. "content_block_delta", "message_stop"
	Delta *struct {
		Type string `json:"type"` // "text_delta"
		Text string `json:"text"`
	} `json:"delta,omitempty"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content,omitempty"`
}

func vertexHTTPClient(ctx context.Context) (*http.Client, error) {
	// read base64 encoded JSON
	enc := os.Getenv("GCP_SERVICE_ACCOUNT_CREDENTIALS")
	if enc == "" {
		return nil, fmt.Errorf("GCP_SERVICE_ACCOUNT_CREDENTIALS not set")
	}
	saJSON, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return nil, fmt.Errorf("decode sa json: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, saJSON, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return nil, fmt.Errorf("CredentialsFromJSON: %w", err)
	}
	return oauth2.NewClient(ctx, creds.TokenSource), nil
}

func (c *VertexAnthropicClient) buildRequest(ctx context.Context, systemMessage string, messages []Message, stream bool) (*http.Request, error) {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT_ID")
	location := os.Getenv("GOOGLE_CLOUD_VERTEXAI_LOCATION") // e.g. "us-east5"
	modelID := os.Getenv("CLAUDE_VERTEX_MODEL")             // e.g. "claude-sonnet-4-5@20250929"

	action := "rawPredict"
	if stream {
		action = "streamRawPredict"
	}
	url := fmt.Sprintf(
		"https://%s-aiplatform.googleapis.com/v1/projects/%s/locations/%s/publishers/anthropic/models/%s:%s",
		location, projectID, location, modelID, action,
	)

	msgs := make([]map[string]interface{}, len(messages))
	for i, m := range messages {
		msgs[i] = map[string]interface{}{
			"role":    string(m.Role),
			"content": m.Content,
		}
	}

	body := map[string]interface{}{
		"anthropic_version": "vertex-2023-10-16",
		"messages":          msgs,
		"max_tokens":        c.MaxTokens,
		"stream":            stream,
	}
	if systemMessage != "" {
		body["system"] = systemMessage
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if stream {
		req.Header.Set("Accept", "text/event-stream")
	}
	return req, nil
}

func (c *VertexAnthropicClient) Chat(ctx context.Context, systemMessage string, messages []Message) (string, error) {
	httpClient, err := vertexHTTPClient(ctx)
	if err != nil {
		return "", err
	}

	req, err := c.buildRequest(ctx, systemMessage, messages, false)
	if err != nil {
		return "", err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(resp.Body)
		return "", fmt.Errorf("vertex error %d: %s", resp.StatusCode, buf.String())
	}

	var parsed struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	var sb strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

func (c *VertexAnthropicClient) ChatStream(ctx context.Context, systemMessage string, messages []Message, fn StreamFunc) (string, error) {
	httpClient, err := vertexHTTPClient(ctx)
	if err != nil {
		return "", err
	}

	req, err := c.buildRequest(ctx, systemMessage, messages, true)
	if err != nil {
		return "", err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(resp.Body)
		return "", fmt.Errorf("vertex error %d: %s", resp.StatusCode, buf.String())
	}

	var accumulated strings.Builder

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()

		// SSE lines look like: "data: { ... }"
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" || data == "" {
			break
		}

		var ev claudeStreamEvent
		if err := json.Unmarshal([]byte(data), &ev); err != nil {
			// don't hard-fail on a single malformed chunk
			continue
		}

		if ev.Type == "content_block_delta" && ev.Delta != nil &&
			ev.Delta.Type == "text_delta" && ev.Delta.Text != "" {
			if err := fn(ctx, []byte(ev.Delta.Text)); err != nil {
				return "", err
			}
			accumulated.WriteString(ev.Delta.Text)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read stream: %w", err)
	}

	return accumulated.String(), nil
}
