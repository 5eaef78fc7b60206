package llmHandlers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

// GenaiGeminiClient implements Client for Gemini via Google AI API
type GenaiGeminiClient struct {
	client  *genai.Client
	modelID string

	Temperature float32
	MaxTokens   int32
}

func NewGenaiGeminiClient(ctx context.Context) (*GenaiGeminiClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	modelID := os.Getenv("GEMINI_MODEL_ID")

	if apiKey == "" || modelID == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY and GEMINI_MODEL_ID must be set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})

	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	return &GenaiGeminiClient{
		client:      client,
		modelID:     modelID,
		Temperature: 0.2,
		MaxTokens:   1024,
	}, nil
}

// convertMessagesToGenaiContent converts our Message format to genai.Content
func convertMessagesToGenaiContent(messages []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))

	for _, m := range messages {
		// Map role: "assistant" -> "model", everything else -> "user"
		roleOut := "user"
		if m.Role == RoleAssistant {
			roleOut = "model"
		}

		textPart := &genai.Part{Text: m.Content}
		contents = append(contents, &genai.Content{
			Role:  roleOut,
			Parts: []*genai.Part{textPart},
		})
	}

	return contents
}

func (v *GenaiGeminiClient) buildConfig(systemMessage string) *genai.GenerateContentConfig {
	genConfig := &genai.GenerateContentConfig{
		Temperature:     &v.Temperature,
		MaxOutputTokens: v.MaxTokens,
	}

	if systemMessage != "" {
		systemPart := &genai.Part{Text: systemMessage}
		genConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{systemPart},
		}
	}

	return genConfig
}

func responseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if part.Text != "" {
					sb.WriteString(part.Text)
				}
			}
		}
	}
	return sb.String()
}

func (v *GenaiGeminiClient) Chat(ctx context.Context, systemMessage string, messages []Message) (string, error) {
	contents := convertMessagesToGenaiContent(messages)

	resp, err := v.client.Models.GenerateContent(ctx, v.modelID, contents, v.buildConfig(systemMessage))
	if err != nil {
		return "", fmt.Errorf("gemini GenerateContent: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return responseText(resp), nil
}

func (v *GenaiGeminiClient) ChatStream(ctx context.Context, systemMessage string, messages []Message, fn StreamFunc) (string, error) {
	contents := convertMessagesToGenaiContent(messages)

	var sb strings.Builder
	for resp, err := range v.client.Models.GenerateContentStream(ctx, v.modelID, contents, v.buildConfig(systemMessage)) {
		if err != nil {
			return "", fmt.Errorf("gemini GenerateContentStream: %w", err)
		}
		delta := responseText(resp)
		if delta == "" {
			continue
		}
		if err := fn(ctx, []byte(delta)); err != nil {
			return "", err
		}
		sb.WriteString(delta)
	}

	return sb.String(), nil
}
