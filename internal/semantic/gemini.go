package semantic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is the model used for similarity judgments.
const DefaultGeminiModel = "gemini-2.0-flash"

// scoreSchema validates the model's reply before it is trusted. The model is
// instructed to return bare JSON but replies are validated anyway.
const scoreSchema = `{
	"type": "object",
	"properties": {
		"score": {"type": "number", "minimum": 0, "maximum": 1}
	},
	"required": ["score"],
	"additionalProperties": false
}`

// GeminiScorer judges semantic similarity with a Gemini model. It is an
// alternative to HTTPScorer for deployments without the similarity sidecar.
type GeminiScorer struct {
	client *genai.Client
	model  string
}

// NewGeminiScorer creates a Gemini-backed scorer. An empty model selects
// DefaultGeminiModel.
func NewGeminiScorer(ctx context.Context, apiKey, model string) (*GeminiScorer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiScorer{client: client, model: model}, nil
}

// Close releases the underlying client.
func (s *GeminiScorer) Close() error {
	return s.client.Close()
}

// Score implements Scorer. Model failures and malformed replies wrap
// ErrUnavailable so callers degrade uniformly.
func (s *GeminiScorer) Score(ctx context.Context, textA, textB string) (float64, error) {
	model := s.client.GenerativeModel(s.model)
	model.SetTemperature(0) // deterministic judgments

	resp, err := model.GenerateContent(ctx, genai.Text(similarityPrompt(textA, textB)))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	text, err := extractText(resp)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	score, err := parseScoreJSON(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return score, nil
}

func similarityPrompt(textA, textB string) string {
	var sb strings.Builder
	sb.WriteString("You are a semantic similarity judge for a recruiting system.\n")
	sb.WriteString("Rate how relevant the resume below is to the job description on a scale from 0.0 (unrelated) to 1.0 (ideal fit).\n\n")
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n")
	sb.WriteString("{\"score\": <number between 0 and 1>}\n")
	sb.WriteString("No markdown, no explanation, no code blocks.\n\n")
	sb.WriteString("Job description:\n\"\"\"\n")
	sb.WriteString(textA)
	sb.WriteString("\n\"\"\"\n\nResume:\n\"\"\"\n")
	sb.WriteString(textB)
	sb.WriteString("\n\"\"\"\n")
	return sb.String()
}

// extractText pulls the text parts out of a Gemini response.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response")
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("no text content in response")
	}
	return sb.String(), nil
}

// parseScoreJSON validates and parses a {"score": x} reply. Markdown code
// fences are stripped first since models add them despite instructions.
func parseScoreJSON(text string) (float64, error) {
	cleaned := cleanJSONBlock(text)

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(scoreSchema),
		gojsonschema.NewStringLoader(cleaned),
	)
	if err != nil {
		return 0, fmt.Errorf("schema validation failed: %v", err)
	}
	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			messages = append(messages, desc.String())
		}
		return 0, fmt.Errorf("invalid score reply: %s", strings.Join(messages, "; "))
	}

	var reply similarityResponse
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		return 0, fmt.Errorf("failed to parse score reply: %v", err)
	}

	return clampScore(reply.Score), nil
}

// cleanJSONBlock removes markdown code fences from a model reply.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	} else {
		return text
	}

	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
