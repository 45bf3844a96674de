package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"expensereport/internal/logging"
	"expensereport/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiExtractor implements Extractor using the Google Gemini API.
type GeminiExtractor struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	logger  logging.Logger
	timeout time.Duration
}

// NewGeminiExtractor creates a GeminiExtractor. apiKey must be non-empty;
// modelName defaults to gemini-1.5-flash when blank.
func NewGeminiExtractor(ctx context.Context, apiKey, modelName string, timeout time.Duration, logger logging.Logger) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key not set")
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiExtractor{
		client:  client,
		model:   client.GenerativeModel(modelName),
		logger:  logger,
		timeout: timeout,
	}, nil
}

// Close releases the underlying API client.
func (g *GeminiExtractor) Close() error {
	return g.client.Close()
}

// Extract sends the receipt text to the model and decodes the JSON field
// bag from its reply.
func (g *GeminiExtractor) Extract(ctx context.Context, receiptText string) (models.RawExpense, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := buildExtractionPrompt(receiptText)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return models.RawExpense{}, fmt.Errorf("gemini extraction request failed: %w", err)
	}

	reply, err := firstTextPart(resp)
	if err != nil {
		return models.RawExpense{}, err
	}

	raw, err := decodeRawExpense(reply)
	if err != nil {
		return models.RawExpense{}, err
	}

	g.logger.WithFields(
		logging.Field{Key: "merchant", Value: raw.MerchantOrTitle()},
		logging.Field{Key: logging.FieldCode, Value: raw.Code()},
	).Debug("Extracted expense fields from receipt")

	return raw, nil
}

func firstTextPart(resp *genai.GenerateContentResponse) (string, error) {
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				return string(text), nil
			}
		}
	}
	return "", fmt.Errorf("gemini response contained no text part")
}

// decodeRawExpense parses the model reply, tolerating markdown code fences
// the model sometimes adds despite instructions.
func decodeRawExpense(reply string) (models.RawExpense, error) {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")
	reply = strings.TrimSpace(reply)

	var raw models.RawExpense
	if err := json.Unmarshal([]byte(reply), &raw); err != nil {
		return models.RawExpense{}, fmt.Errorf("failed to decode extraction reply: %w", err)
	}
	return raw, nil
}
