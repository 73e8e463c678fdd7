package categorizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiStrategy asks the Gemini API to pick one of the known category
// names for a transaction. Answers outside the known set are discarded
// so the model can never invent a category.
type GeminiStrategy struct {
	model      string
	apiKey     string
	categories []string

	client *genai.Client
	gen    *genai.GenerativeModel
}

// NewGeminiStrategy creates a Gemini-backed suggestion strategy. The
// client is initialized lazily on first use so that constructing the
// strategy never requires network access.
func NewGeminiStrategy(apiKey, model string, categoryNames []string) *GeminiStrategy {
	return &GeminiStrategy{
		model:      model,
		apiKey:     apiKey,
		categories: categoryNames,
	}
}

// Name returns the name of this strategy for logging and debugging.
func (s *GeminiStrategy) Name() string {
	return "Gemini"
}

func (s *GeminiStrategy) ensureClient(ctx context.Context) error {
	if s.client != nil {
		return nil
	}
	if s.apiKey == "" {
		return fmt.Errorf("gemini api key not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	s.client = client
	s.gen = client.GenerativeModel(s.model)
	return nil
}

// Suggest prompts Gemini with the transaction details and the known
// category names and matches the answer back against that list.
func (s *GeminiStrategy) Suggest(ctx context.Context, req SuggestionRequest) (string, bool, error) {
	if len(s.categories) == 0 {
		return "", false, nil
	}
	if err := s.ensureClient(ctx); err != nil {
		return "", false, err
	}

	prompt := fmt.Sprintf(`Categorize the following financial transaction:
Description: %s
Amount: %s
Date: %s
Notes: %s

Assign this transaction to exactly one of the following categories:
%s

Respond with the category name only.`,
		req.Description, req.Amount, req.Date, req.Notes,
		strings.Join(s.categories, ", "))

	resp, err := s.gen.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", false, fmt.Errorf("gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", false, fmt.Errorf("empty response from Gemini")
	}

	answer := strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	for _, name := range s.categories {
		if strings.EqualFold(answer, name) {
			return name, true, nil
		}
	}

	log.WithField("answer", answer).Debug("Gemini returned an unknown category, discarding")
	return "", false, nil
}
