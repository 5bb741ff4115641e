package service

import (
	"context"
	"encoding/json"

	"creature-server/internal/ai"
	"creature-server/internal/models"
	"creature-server/internal/prompt"

	"go.uber.org/zap"
)

const (
	suggestionTemperature = 0.8
	suggestionMaxTokens   = 800
)

// SuggestionService produces trait suggestion lists for the creature
// builder UI. Provider failures fall back to curated static lists, so
// Suggest never returns an error.
type SuggestionService struct {
	ai     ai.Client
	logger *zap.Logger
}

func NewSuggestionService(aiClient ai.Client, logger *zap.Logger) *SuggestionService {
	return &SuggestionService{
		ai:     aiClient,
		logger: logger.Named("SuggestionService"),
	}
}

// Suggest asks the provider for fresh body part and habitat ideas. If the
// provider is unavailable or returns anything malformed, the extended static
// lists are served instead.
func (s *SuggestionService) Suggest(ctx context.Context) models.SuggestionResult {
	text, err := s.ai.GenerateText(ctx, prompt.SuggestionSystemPrompt, prompt.SuggestionRequest, ai.TextParams{
		Temperature: suggestionTemperature,
		MaxTokens:   suggestionMaxTokens,
		JSONMode:    true,
	})
	if err != nil {
		s.logger.Info("Suggestion generation unavailable, using defaults", zap.Error(err))
		return prompt.ExtendedDefaultSuggestions()
	}

	var parsed models.SuggestionResult
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		s.logger.Warn("Suggestion response is not valid JSON, using defaults", zap.Error(err))
		return prompt.DefaultSuggestions()
	}
	if len(parsed.BodyParts) == 0 || len(parsed.Habitats) == 0 {
		s.logger.Warn("Suggestion response is missing lists, using defaults",
			zap.Int("bodyParts", len(parsed.BodyParts)),
			zap.Int("habitats", len(parsed.Habitats)))
		return prompt.DefaultSuggestions()
	}
	return parsed
}
