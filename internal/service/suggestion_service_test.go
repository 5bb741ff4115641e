package service_test

import (
	"context"
	"testing"

	"creature-server/internal/ai"
	"creature-server/internal/prompt"
	"creature-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestSuggest(t *testing.T) {
	ctx := context.Background()

	t.Run("Parses the provider response", func(t *testing.T) {
		aiMock := new(mockAIClient)
		svc := service.NewSuggestionService(aiMock, zap.NewNop())

		aiMock.On("GenerateText", mock.Anything, prompt.SuggestionSystemPrompt, prompt.SuggestionRequest,
			ai.TextParams{Temperature: 0.8, MaxTokens: 800, JSONMode: true}).
			Return(`{"bodyParts":["Wings","Tail"],"habitats":["Moon Base"]}`, nil).Once()

		got := svc.Suggest(ctx)

		assert.Equal(t, []string{"Wings", "Tail"}, got.BodyParts)
		assert.Equal(t, []string{"Moon Base"}, got.Habitats)
		aiMock.AssertExpectations(t)
	})

	t.Run("Request error serves the extended defaults", func(t *testing.T) {
		aiMock := new(mockAIClient)
		svc := service.NewSuggestionService(aiMock, zap.NewNop())

		aiMock.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", ai.ErrNotConfigured).Once()

		got := svc.Suggest(ctx)

		assert.Equal(t, prompt.ExtendedDefaultSuggestions(), got)
	})

	t.Run("Malformed JSON serves the primary defaults", func(t *testing.T) {
		aiMock := new(mockAIClient)
		svc := service.NewSuggestionService(aiMock, zap.NewNop())

		aiMock.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("sorry, here are some ideas:", nil).Once()

		got := svc.Suggest(ctx)

		assert.Equal(t, prompt.DefaultSuggestions(), got)
	})

	t.Run("Missing lists serve the primary defaults", func(t *testing.T) {
		aiMock := new(mockAIClient)
		svc := service.NewSuggestionService(aiMock, zap.NewNop())

		aiMock.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(`{"bodyParts":[],"habitats":["Moon Base"]}`, nil).Once()

		got := svc.Suggest(ctx)

		assert.Equal(t, prompt.DefaultSuggestions(), got)
	})
}
