package service

import (
	"context"

	"creature-server/internal/ai"
	"creature-server/internal/models"
	"creature-server/internal/prompt"

	"go.uber.org/zap"
)

const (
	storyTemperature = 0.9
	storyMaxTokens   = 600
)

// GenerationService orchestrates the full creature generation pipeline:
// portrait prompt, story, and the two images. It never returns an error;
// every failure degrades to template content or a nil image URL.
type GenerationService struct {
	ai     ai.Client
	logger *zap.Logger
}

func NewGenerationService(aiClient ai.Client, logger *zap.Logger) *GenerationService {
	return &GenerationService{
		ai:     aiClient,
		logger: logger.Named("GenerationService"),
	}
}

// GenerateCreatureStory runs the pipeline. The portrait image depends only
// on trait data, so its request is started first and runs concurrently with
// story generation; the scene image depends on the story text and runs after
// it.
func (s *GenerationService) GenerateCreatureStory(ctx context.Context, details models.CreatureDetails) (result models.StoryResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Generation pipeline panicked, returning fallback story", zap.Any("panic", r))
			result = fallbackStoryResult()
		}
	}()

	safe := prompt.ApplyStoryDefaults(details)

	imagePrompt := prompt.BuildImagePrompt(safe)
	portraitCh := make(chan *string, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("Portrait generation panicked", zap.Any("panic", r))
				portraitCh <- nil
			}
		}()
		portraitCh <- s.generateImage(ctx, imagePrompt)
	}()

	story := s.generateStory(ctx, safe)

	imageURL := <-portraitCh

	sceneImagePrompt := prompt.BuildScenePrompt(story, safe)
	sceneImageURL := s.generateImage(ctx, sceneImagePrompt)

	return models.StoryResult{
		Story:            story,
		ImagePrompt:      imagePrompt,
		ImageURL:         imageURL,
		SceneImagePrompt: sceneImagePrompt,
		SceneImageURL:    sceneImageURL,
	}
}

// generateStory asks the provider for a story and falls back to the
// habitat-keyed template on any failure or empty response.
func (s *GenerationService) generateStory(ctx context.Context, safe models.CreatureDetails) string {
	text, err := s.ai.GenerateText(ctx, prompt.StorySystemPrompt, prompt.StoryRequest(safe), ai.TextParams{
		Temperature: storyTemperature,
		MaxTokens:   storyMaxTokens,
	})
	if err != nil {
		s.logger.Info("Story generation unavailable, using template story",
			zap.String("habitat", safe.Habitat),
			zap.Error(err))
		return prompt.TemplateStory(safe)
	}
	if text == "" {
		s.logger.Warn("Story generation returned empty text, using template story")
		return prompt.TemplateStory(safe)
	}
	return text
}

// generateImage returns the image URL or nil; image failures never surface.
func (s *GenerationService) generateImage(ctx context.Context, imagePrompt string) *string {
	url, err := s.ai.GenerateImage(ctx, imagePrompt)
	if err != nil {
		s.logger.Info("Image generation unavailable", zap.Error(err))
		return nil
	}
	return &url
}

func fallbackStoryResult() models.StoryResult {
	return models.StoryResult{
		Story:            prompt.FallbackStory,
		ImagePrompt:      prompt.FallbackImagePrompt,
		ImageURL:         nil,
		SceneImagePrompt: prompt.FallbackScenePrompt,
		SceneImageURL:    nil,
	}
}
