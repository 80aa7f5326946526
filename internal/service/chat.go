package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/roadmap/pkg/logging"
)

const RoadmapSystemPrompt = "Given the specific topic, generate a comprehensive learning roadmap in json format. " +
	"This should include a title for the whole concept, an engaging introduction, a detailed organization of topics and subtopics, " +
	"learning objectives for each, numerous external links tailored to learners' preferences, time-based milestones, " +
	"and optional additional information like tips and project ideas. " +
	"Ensure the roadmap is flexible and diverse to adapt to various learners' needs and goals."

type ChatService struct {
	LLM Generator
}

// Generate forwards prompt to the model and returns its raw text. Provider
// failures are returned unchanged.
func (s *ChatService) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt: %w", ErrMissingField)
	}

	l := logging.FromContext(ctx).With("svc", "chat.generate")
	text, err := s.LLM.Generate(ctx, RoadmapSystemPrompt, prompt)
	if err != nil {
		l.Error("chat_generate_failed", "error", err)
		return "", err
	}
	l.Info("chat_generated", "chars", len(text))
	return text, nil
}
