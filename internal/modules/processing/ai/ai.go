// Package ai turns study material into summaries, flashcards and MCQs through a
// configured LLM provider.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	appcfg "github.com/ayushmaan100/Smart-content-finder/internal/config"
	"github.com/ayushmaan100/Smart-content-finder/internal/pkg/metrics"
)

type completeFunc func(ctx context.Context, provider *appcfg.AIProvider, prompt string, maxTokens int) (string, error)

// Service issues one synchronous completion per call.
type Service struct {
	cfg     appcfg.AIConfig
	metrics *metrics.Metrics
	log     *zap.Logger
	call    completeFunc
}

func NewService(cfg appcfg.AIConfig, m *metrics.Metrics, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{cfg: cfg, metrics: m, log: log, call: complete}
}

// Summarize produces the study summary for extracted document or transcript text.
func (s *Service) Summarize(ctx context.Context, text string) (string, error) {
	out, err := s.run(ctx, TaskSummary, s.cfg.SummaryModel, text)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Flashcards generates ten Q/A cards from stored summary text.
func (s *Service) Flashcards(ctx context.Context, text string) (*FlashcardSet, error) {
	out, err := s.run(ctx, TaskFlashcards, s.cfg.StudyModel, text)
	if err != nil {
		return nil, err
	}
	return &FlashcardSet{Raw: out, Cards: ParseFlashcards(out)}, nil
}

// MCQs generates ten multiple-choice questions from stored summary text.
func (s *Service) MCQs(ctx context.Context, text string) (*MCQSet, error) {
	out, err := s.run(ctx, TaskMCQs, s.cfg.StudyModel, text)
	if err != nil {
		return nil, err
	}
	return &MCQSet{Raw: out, Questions: ParseMCQs(out)}, nil
}

func (s *Service) run(ctx context.Context, task string, assignment *appcfg.AIModelAssignment, text string) (string, error) {
	provider := selectAIProvider(s.cfg, assignment)
	if provider == nil {
		return "", ErrNoProvider
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	input := truncateText(text, s.cfg.MaxInputChars)
	if len(input) < len(text) {
		s.log.Debug("ai input truncated", zap.String("task", task), zap.Int("max_chars", s.cfg.MaxInputChars))
	}

	start := time.Now()
	out, err := s.call(ctx, provider, buildPrompt(task, input), s.cfg.MaxOutputTokens)
	elapsed := time.Since(start)
	s.metrics.ObserveAI(task, elapsed, err)
	if err != nil {
		s.log.Warn("ai completion failed",
			zap.String("task", task),
			zap.String("provider", provider.ID),
			zap.String("model", provider.DefaultModel),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return "", fmt.Errorf("%s completion: %w", task, err)
	}
	return out, nil
}
