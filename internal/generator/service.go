// Package generator orchestrates the idea-to-landing-page pipeline:
// idea string -> streaming completion -> normalization -> content stores.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ReeceHarding/landing-page/internal/llm"
	"github.com/ReeceHarding/landing-page/internal/logger"
	"github.com/ReeceHarding/landing-page/internal/models"
	"github.com/ReeceHarding/landing-page/internal/normalizer"
	"github.com/ReeceHarding/landing-page/internal/store"
)

// ErrNoIdea indicates the submitted idea was empty or whitespace. The
// pipeline short-circuits before any upstream call or store write.
var ErrNoIdea = errors.New("no idea provided")

// CompletionClient is the slice of the llm client the pipeline needs.
type CompletionClient interface {
	Stream(ctx context.Context, messages []llm.Message) (<-chan llm.Fragment, error)
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

// Result carries the identifiers of the two persisted record copies.
type Result struct {
	GeneratedID string `json:"generatedId"`
	DynamicID   string `json:"dynamicId"`
}

// Service runs the generation pipeline.
type Service struct {
	client     CompletionClient
	normalizer *normalizer.Normalizer
	preview    *store.ContentStore
	dynamic    *store.ContentStore
	log        logger.Logger
}

// NewService creates a generation Service.
func NewService(
	client CompletionClient,
	norm *normalizer.Normalizer,
	preview, dynamic *store.ContentStore,
	log logger.Logger,
) *Service {
	return &Service{
		client:     client,
		normalizer: norm,
		preview:    preview,
		dynamic:    dynamic,
		log:        log,
	}
}

// Generate runs the full pipeline for one idea and returns the stored record
// identifiers. Upstream and parse failures degrade to fallback content; only
// store failures propagate as errors.
func (s *Service) Generate(ctx context.Context, idea string, obs Observer) (*Result, error) {
	if obs == nil {
		obs = NopObserver{}
	}

	idea = strings.TrimSpace(idea)
	if idea == "" {
		return nil, ErrNoIdea
	}

	s.log.Info("Generation started", logger.Int("idea_length", len(idea)))
	obs.Log("Generating your landing page content...")

	fragments, err := s.client.Stream(ctx, generationMessages(idea))
	if err != nil {
		// Invalid input is the only error Stream returns; treat it like an
		// empty idea rather than crashing the request
		s.log.Warn("Streaming call rejected", logger.Error(err))
		return nil, ErrNoIdea
	}

	text, sawDone := s.normalizer.Accumulate(fragments, obs.KeepAlive)
	if !sawDone {
		s.log.Warn("Stream ended without completion sentinel",
			logger.Int("text_length", len(text)),
		)
	}
	obs.Log("Content received, assembling your page...")

	page := s.normalizer.Normalize(text)

	obs.Log("Saving your landing page...")
	result, err := s.persist(ctx, page)
	if err != nil {
		obs.Log("Something went wrong saving your page.")
		return nil, err
	}

	s.log.Info("Generation finished",
		logger.String("generated_id", result.GeneratedID),
		logger.String("dynamic_id", result.DynamicID),
	)
	obs.Log("Your landing page is ready.")

	return result, nil
}

// persist writes the record to both store variants.
func (s *Service) persist(ctx context.Context, page models.LandingPage) (*Result, error) {
	previewRec, err := s.preview.Create(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("preview store: %w", err)
	}

	dynamicRec, err := s.dynamic.Create(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("dynamic store: %w", err)
	}

	return &Result{GeneratedID: previewRec.ID, DynamicID: dynamicRec.ID}, nil
}

// SuggestIdea asks the completion API for a single business idea using a
// fixed prompt. This call does not stream.
func (s *Service) SuggestIdea(ctx context.Context) (string, error) {
	idea, err := s.client.Complete(ctx, suggestionMessages())
	if err != nil {
		return "", fmt.Errorf("suggest idea: %w", err)
	}
	return strings.TrimSpace(idea), nil
}
