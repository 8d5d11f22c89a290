// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quote-image-generator/internal/domain"
	"github.com/jsamuelsen/quote-image-generator/internal/ports"
)

// Render outcomes reported to Metrics.
const (
	OutcomeRendered   = "rendered"
	OutcomeBadRequest = "bad_request"
	OutcomeNotFound   = "not_found"
	OutcomeFailed     = "failed"
)

// Metrics receives counters from the quote use cases.
type Metrics interface {
	EntryCreated()
	ImageRendered(outcome string, elapsed time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) EntryCreated() {}
func (noopMetrics) ImageRendered(string, time.Duration) {}

// QuoteService orchestrates the quote use cases: accepting a submission and
// rendering a stored entry as an image.
// It depends on port interfaces, not concrete implementations.
type QuoteService struct {
	store    ports.QuoteStore
	fonts    ports.FontSource
	renderer ports.ImageRenderer
	executor *Executor
	metrics  Metrics
	logger   *slog.Logger
}

// QuoteServiceConfig contains the dependencies of the quote service.
// Store, Fonts and Renderer are required.
type QuoteServiceConfig struct {
	Store    ports.QuoteStore
	Fonts    ports.FontSource
	Renderer ports.ImageRenderer
	Metrics  Metrics
	Logger   *slog.Logger
}

// NewQuoteService creates a new quote service with the provided dependencies.
// It panics when a required dependency is missing.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Store == nil {
		panic("app: QuoteServiceConfig.Store is required")
	}

	if cfg.Fonts == nil {
		panic("app: QuoteServiceConfig.Fonts is required")
	}

	if cfg.Renderer == nil {
		panic("app: QuoteServiceConfig.Renderer is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &QuoteService{
		store:    cfg.Store,
		fonts:    cfg.Fonts,
		renderer: cfg.Renderer,
		executor: NewExecutor(logger),
		metrics:  metrics,
		logger:   logger,
	}
}

// CreateQuote validates a submission and persists it.
//
// A rejected submission returns a *domain.ValidationError whose message is
// meant for the submitter. Any persistence failure is logged and returned as
// a *domain.UnavailableError with no detail about the cause.
func (s *QuoteService) CreateQuote(ctx context.Context, in QuoteInput) (*domain.QuoteEntry, error) {
	op := Operation[QuoteInput, domain.QuoteDraft, *domain.QuoteEntry, *domain.QuoteEntry]{
		Name: "create_quote",
		Validate: func(_ context.Context, in QuoteInput) (domain.QuoteDraft, error) {
			return ValidateQuoteInput(in)
		},
		Perform: s.store.Create,
		Verify: func(_ context.Context, entry *domain.QuoteEntry) error {
			if entry == nil || entry.ID == "" {
				return errors.New("store returned an entry without id")
			}

			return nil
		},
	}

	entry, err := Execute(ctx, s.executor, op, in)
	if err != nil {
		if domain.IsValidation(err) {
			return nil, err
		}

		// Execute has already logged the cause.
		return nil, domain.NewUnavailableError("quote-store", "failed to create quote")
	}

	s.metrics.EntryCreated()
	s.logger.InfoContext(ctx, "quote created",
		slog.String("quote_id", entry.ID),
		slog.Bool("has_author", entry.HasAuthor()),
	)

	return entry, nil
}

// GetQuote loads a stored entry.
func (s *QuoteService) GetQuote(ctx context.Context, id string) (*domain.QuoteEntry, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", domain.MsgMissingQuoteID)
	}

	return s.store.GetByID(ctx, id)
}

// RenderQuoteImage renders the entry with the given id as an image.
//
// Errors are classified for the caller: a *domain.ValidationError for an
// empty id, a *domain.NotFoundError when no entry matches, and a
// *domain.RenderError for everything else. Causes of render errors are
// logged here and must not be shown to the client.
func (s *QuoteService) RenderQuoteImage(ctx context.Context, id string) ([]byte, error) {
	start := time.Now()

	img, err := s.renderQuoteImage(ctx, id)

	outcome := OutcomeRendered

	switch {
	case err == nil:
	case domain.IsValidation(err):
		outcome = OutcomeBadRequest
	case domain.IsNotFound(err):
		outcome = OutcomeNotFound
	default:
		outcome = OutcomeFailed
		s.logger.ErrorContext(ctx, "failed to render quote image",
			slog.String("quote_id", id),
			slog.Any("error", err),
		)
	}

	s.metrics.ImageRendered(outcome, time.Since(start))

	return img, err
}

func (s *QuoteService) renderQuoteImage(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", domain.MsgMissingQuoteID)
	}

	entry, err := s.store.GetByID(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}

		return nil, domain.NewRenderError("lookup", err)
	}

	regular, bold, err := Both(ctx,
		func(ctx context.Context) ([]byte, error) {
			return s.fonts.Fetch(ctx, domain.FontWeightRegular)
		},
		func(ctx context.Context) ([]byte, error) {
			return s.fonts.Fetch(ctx, domain.FontWeightBold)
		},
	)
	if err != nil {
		return nil, domain.NewRenderError("fonts", err)
	}

	img, err := s.renderer.Render(ctx, entry.Card(), ports.FontSet{Regular: regular, Bold: bold})
	if err != nil {
		return nil, domain.NewRenderError("draw", err)
	}

	return img, nil
}

// ImageContentType is the MIME type of images returned by RenderQuoteImage.
func (s *QuoteService) ImageContentType() string {
	return s.renderer.ContentType()
}
