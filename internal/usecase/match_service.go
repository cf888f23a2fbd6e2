package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/cricket-scores/internal/domain/cricket"
	"github.com/riskibarqy/cricket-scores/internal/platform/logging"
)

// MatchService serves the international match feed. Every call fetches from
// the provider again.
type MatchService struct {
	provider   cricket.Provider
	normalizer *Normalizer
	logger     *logging.Logger
}

func NewMatchService(provider cricket.Provider, normalizer *Normalizer, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	if normalizer == nil {
		normalizer = NewNormalizer(nil, NormalizerConfig{}, logger)
	}

	return &MatchService{
		provider:   provider,
		normalizer: normalizer,
		logger:     logger,
	}
}

// ListCurrentMatches never returns nil. When the provider fails the result is
// empty and the error wraps ErrDependencyUnavailable.
func (s *MatchService) ListCurrentMatches(ctx context.Context) ([]cricket.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListCurrentMatches")
	defer span.End()

	records, err := s.provider.FetchCurrentMatches(context.WithoutCancel(ctx))
	if err != nil {
		return []cricket.Match{}, fmt.Errorf("%w: fetch current matches: %w", ErrDependencyUnavailable, err)
	}

	return s.normalizer.Normalize(ctx, records), nil
}

// RawPayload returns the provider response body untouched.
func (s *MatchService) RawPayload(ctx context.Context) ([]byte, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RawPayload")
	defer span.End()

	raw, err := s.provider.FetchRaw(context.WithoutCancel(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetch raw payload: %w", err)
	}
	return raw, nil
}
