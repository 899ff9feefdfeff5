// Package search orchestrates multi-index statute search: query
// classification, concurrent fan-out to the index gateways, strict term
// filtering, deterministic rescoring, and pagination.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lawdex/lawdex/internal/domain"
)

const (
	maxLimit = 50
	// Each index is asked for more hits than the final page so rescoring can
	// reorder entries across indices without starving the requested page.
	// (offset+limit)*overfetchFactor is always >= limit+offset.
	overfetchFactor = 2

	defaultIndexTimeout = 5 * time.Second
)

// Gateway is the consumer contract for one-index search.
type Gateway interface {
	Indices(scope domain.Scope) []string
	Search(ctx context.Context, indexName string, q domain.NormalizedQuery, limit int) ([]domain.RawHit, error)
}

// Result is one orchestrated search outcome. Count is the total number of
// surviving rescored candidates, not the page size.
type Result struct {
	Query  domain.NormalizedQuery
	Hits   []domain.ScoredHit
	Count  int
	Limit  int
	Offset int
}

// Service is the search orchestrator.
type Service struct {
	gateway      Gateway
	indexTimeout time.Duration
	logger       *zap.Logger
}

// New creates a search service.
func New(gateway Gateway, logger *zap.Logger) *Service {
	return &Service{
		gateway:      gateway,
		indexTimeout: defaultIndexTimeout,
		logger:       logger,
	}
}

// WithIndexTimeout overrides the per-gateway-call timeout.
func (s *Service) WithIndexTimeout(d time.Duration) *Service {
	if d > 0 {
		s.indexTimeout = d
	}
	return s
}

// Search classifies rawText, fans out to the scope's indices, filters,
// rescores, and returns the [offset, offset+limit) page.
func (s *Service) Search(
	ctx context.Context, rawText string, scope domain.Scope, limit, offset int, strict bool,
) (Result, error) {
	q, err := domain.Classify(rawText)
	if err != nil {
		return Result{}, err
	}

	limit = clamp(limit, 1, maxLimit)
	if offset < 0 {
		offset = 0
	}

	targets := s.gateway.Indices(scope)
	perIndex := (offset + limit) * overfetchFactor

	hits, err := s.fanOut(ctx, targets, q, perIndex)
	if err != nil {
		return Result{}, err
	}

	if strict && q.Kind == domain.KindKeyword {
		hits = filterStrict(hits, q.SearchTerms)
	}

	scored := rescore(hits, q)

	return Result{
		Query:  q,
		Hits:   page(scored, offset, limit),
		Count:  len(scored),
		Limit:  limit,
		Offset: offset,
	}, nil
}

// fanOut issues all gateway calls concurrently, each under its own timeout.
// With multiple targets a single failed index degrades the result instead of
// failing it; when every target fails the request fails with
// ErrAllIndicesUnavailable. A single-target failure always propagates.
func (s *Service) fanOut(
	ctx context.Context, targets []string, q domain.NormalizedQuery, perIndex int,
) ([]domain.RawHit, error) {
	type outcome struct {
		hits []domain.RawHit
		err  error
	}

	outcomes := make([]outcome, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	for i, indexName := range targets {
		i, indexName := i, indexName
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, s.indexTimeout)
			defer cancel()

			hits, err := s.gateway.Search(callCtx, indexName, q, perIndex)
			outcomes[i] = outcome{hits: hits, err: err}
			// Errors are collected per slot; a sibling call must not be
			// cancelled by one failed index.
			return nil
		})
	}
	_ = g.Wait()

	var merged []domain.RawHit
	var failures int
	var lastErr error

	for i, out := range outcomes {
		if out.err != nil {
			failures++
			lastErr = out.err
			s.logger.Warn("index search failed",
				zap.String("index", targets[i]),
				zap.Error(out.err),
			)
			continue
		}
		merged = append(merged, out.hits...)
	}

	if failures == len(targets) {
		if len(targets) == 1 {
			return nil, lastErr
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrAllIndicesUnavailable, lastErr)
	}

	return merged, nil
}

// filterStrict enforces AND semantics on top of the engine's OR-like
// matching: a hit survives only if heading+body contains every term,
// case-insensitive.
func filterStrict(hits []domain.RawHit, terms []string) []domain.RawHit {
	if len(terms) == 0 {
		return hits
	}

	kept := hits[:0]
	for _, h := range hits {
		haystack := strings.ToLower(h.Heading + " " + h.Body)
		ok := true
		for _, term := range terms {
			if !strings.Contains(haystack, strings.ToLower(term)) {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, h)
		}
	}
	return kept
}

func page(hits []domain.ScoredHit, offset, limit int) []domain.ScoredHit {
	if offset >= len(hits) {
		return nil
	}
	end := offset + limit
	if end > len(hits) {
		end = len(hits)
	}
	return hits[offset:end]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
