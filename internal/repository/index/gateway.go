// Package index implements the gateway to the named engine indices. It
// translates normalized queries into engine requests, normalizes schema
// differences between the indices into one hit shape, and retries transient
// failures a bounded number of times. Search is read-only, so retries are
// safe.
package index

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lawdex/lawdex/internal/domain"
	"github.com/lawdex/lawdex/internal/engine"
	"github.com/lawdex/lawdex/internal/metrics"
)

// searcher is the consumer interface for engine search.
type searcher interface {
	Search(ctx context.Context, q *engine.TextQuery) (*engine.SearchResult, error)
}

const (
	defaultRetries = 2
	retryBackoff   = 100 * time.Millisecond
)

// searchable text fields, in the order the provisioning settings weight them.
var textFields = []string{domain.FieldHeading, domain.FieldBody, domain.FieldBodyNgram}

// Gateway searches one or both named indices and normalizes their hits.
type Gateway struct {
	store      searcher
	civilIndex string
	crimIndex  string
	retries    int
}

// New creates an index gateway over the two named indices.
func New(store searcher, civilIndex, criminalIndex string) *Gateway {
	return &Gateway{
		store:      store,
		civilIndex: civilIndex,
		crimIndex:  criminalIndex,
		retries:    defaultRetries,
	}
}

// WithRetries overrides the bounded retry count for transient failures.
func (g *Gateway) WithRetries(n int) *Gateway {
	if n >= 0 {
		g.retries = n
	}
	return g
}

// Indices maps a scope to the set of target index identifiers.
func (g *Gateway) Indices(scope domain.Scope) []string {
	switch scope {
	case domain.ScopeCivil:
		return []string{g.civilIndex}
	case domain.ScopeCriminal:
		return []string{g.crimIndex}
	default:
		return []string{g.civilIndex, g.crimIndex}
	}
}

// Search runs one query against a named index and returns normalized hits in
// the engine's ranking order. The engine's native relevance score is
// propagated unmodified.
func (g *Gateway) Search(
	ctx context.Context, indexName string, q domain.NormalizedQuery, limit int,
) ([]domain.RawHit, error) {
	req := g.buildRequest(indexName, q, limit)

	start := time.Now()
	sr, err := g.searchWithRetry(ctx, req)
	metrics.ObserveEngineSearch(indexName, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	hits := make([]domain.RawHit, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		hit, err := g.normalizeHit(indexName, entry)
		if err != nil {
			return nil, fmt.Errorf("index %s key %s: %w", indexName, entry.Key, err)
		}
		hits = append(hits, hit)
	}

	return hits, nil
}

// buildRequest translates a NormalizedQuery into the engine request. For
// article-number and citation lookups an exact clause is added alongside the
// free-text clause so exact hits are always retrievable; the deterministic
// top-rank guarantee itself lives in the rescorer.
func (g *Gateway) buildRequest(indexName string, q domain.NormalizedQuery, limit int) *engine.TextQuery {
	req := &engine.TextQuery{
		IndexName:  indexName,
		Text:       q.RawText,
		TextFields: textFields,
		Limit:      limit,
	}

	switch q.Kind {
	case domain.KindArticleNo:
		req.Exact = []engine.ExactMatch{
			{Field: domain.FieldArticleNo, Value: q.DetectedArticleNo},
			{Field: domain.FieldArticleSubNo, Value: q.DetectedArticleSubNo},
		}
	case domain.KindCitation:
		req.Exact = []engine.ExactMatch{
			{Field: domain.FieldJoCode, Tag: q.DetectedJoCode},
		}
	case domain.KindKeyword:
		// free-text only
	}

	return req
}

func (g *Gateway) searchWithRetry(ctx context.Context, req *engine.TextQuery) (*engine.SearchResult, error) {
	var lastErr error

	for attempt := 0; attempt <= g.retries; attempt++ {
		if attempt > 0 {
			metrics.EngineSearchRetriesTotal.WithLabelValues(req.IndexName).Inc()
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %s: %w", domain.ErrIndexUnavailable, req.IndexName, ctx.Err())
			case <-time.After(retryBackoff):
			}
		}

		sr, err := g.store.Search(ctx, req)
		if err == nil {
			return sr, nil
		}
		if errors.Is(err, engine.ErrIndexNotFound) {
			// Configuration error: never retried, never an empty result.
			return nil, fmt.Errorf("%w: %s", domain.ErrIndexNotFound, req.IndexName)
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w: %s: %w", domain.ErrIndexUnavailable, req.IndexName, lastErr)
}

// normalizeHit maps engine fields into the common RawHit shape. The civil
// index's documents omit lawCode by historical convention, so it is
// synthesized here; the criminal index's stored value passes through
// unchanged. Dispatch is on index identity so the asymmetry stays visible in
// one place.
func (g *Gateway) normalizeHit(indexName string, entry engine.SearchEntry) (domain.RawHit, error) {
	fields := entry.Fields

	hit := domain.RawHit{
		Index:        indexName,
		ArticleNo:    atoiField(fields[domain.FieldArticleNo]),
		ArticleSubNo: atoiField(fields[domain.FieldArticleSubNo]),
		JoCode:       fields[domain.FieldJoCode],
		Heading:      fields[domain.FieldHeading],
		Body:         fields[domain.FieldBody],
		RankingScore: entry.Score,
	}

	switch indexName {
	case g.civilIndex:
		hit.LawCode = domain.CivilCode
	case g.crimIndex:
		hit.LawCode = fields[domain.FieldLawCode]
	default:
		return domain.RawHit{}, fmt.Errorf("%w: unexpected index %q", domain.ErrMalformedHit, indexName)
	}

	if err := hit.Validate(); err != nil {
		return domain.RawHit{}, err
	}
	return hit, nil
}

func atoiField(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
