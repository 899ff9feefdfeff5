package lawdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lawdex/lawdex/internal/domain"
	engineRedis "github.com/lawdex/lawdex/internal/engine/redis"
	articlerepo "github.com/lawdex/lawdex/internal/repository/article"
	indexrepo "github.com/lawdex/lawdex/internal/repository/index"
	articleuc "github.com/lawdex/lawdex/internal/usecase/article"
	healthuc "github.com/lawdex/lawdex/internal/usecase/health"
	searchuc "github.com/lawdex/lawdex/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultCivilIndex       = "civil-articles"
	defaultCriminalIndex    = "criminal-articles"
	defaultSearchRetries    = 2
)

// Scope re-exports the corpus scope values.
type Scope = domain.Scope

const (
	ScopeAll      = domain.ScopeAll
	ScopeCivil    = domain.ScopeCivil
	ScopeCriminal = domain.ScopeCriminal
)

// Internal interfaces for substitution in tests.
type searchUseCase interface {
	Search(ctx context.Context, rawText string, scope domain.Scope, limit, offset int, strict bool) (searchuc.Result, error)
}

type articleUseCase interface {
	Laws(ctx context.Context) ([]domain.Law, error)
	Get(ctx context.Context, lawCode string, articleNo, articleSubNo int) (domain.Article, error)
	GetByJoCode(ctx context.Context, lawCode, joCode string) (domain.Article, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

type closer interface {
	Close()
}

// Client is the lawdex SDK entry point.
type Client struct {
	engine     closer
	articles   *articlerepo.Repo
	searchSvc  searchUseCase
	articleSvc articleUseCase
	healthSvc  healthUseCase
}

// New creates a lawdex Client, connects to the search engine, and opens the
// article store. The provided context bounds the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		civilIndex:    defaultCivilIndex,
		criminalIndex: defaultCriminalIndex,
		searchRetries: defaultSearchRetries,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("lawdex: engine address required (use WithRedis)")
	}
	if cfg.storePath == "" {
		return nil, errors.New("lawdex: store path required (use WithStorePath)")
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	store, err := engineRedis.NewStore(engineRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("lawdex: create engine store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("lawdex: search engine not ready: %w", err)
	}

	articles, err := articlerepo.Open(cfg.storePath)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("lawdex: open article store: %w", err)
	}

	gateway := indexrepo.New(store, cfg.civilIndex, cfg.criminalIndex).
		WithRetries(cfg.searchRetries)

	searchSvc := searchuc.New(gateway, cfg.logger)
	if cfg.searchTimeout > 0 {
		searchSvc = searchSvc.WithIndexTimeout(cfg.searchTimeout)
	}

	return &Client{
		engine:     store,
		articles:   articles,
		searchSvc:  searchSvc,
		articleSvc: articleuc.New(articles),
		healthSvc:  healthuc.New(articles, store),
	}, nil
}

// Close releases the engine connection and the article store.
func (c *Client) Close() {
	if c.engine != nil {
		c.engine.Close()
	}
	if c.articles != nil {
		_ = c.articles.Close()
	}
}

// SearchOptions tunes one search call. Zero values mean scope "all",
// limit 10, offset 0, non-strict.
type SearchOptions struct {
	Scope  Scope
	Limit  int
	Offset int
	Strict bool
}

// SearchResult is one search outcome.
type SearchResult struct {
	Query  string
	Kind   string
	Hits   []domain.ScoredHit
	Count  int
	Limit  int
	Offset int
}

// Search classifies the query, fans out over the scoped indices, and returns
// the rescored page.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (SearchResult, error) {
	scope := opts.Scope
	if scope == "" {
		scope = ScopeAll
	}
	limit := opts.Limit
	if limit == 0 {
		limit = 10
	}

	res, err := c.searchSvc.Search(ctx, query, scope, limit, opts.Offset, opts.Strict)
	if err != nil {
		return SearchResult{}, err
	}

	return SearchResult{
		Query:  res.Query.RawText,
		Kind:   string(res.Query.Kind),
		Hits:   res.Hits,
		Count:  res.Count,
		Limit:  res.Limit,
		Offset: res.Offset,
	}, nil
}

// Laws lists the statute corpora.
func (c *Client) Laws(ctx context.Context) ([]domain.Law, error) {
	return c.articleSvc.Laws(ctx)
}

// Article fetches one article by number within a law.
func (c *Client) Article(ctx context.Context, lawCode string, articleNo, articleSubNo int) (domain.Article, error) {
	return c.articleSvc.Get(ctx, lawCode, articleNo, articleSubNo)
}

// ArticleByJoCode fetches one article by its six-digit jo code within a law.
func (c *Client) ArticleByJoCode(ctx context.Context, lawCode, joCode string) (domain.Article, error) {
	return c.articleSvc.GetByJoCode(ctx, lawCode, joCode)
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok" or "degraded"
	Checks map[string]string // component -> "ok"/"error"
}

// Health checks the article store and the search engine.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}
