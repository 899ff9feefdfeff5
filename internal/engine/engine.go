// Package engine defines the contract against the external inverted-index
// search engine. The engine is a black box: it accepts a query with filters
// and a result budget and returns ranked hits with a native relevance score
// per its own rules. Drivers live in subpackages.
package engine

import (
	"context"
	"time"
)

// Store is the full engine capability. The query path only uses Searcher and
// Pinger; index lifecycle and document writes belong to the offline indexing
// workflow.
type Store interface {
	Pinger
	Searcher
	IndexManager
	DocumentWriter
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks engine connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Searcher runs ranked full-text queries against a named index.
type Searcher interface {
	Search(ctx context.Context, q *TextQuery) (*SearchResult, error)
}

// IndexManager provides index lifecycle operations (indexing workflow only).
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// HashSetItem holds a single key+fields pair for pipelined document writes.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// DocumentWriter stores and purges index documents (indexing workflow only).
type DocumentWriter interface {
	HSetMulti(ctx context.Context, items []HashSetItem) error
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// ExactMatch is one exact clause on a TAG or NUMERIC field. Tag takes
// precedence when non-empty; otherwise Value is used as a numeric equality.
type ExactMatch struct {
	Field string
	Tag   string
	Value int
}

// TextQuery is the input for a ranked search. When Exact clauses are present
// they form a single AND-group unioned with the free-text clause, as in
// (exact AND exact) | (text), so exact hits are always retrievable without
// relying on the engine's tokenizer or ranking.
type TextQuery struct {
	IndexName  string
	Text       string
	TextFields []string
	Exact      []ExactMatch
	Limit      int
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit. Score is the engine's native
// relevance score.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
