package index

import (
	"context"

	"github.com/lawdex/lawdex/internal/engine"
)

// mockSearcher substitutes the engine store in tests.
type mockSearcher struct {
	searchFn func(ctx context.Context, q *engine.TextQuery) (*engine.SearchResult, error)
	calls    int
}

func (m *mockSearcher) Search(ctx context.Context, q *engine.TextQuery) (*engine.SearchResult, error) {
	m.calls++
	return m.searchFn(ctx, q)
}

func entry(key string, score float64, fields map[string]string) engine.SearchEntry {
	return engine.SearchEntry{Key: key, Score: score, Fields: fields}
}

func result(entries ...engine.SearchEntry) *engine.SearchResult {
	return &engine.SearchResult{Total: len(entries), Entries: entries}
}
