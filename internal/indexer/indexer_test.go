package indexer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/lawdex/lawdex/internal/domain"
	"github.com/lawdex/lawdex/internal/engine"
)

type mockReader struct {
	articles []domain.Article
	err      error
}

func (m *mockReader) ListArticles(context.Context, string) ([]domain.Article, error) {
	return m.articles, m.err
}

type mockEngine struct {
	mu      sync.Mutex
	dropped []string
	created []*engine.IndexDefinition
	items   []engine.HashSetItem
	deleted []string
	scanned []string

	exists    bool
	scanKeys  []string
	dropErr   error
	createErr error
	hsetErr   error
}

func (m *mockEngine) CreateIndex(_ context.Context, def *engine.IndexDefinition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, def)
	return m.createErr
}

func (m *mockEngine) DropIndex(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropped = append(m.dropped, name)
	return m.dropErr
}

func (m *mockEngine) IndexExists(context.Context, string) (bool, error) { return m.exists, nil }

func (m *mockEngine) HSetMulti(_ context.Context, items []engine.HashSetItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hsetErr != nil {
		return m.hsetErr
	}
	m.items = append(m.items, items...)
	return nil
}

func (m *mockEngine) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, keys...)
	return nil
}

func (m *mockEngine) Scan(_ context.Context, pattern string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scanned = append(m.scanned, pattern)
	return m.scanKeys, nil
}

func article(lawCode string, no, subNo int, body string) domain.Article {
	return domain.Article{
		LawCode:      lawCode,
		ArticleNo:    no,
		ArticleSubNo: subNo,
		JoCode:       domain.JoCode(no, subNo),
		Heading:      "표제",
		Body:         body,
	}
}

func findField(def *engine.IndexDefinition, name string) *engine.IndexField {
	for i := range def.Fields {
		if def.Fields[i].Name == name {
			return &def.Fields[i]
		}
	}
	return nil
}

func TestReindex_CriminalSchemaCarriesLawCode(t *testing.T) {
	eng := &mockEngine{exists: true}
	ix := New(&mockReader{}, eng, zap.NewNop(), 10, 2)

	if _, err := ix.Reindex(context.Background(), domain.CriminalCode, "criminal-articles"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(eng.dropped) != 1 || eng.dropped[0] != "criminal-articles" {
		t.Errorf("dropped = %v", eng.dropped)
	}
	if len(eng.created) != 1 {
		t.Fatalf("created %d indices, want 1", len(eng.created))
	}

	def := eng.created[0]
	if findField(def, domain.FieldLawCode) == nil {
		t.Error("criminal schema is missing the lawCode field")
	}
	if f := findField(def, domain.FieldHeading); f == nil || f.Weight != 5 {
		t.Errorf("heading field = %+v, want weight 5", f)
	}
	if f := findField(def, domain.FieldBody); f == nil || f.Weight != 2 {
		t.Errorf("body field = %+v, want weight 2", f)
	}
}

func TestReindex_CivilSchemaOmitsLawCode(t *testing.T) {
	eng := &mockEngine{}
	ix := New(&mockReader{}, eng, zap.NewNop(), 10, 2)

	if _, err := ix.Reindex(context.Background(), domain.CivilCode, "civil-articles"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if findField(eng.created[0], domain.FieldLawCode) != nil {
		t.Error("civil schema must not declare the lawCode field")
	}
}

func TestReindex_SkipsDropWhenIndexAbsent(t *testing.T) {
	eng := &mockEngine{exists: false}
	ix := New(&mockReader{}, eng, zap.NewNop(), 10, 2)

	if _, err := ix.Reindex(context.Background(), domain.CivilCode, "civil-articles"); err != nil {
		t.Fatalf("first run must tolerate a missing index: %v", err)
	}
	if len(eng.dropped) != 0 {
		t.Errorf("dropped = %v, want no drop for an absent index", eng.dropped)
	}
	if len(eng.created) != 1 {
		t.Errorf("created %d indices, want 1", len(eng.created))
	}
}

func TestReindex_DropRaceIsIgnored(t *testing.T) {
	eng := &mockEngine{exists: true, dropErr: engine.ErrIndexNotFound}
	ix := New(&mockReader{}, eng, zap.NewNop(), 10, 2)

	if _, err := ix.Reindex(context.Background(), domain.CivilCode, "civil-articles"); err != nil {
		t.Fatalf("index vanishing between exists and drop must be tolerated: %v", err)
	}
}

func TestReindex_PurgesStaleDocuments(t *testing.T) {
	reader := &mockReader{articles: []domain.Article{
		article(domain.CivilCode, 218, 0, "토지소유자는"),
	}}
	eng := &mockEngine{
		exists:   true,
		scanKeys: []string{"civil-articles:021800", "civil-articles:999900"},
	}
	ix := New(reader, eng, zap.NewNop(), 10, 2)

	if _, err := ix.Reindex(context.Background(), domain.CivilCode, "civil-articles"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(eng.scanned) != 1 || eng.scanned[0] != "civil-articles:*" {
		t.Errorf("scanned = %v, want [civil-articles:*]", eng.scanned)
	}
	if len(eng.deleted) != 2 || eng.deleted[1] != "civil-articles:999900" {
		t.Errorf("deleted = %v, want both stale document keys", eng.deleted)
	}
	if len(eng.items) != 1 {
		t.Errorf("stored %d items after purge, want 1", len(eng.items))
	}
}

func TestReindex_PushesDocuments(t *testing.T) {
	reader := &mockReader{articles: []domain.Article{
		article(domain.CriminalCode, 250, 0, "사람을 살해한"),
		article(domain.CriminalCode, 250, 1, "존속을 살해한"),
	}}
	eng := &mockEngine{}
	ix := New(reader, eng, zap.NewNop(), 1, 2)

	n, err := ix.Reindex(context.Background(), domain.CriminalCode, "criminal-articles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 || len(eng.items) != 2 {
		t.Fatalf("indexed %d docs, stored %d items, want 2", n, len(eng.items))
	}

	byKey := make(map[string]map[string]string, len(eng.items))
	for _, item := range eng.items {
		byKey[item.Key] = item.Fields
	}

	fields, ok := byKey["criminal-articles:025000"]
	if !ok {
		t.Fatalf("missing doc key, got %v", byKey)
	}
	if fields[domain.FieldLawCode] != domain.CriminalCode {
		t.Errorf("lawCode = %q", fields[domain.FieldLawCode])
	}
	if fields[domain.FieldArticleNo] != "250" || fields[domain.FieldArticleSubNo] != "0" {
		t.Errorf("numeric fields = %q/%q", fields[domain.FieldArticleNo], fields[domain.FieldArticleSubNo])
	}
	if fields[domain.FieldBodyNgram] == "" {
		t.Error("bodyNgram was not derived")
	}
}

func TestReindex_CivilDocumentsOmitLawCode(t *testing.T) {
	reader := &mockReader{articles: []domain.Article{
		article(domain.CivilCode, 218, 0, "토지소유자는"),
	}}
	eng := &mockEngine{}
	ix := New(reader, eng, zap.NewNop(), 10, 2)

	if _, err := ix.Reindex(context.Background(), domain.CivilCode, "civil-articles"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, present := eng.items[0].Fields[domain.FieldLawCode]; present {
		t.Error("civil document must not carry the lawCode field")
	}
}

func TestReindex_ReadFailure(t *testing.T) {
	reader := &mockReader{err: errors.New("disk error")}
	ix := New(reader, &mockEngine{}, zap.NewNop(), 10, 2)

	if _, err := ix.Reindex(context.Background(), domain.CivilCode, "civil-articles"); err == nil {
		t.Fatal("expected error")
	}
}

func TestReindex_PushFailure(t *testing.T) {
	reader := &mockReader{articles: []domain.Article{
		article(domain.CivilCode, 218, 0, "토지소유자는"),
	}}
	eng := &mockEngine{hsetErr: errors.New("write refused")}
	ix := New(reader, eng, zap.NewNop(), 10, 2)

	if _, err := ix.Reindex(context.Background(), domain.CivilCode, "civil-articles"); err == nil {
		t.Fatal("expected error")
	}
}
