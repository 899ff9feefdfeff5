package article

import (
	"context"
	"errors"
	"testing"

	"github.com/lawdex/lawdex/internal/domain"
)

type mockReader struct {
	lawsFn        func(ctx context.Context) ([]domain.Law, error)
	getFn         func(ctx context.Context, lawCode string, articleNo, articleSubNo int) (domain.Article, error)
	getByJoCodeFn func(ctx context.Context, lawCode, joCode string) (domain.Article, error)
}

func (m *mockReader) ListLaws(ctx context.Context) ([]domain.Law, error) {
	return m.lawsFn(ctx)
}

func (m *mockReader) GetArticle(ctx context.Context, lawCode string, articleNo, articleSubNo int) (domain.Article, error) {
	return m.getFn(ctx, lawCode, articleNo, articleSubNo)
}

func (m *mockReader) GetArticleByJoCode(ctx context.Context, lawCode, joCode string) (domain.Article, error) {
	return m.getByJoCodeFn(ctx, lawCode, joCode)
}

func TestLaws_FromStore(t *testing.T) {
	svc := New(&mockReader{
		lawsFn: func(_ context.Context) ([]domain.Law, error) {
			return []domain.Law{{Code: domain.CivilCode, NameKo: "민법"}}, nil
		},
	})

	laws, err := svc.Laws(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(laws) != 1 {
		t.Errorf("laws = %+v", laws)
	}
}

func TestLaws_EmptyStoreFallsBack(t *testing.T) {
	svc := New(&mockReader{
		lawsFn: func(_ context.Context) ([]domain.Law, error) { return nil, nil },
	})

	laws, err := svc.Laws(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(laws) != 2 {
		t.Fatalf("got %d laws, want the 2 fixed instances", len(laws))
	}
}

func TestGet_UnknownLawCode(t *testing.T) {
	svc := New(&mockReader{
		getFn: func(_ context.Context, _ string, _, _ int) (domain.Article, error) {
			t.Fatal("store must not be queried for an unknown law code")
			return domain.Article{}, nil
		},
	})

	_, err := svc.Get(context.Background(), "TAX_CODE", 1, 0)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetByJoCode_WrapsStoreError(t *testing.T) {
	svc := New(&mockReader{
		getByJoCodeFn: func(_ context.Context, _, _ string) (domain.Article, error) {
			return domain.Article{}, domain.ErrNotFound
		},
	})

	_, err := svc.GetByJoCode(context.Background(), domain.CivilCode, "999999")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
