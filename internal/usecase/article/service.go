// Package article serves law and article detail reads from the authoritative
// store.
package article

import (
	"context"
	"fmt"

	"github.com/lawdex/lawdex/internal/domain"
)

// Reader is the consumer contract over the authoritative store.
type Reader interface {
	ListLaws(ctx context.Context) ([]domain.Law, error)
	GetArticle(ctx context.Context, lawCode string, articleNo, articleSubNo int) (domain.Article, error)
	GetArticleByJoCode(ctx context.Context, lawCode, joCode string) (domain.Article, error)
}

// Service reads laws and articles.
type Service struct {
	store Reader
}

// New creates an article service.
func New(store Reader) *Service {
	return &Service{store: store}
}

// Laws lists the law reference entities. The store is authoritative; when it
// has none provisioned yet, the fixed instances are returned so the API shape
// stays stable.
func (s *Service) Laws(ctx context.Context) ([]domain.Law, error) {
	laws, err := s.store.ListLaws(ctx)
	if err != nil {
		return nil, fmt.Errorf("list laws: %w", err)
	}
	if len(laws) == 0 {
		return domain.Laws(), nil
	}
	return laws, nil
}

// Get fetches one article by number within a law.
func (s *Service) Get(ctx context.Context, lawCode string, articleNo, articleSubNo int) (domain.Article, error) {
	if !validLawCode(lawCode) {
		return domain.Article{}, domain.NewInvalidParam(domain.ErrNotFound, "lawCode", lawCode)
	}
	a, err := s.store.GetArticle(ctx, lawCode, articleNo, articleSubNo)
	if err != nil {
		return domain.Article{}, fmt.Errorf("get article %s %d-%d: %w", lawCode, articleNo, articleSubNo, err)
	}
	return a, nil
}

// GetByJoCode fetches one article by its jo code within a law.
func (s *Service) GetByJoCode(ctx context.Context, lawCode, joCode string) (domain.Article, error) {
	if !validLawCode(lawCode) {
		return domain.Article{}, domain.NewInvalidParam(domain.ErrNotFound, "lawCode", lawCode)
	}
	a, err := s.store.GetArticleByJoCode(ctx, lawCode, joCode)
	if err != nil {
		return domain.Article{}, fmt.Errorf("get article %s jo %s: %w", lawCode, joCode, err)
	}
	return a, nil
}

func validLawCode(code string) bool {
	return code == domain.CivilCode || code == domain.CriminalCode
}
