// Package article is the read-only repository over the authoritative
// relational article store. The schema and its migrations are owned by the
// ingestion side; this core only reads.
package article

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/lawdex/lawdex/internal/domain"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// Repo reads laws and articles from the authoritative store.
type Repo struct {
	db *sql.DB
}

// Open opens the store read-only.
func Open(path string) (*Repo, error) {
	db, err := sql.Open(DriverName, fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("open article store: %w", err)
	}

	// Single reader connection; the store is tiny and never written here.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return &Repo{db: db}, nil
}

// Close closes the underlying connection.
func (r *Repo) Close() error {
	return r.db.Close()
}

// Ping checks store availability.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("article store ping: %w", err)
	}
	return nil
}

// ListLaws returns the law reference entities in canonical order.
func (r *Repo) ListLaws(ctx context.Context) ([]domain.Law, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT code, name_ko FROM laws ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list laws: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var laws []domain.Law
	for rows.Next() {
		var l domain.Law
		if err := rows.Scan(&l.Code, &l.NameKo); err != nil {
			return nil, fmt.Errorf("scan law: %w", err)
		}
		laws = append(laws, l)
	}
	return laws, rows.Err()
}

const articleColumns = `law_code, article_no, article_sub_no, jo_code,
       heading, body, COALESCE(notes, '[]'), COALESCE(clauses, '[]')`

// GetArticle fetches one article by (lawCode, articleNo, articleSubNo).
func (r *Repo) GetArticle(ctx context.Context, lawCode string, articleNo, articleSubNo int) (domain.Article, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+`
		 FROM articles
		 WHERE law_code = ? AND article_no = ? AND article_sub_no = ?
		 LIMIT 1`,
		lawCode, articleNo, articleSubNo)
	return scanArticle(row)
}

// GetArticleByJoCode fetches one article by its fixed-width jo code.
func (r *Repo) GetArticleByJoCode(ctx context.Context, lawCode, joCode string) (domain.Article, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+`
		 FROM articles
		 WHERE law_code = ? AND jo_code = ?
		 LIMIT 1`,
		lawCode, joCode)
	return scanArticle(row)
}

// ListArticles returns every article of one law in canonical jo-code order.
// Used by the indexing workflow.
func (r *Repo) ListArticles(ctx context.Context, lawCode string) ([]domain.Article, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+articleColumns+`
		 FROM articles
		 WHERE law_code = ?
		 ORDER BY article_no, article_sub_no`,
		lawCode)
	if err != nil {
		return nil, fmt.Errorf("list articles %s: %w", lawCode, err)
	}
	defer func() { _ = rows.Close() }()

	var articles []domain.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (domain.Article, error) {
	var a domain.Article
	var notesJSON string
	var clauses []byte

	err := row.Scan(
		&a.LawCode, &a.ArticleNo, &a.ArticleSubNo, &a.JoCode,
		&a.Heading, &a.Body, &notesJSON, &clauses,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Article{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Article{}, fmt.Errorf("scan article: %w", err)
	}

	if notesJSON != "" {
		if err := json.Unmarshal([]byte(notesJSON), &a.Notes); err != nil {
			return domain.Article{}, fmt.Errorf("parse notes: %w", err)
		}
	}
	a.ClausesJSON = clauses

	return a, nil
}
