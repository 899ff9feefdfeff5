// Package indexer implements the offline indexing workflow: it reads the
// authoritative article store, derives the bodyNgram field, provisions the
// engine index schema, and pushes documents in pipelined batches. It runs as
// a separate batch binary and is never on the query path.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lawdex/lawdex/internal/domain"
	"github.com/lawdex/lawdex/internal/engine"
	"github.com/lawdex/lawdex/internal/metrics"
	"github.com/lawdex/lawdex/internal/textproc"
)

// articleReader is the consumer contract over the authoritative store.
type articleReader interface {
	ListArticles(ctx context.Context, lawCode string) ([]domain.Article, error)
}

// engineStore is the consumer contract over the search engine.
type engineStore interface {
	engine.IndexManager
	engine.DocumentWriter
}

// Indexer rebuilds one engine index from the authoritative store.
type Indexer struct {
	store     articleReader
	eng       engineStore
	logger    *zap.Logger
	batchSize int
	workers   int
}

// New creates an indexer.
func New(store articleReader, eng engineStore, logger *zap.Logger, batchSize, workers int) *Indexer {
	if batchSize <= 0 {
		batchSize = 500
	}
	if workers <= 0 {
		workers = 4
	}
	return &Indexer{
		store:     store,
		eng:       eng,
		logger:    logger,
		batchSize: batchSize,
		workers:   workers,
	}
}

// Reindex drops and recreates indexName for one law, then pushes every
// article as an engine document. Returns the number of documents indexed.
func (ix *Indexer) Reindex(ctx context.Context, lawCode, indexName string) (int, error) {
	if err := ix.recreateIndex(ctx, lawCode, indexName); err != nil {
		return 0, err
	}

	articles, err := ix.store.ListArticles(ctx, lawCode)
	if err != nil {
		return 0, fmt.Errorf("read articles: %w", err)
	}

	docs, err := ix.prepareDocuments(articles)
	if err != nil {
		return 0, err
	}

	if err := ix.pushDocuments(ctx, lawCode, indexName, docs); err != nil {
		return 0, err
	}

	ix.logger.Info("reindex complete",
		zap.String("law_code", lawCode),
		zap.String("index", indexName),
		zap.Int("documents", len(docs)),
	)

	return len(docs), nil
}

// recreateIndex drops indexName if present, purges its document hashes, and
// creates the schema. The civil index's documents historically omit the
// lawCode field, so its schema does not declare it either; the query-side
// gateway compensates.
func (ix *Indexer) recreateIndex(ctx context.Context, lawCode, indexName string) error {
	exists, err := ix.eng.IndexExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("check index %s: %w", indexName, err)
	}
	if exists {
		if err := ix.eng.DropIndex(ctx, indexName); err != nil && !errors.Is(err, engine.ErrIndexNotFound) {
			return fmt.Errorf("drop index %s: %w", indexName, err)
		}
	}

	// FT.DROPINDEX keeps the document hashes. They must go before FT.CREATE,
	// whose prefix scan would otherwise re-index articles that no longer
	// exist in the authoritative store.
	if err := ix.purgeDocuments(ctx, indexName); err != nil {
		return err
	}

	// Field weights mirror the provisioning-time searchable-attribute
	// priority: heading above body above the n-gram recall field.
	b := engine.NewIndex(indexName).
		Prefix(docKeyPrefix(indexName)).
		TextWithWeight(domain.FieldHeading, 5).
		Tag(domain.FieldJoCode).
		TextWithWeight(domain.FieldBody, 2).
		Text(domain.FieldBodyNgram).
		Numeric(domain.FieldArticleNo).
		Numeric(domain.FieldArticleSubNo)

	if lawCode != domain.CivilCode {
		b = b.Tag(domain.FieldLawCode)
	}

	if err := ix.eng.CreateIndex(ctx, b.Build()); err != nil {
		return fmt.Errorf("create index %s: %w", indexName, err)
	}
	return nil
}

// purgeDocuments deletes every document hash under the index key prefix.
func (ix *Indexer) purgeDocuments(ctx context.Context, indexName string) error {
	keys, err := ix.eng.Scan(ctx, docKeyPrefix(indexName)+"*")
	if err != nil {
		return fmt.Errorf("scan stale documents: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := ix.eng.Del(ctx, keys...); err != nil {
		return fmt.Errorf("delete stale documents: %w", err)
	}
	return nil
}

// prepareDocuments derives bodyNgram for every article on a worker pool.
// N-gram generation over whole statute bodies is the expensive part of the
// workflow, so it is parallelized; order is preserved by slot.
func (ix *Indexer) prepareDocuments(articles []domain.Article) ([]domain.IndexDocument, error) {
	pool, err := ants.NewPool(ix.workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	docs := make([]domain.IndexDocument, len(articles))

	var wg sync.WaitGroup
	var submitErr error
	for i, a := range articles {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			docs[i] = textproc.PrepareForIndexing(domain.IndexDocument{
				LawCode:      a.LawCode,
				ArticleNo:    a.ArticleNo,
				ArticleSubNo: a.ArticleSubNo,
				JoCode:       a.JoCode,
				Heading:      a.Heading,
				Body:         a.Body,
			})
		})
		if err != nil {
			wg.Done()
			submitErr = fmt.Errorf("submit prepare task: %w", err)
			break
		}
	}
	wg.Wait()

	if submitErr != nil {
		return nil, submitErr
	}
	return docs, nil
}

// pushDocuments writes documents in pipelined batches, a bounded number of
// batches in flight at a time.
func (ix *Indexer) pushDocuments(
	ctx context.Context, lawCode, indexName string, docs []domain.IndexDocument,
) error {
	includeLawCode := lawCode != domain.CivilCode

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.workers)

	for start := 0; start < len(docs); start += ix.batchSize {
		start := start
		end := min(start+ix.batchSize, len(docs))
		batch := docs[start:end]

		g.Go(func() error {
			items := make([]engine.HashSetItem, len(batch))
			for i, doc := range batch {
				items[i] = engine.HashSetItem{
					Key:    docKey(indexName, doc.JoCode),
					Fields: buildHashFields(doc, includeLawCode),
				}
			}
			if err := ix.eng.HSetMulti(gctx, items); err != nil {
				return fmt.Errorf("push batch at %d: %w", start, err)
			}
			metrics.IndexedDocumentsTotal.WithLabelValues(indexName).Add(float64(len(items)))
			return nil
		})
	}

	return g.Wait()
}

func docKeyPrefix(indexName string) string {
	return indexName + ":"
}

func docKey(indexName, joCode string) string {
	return docKeyPrefix(indexName) + joCode
}

// buildHashFields flattens an IndexDocument for HSET. lawCode is written only
// when the index's historical schema carries it.
func buildHashFields(doc domain.IndexDocument, includeLawCode bool) map[string]string {
	m := map[string]string{
		domain.FieldArticleNo:    strconv.Itoa(doc.ArticleNo),
		domain.FieldArticleSubNo: strconv.Itoa(doc.ArticleSubNo),
		domain.FieldJoCode:       doc.JoCode,
		domain.FieldHeading:      doc.Heading,
		domain.FieldBody:         doc.Body,
		domain.FieldBodyNgram:    doc.BodyNgram,
	}
	if includeLawCode {
		m[domain.FieldLawCode] = doc.LawCode
	}
	return m
}
