package search

import (
	"sort"
	"strings"

	"github.com/lawdex/lawdex/internal/domain"
)

// Deterministic bonuses layered on the engine's native score. They dominate
// typical engine score ranges so exact matches always outrank text-only hits.
const (
	joCodeBonus    = 1000.0
	articleNoBonus = 900.0
	headingBonus   = 50.0
)

// rescore computes the application-level score for every hit and returns them
// stable-sorted by appScore descending, ties broken by ascending joCode and
// then lawCode. Pure: re-invocation with the same inputs yields the same
// output.
func rescore(hits []domain.RawHit, q domain.NormalizedQuery) []domain.ScoredHit {
	scored := make([]domain.ScoredHit, len(hits))
	for i, h := range hits {
		b := bonuses(h, q)
		scored[i] = domain.ScoredHit{
			RawHit:   h,
			Bonus:    b,
			AppScore: h.RankingScore + b.Total(),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.AppScore != b.AppScore {
			return a.AppScore > b.AppScore
		}
		if a.JoCode != b.JoCode {
			return a.JoCode < b.JoCode
		}
		// joCode values can collide across laws under scope=all.
		return a.LawCode < b.LawCode
	})

	return scored
}

// bonuses evaluates the additive rules for one hit. The exact joCode and
// exact article-number rules are mutually exclusive by classification; the
// heading rule applies independently whenever search terms exist.
func bonuses(h domain.RawHit, q domain.NormalizedQuery) domain.Bonus {
	var b domain.Bonus

	switch q.Kind {
	case domain.KindCitation:
		if h.JoCode == q.DetectedJoCode {
			b.JoCode = joCodeBonus
		} else if h.ArticleNo == q.DetectedArticleNo && h.ArticleSubNo == q.DetectedArticleSubNo {
			b.ArticleNo = articleNoBonus
		}
	case domain.KindArticleNo:
		if h.ArticleNo == q.DetectedArticleNo && h.ArticleSubNo == q.DetectedArticleSubNo {
			b.ArticleNo = articleNoBonus
		}
	case domain.KindKeyword:
		// no numeric extraction
	}

	// Awarded once regardless of how many terms match the heading.
	heading := strings.ToLower(h.Heading)
	for _, term := range q.SearchTerms {
		if strings.Contains(heading, strings.ToLower(term)) {
			b.Heading = headingBonus
			break
		}
	}

	return b
}
