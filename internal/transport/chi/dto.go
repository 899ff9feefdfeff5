package chi

import (
	"encoding/json"

	"github.com/lawdex/lawdex/internal/domain"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type searchResponse struct {
	Query  string      `json:"query"`
	Scope  string      `json:"scope"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
	Hits   []searchHit `json:"hits"`
	Count  int         `json:"count"`
}

type searchHit struct {
	LawCode      string   `json:"lawCode"`
	Index        string   `json:"index"`
	ArticleNo    int      `json:"articleNo"`
	ArticleSubNo int      `json:"articleSubNo"`
	JoCode       string   `json:"joCode"`
	Heading      string   `json:"heading"`
	Body         string   `json:"body"`
	RankingScore float64  `json:"rankingScore"`
	AppScore     float64  `json:"appScore"`
	Bonus        bonusOut `json:"bonus"`
}

type bonusOut struct {
	JoCode    float64 `json:"joCode"`
	ArticleNo float64 `json:"articleNo"`
	Heading   float64 `json:"heading"`
}

type lawOut struct {
	Code   string `json:"code"`
	NameKo string `json:"nameKo"`
}

type articleOut struct {
	LawCode      string          `json:"lawCode"`
	ArticleNo    int             `json:"articleNo"`
	ArticleSubNo int             `json:"articleSubNo"`
	JoCode       string          `json:"joCode"`
	Heading      string          `json:"heading"`
	Body         string          `json:"body"`
	Notes        []string        `json:"notes"`
	Clauses      json.RawMessage `json:"clauses,omitempty"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func searchHitFromDomain(h domain.ScoredHit) searchHit {
	return searchHit{
		LawCode:      h.LawCode,
		Index:        h.Index,
		ArticleNo:    h.ArticleNo,
		ArticleSubNo: h.ArticleSubNo,
		JoCode:       h.JoCode,
		Heading:      h.Heading,
		Body:         h.Body,
		RankingScore: h.RankingScore,
		AppScore:     h.AppScore,
		Bonus: bonusOut{
			JoCode:    h.Bonus.JoCode,
			ArticleNo: h.Bonus.ArticleNo,
			Heading:   h.Bonus.Heading,
		},
	}
}

func articleFromDomain(a domain.Article) articleOut {
	out := articleOut{
		LawCode:      a.LawCode,
		ArticleNo:    a.ArticleNo,
		ArticleSubNo: a.ArticleSubNo,
		JoCode:       a.JoCode,
		Heading:      a.Heading,
		Body:         a.Body,
		Notes:        a.Notes,
	}
	if a.Notes == nil {
		out.Notes = []string{}
	}
	if len(a.ClausesJSON) > 0 {
		out.Clauses = json.RawMessage(a.ClausesJSON)
	}
	return out
}
