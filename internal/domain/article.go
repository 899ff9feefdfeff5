package domain

import "fmt"

// Article is the authoritative article record as stored in the relational
// store. (LawCode, ArticleNo, ArticleSubNo) is unique.
type Article struct {
	LawCode      string
	ArticleNo    int
	ArticleSubNo int
	JoCode       string
	Heading      string
	Body         string
	Notes        []string
	ClausesJSON  []byte
}

// IndexDocument is the subset of Article fields pushed to the search engine,
// plus the derived BodyNgram field added at indexing time. The civil index's
// documents omit LawCode by historical convention; the gateway supplies it
// when materializing hits.
type IndexDocument struct {
	LawCode      string
	ArticleNo    int
	ArticleSubNo int
	JoCode       string
	Heading      string
	Body         string
	BodyNgram    string
}

// Engine document field names, shared by the indexing workflow and the index
// gateway. They follow the historical document schema of the indices.
const (
	FieldLawCode      = "lawCode"
	FieldArticleNo    = "articleNo"
	FieldArticleSubNo = "articleSubNo"
	FieldJoCode       = "joCode"
	FieldHeading      = "heading"
	FieldBody         = "body"
	FieldBodyNgram    = "bodyNgram"
)

// JoCode encodes (articleNo, articleSubNo) as a fixed-width sortable code,
// e.g. (218, 0) -> "021800". Used for exact citation lookup and canonical
// ordering.
func JoCode(articleNo, articleSubNo int) string {
	return fmt.Sprintf("%04d%02d", articleNo, articleSubNo)
}
