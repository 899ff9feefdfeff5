package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind is the detected intent of a search query.
type Kind string

const (
	// KindArticleNo is a bare article-number lookup, e.g. "250" or "250의1".
	KindArticleNo Kind = "article_no"
	// KindCitation is a formatted citation lookup, e.g. "제250조의1".
	KindCitation Kind = "citation"
	// KindKeyword is a free-text keyword search.
	KindKeyword Kind = "keyword"
)

// NormalizedQuery is the classified form of a raw query string. Produced once
// per request and immutable thereafter.
type NormalizedQuery struct {
	RawText              string
	Kind                 Kind
	SearchTerms          []string
	DetectedArticleNo    int
	DetectedArticleSubNo int
	DetectedJoCode       string
}

var (
	// "250", "250의1", "250-1"
	articleNoRe = regexp.MustCompile(`^(\d+)(?:[-의](\d+))?$`)
	// "제250조", "제250조의1"
	citationRe = regexp.MustCompile(`^제(\d+)조(?:의(\d+))?$`)
)

// Classify parses a raw query into a NormalizedQuery. Pure: the same input
// always yields the same result. Empty or whitespace-only input fails with
// ErrInvalidQuery.
func Classify(rawText string) (NormalizedQuery, error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return NormalizedQuery{}, NewInvalidParam(ErrInvalidQuery, "q", rawText)
	}

	if m := articleNoRe.FindStringSubmatch(text); m != nil {
		no, subNo, err := parseArticleNumbers(m)
		if err != nil {
			return NormalizedQuery{}, err
		}
		return NormalizedQuery{
			RawText:              text,
			Kind:                 KindArticleNo,
			DetectedArticleNo:    no,
			DetectedArticleSubNo: subNo,
		}, nil
	}

	if m := citationRe.FindStringSubmatch(text); m != nil {
		no, subNo, err := parseArticleNumbers(m)
		if err != nil {
			return NormalizedQuery{}, err
		}
		return NormalizedQuery{
			RawText:              text,
			Kind:                 KindCitation,
			DetectedArticleNo:    no,
			DetectedArticleSubNo: subNo,
			DetectedJoCode:       JoCode(no, subNo),
		}, nil
	}

	return NormalizedQuery{
		RawText:     text,
		Kind:        KindKeyword,
		SearchTerms: strings.Fields(text),
	}, nil
}

func parseArticleNumbers(m []string) (no, subNo int, err error) {
	no, err = strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, NewInvalidParam(ErrInvalidQuery, "q", m[0])
	}
	if m[2] != "" {
		subNo, err = strconv.Atoi(m[2])
		if err != nil {
			return 0, 0, NewInvalidParam(ErrInvalidQuery, "q", m[0])
		}
	}
	return no, subNo, nil
}
