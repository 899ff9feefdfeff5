package redis

import (
	"strings"
	"testing"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"

	"github.com/lawdex/lawdex/internal/engine"
)

func TestBuildQuery_TextOnly(t *testing.T) {
	q := &engine.TextQuery{
		Text:       "점유 취득",
		TextFields: []string{"heading", "body", "bodyNgram"},
	}

	got := buildQuery(q)
	want := "@heading|body|bodyNgram:(점유 취득)"
	if got != want {
		t.Errorf("buildQuery = %q, want %q", got, want)
	}
}

func TestBuildQuery_TextNoFields(t *testing.T) {
	q := &engine.TextQuery{Text: "점유"}

	if got := buildQuery(q); got != "(점유)" {
		t.Errorf("buildQuery = %q", got)
	}
}

func TestBuildQuery_NumericExactUnionedWithText(t *testing.T) {
	q := &engine.TextQuery{
		Text:       "250의1",
		TextFields: []string{"heading", "body"},
		Exact: []engine.ExactMatch{
			{Field: "articleNo", Value: 250},
			{Field: "articleSubNo", Value: 1},
		},
	}

	got := buildQuery(q)
	want := "(@articleNo:[250 250] @articleSubNo:[1 1]) | @heading|body:(250의1)"
	if got != want {
		t.Errorf("buildQuery = %q, want %q", got, want)
	}
}

func TestBuildQuery_TagExact(t *testing.T) {
	q := &engine.TextQuery{
		Exact: []engine.ExactMatch{{Field: "joCode", Tag: "021800"}},
	}

	if got := buildQuery(q); got != "(@joCode:{021800})" {
		t.Errorf("buildQuery = %q", got)
	}
}

func TestBuildQuery_EscapesQuerySyntax(t *testing.T) {
	q := &engine.TextQuery{
		Text:       `a|b (c) @d`,
		TextFields: []string{"body"},
	}

	got := buildQuery(q)
	for _, meta := range []string{`\|`, `\(`, `\)`, `\@`} {
		if !strings.Contains(got, meta) {
			t.Errorf("buildQuery = %q, missing escaped %q", got, meta)
		}
	}
}

func TestBuildQuery_EscapesTagValue(t *testing.T) {
	q := &engine.TextQuery{
		Exact: []engine.ExactMatch{{Field: "joCode", Tag: "02 18-00"}},
	}

	got := buildQuery(q)
	if !strings.Contains(got, `02\ 18\-00`) {
		t.Errorf("buildQuery = %q, tag value not escaped", got)
	}
}

func searchHitReply(key, score string, fieldPairs ...string) []rueidis.RedisMessage {
	fields := make([]rueidis.RedisMessage, len(fieldPairs))
	for i, f := range fieldPairs {
		fields[i] = mock.RedisString(f)
	}
	return []rueidis.RedisMessage{
		mock.RedisString(key),
		mock.RedisString(score),
		mock.RedisArray(fields...),
	}
}

func TestParseSearchResult_TotalExceedsReply(t *testing.T) {
	// WITHSCORES reply for LIMIT 1 out of a very large match total. The huge
	// total must not drive the entry allocation.
	raw := append(
		[]rueidis.RedisMessage{mock.RedisInt64(1 << 40)},
		searchHitReply("civil-articles:021800", "1.5", "joCode", "021800")...,
	)

	res, err := parseSearchResult(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 1<<40 {
		t.Errorf("Total = %d, want %d", res.Total, int64(1<<40))
	}
	if len(res.Entries) != 1 {
		t.Fatalf("parsed %d entries, want 1", len(res.Entries))
	}
	e := res.Entries[0]
	if e.Key != "civil-articles:021800" || e.Score != 1.5 || e.Fields["joCode"] != "021800" {
		t.Errorf("entry = %+v", e)
	}
}

func TestParseSearchResult_Empty(t *testing.T) {
	res, err := parseSearchResult([]rueidis.RedisMessage{mock.RedisInt64(0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 0 || len(res.Entries) != 0 {
		t.Errorf("result = %+v, want empty", res)
	}
}
