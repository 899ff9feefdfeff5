package textproc

import (
	"strings"
	"testing"

	"github.com/lawdex/lawdex/internal/domain"
)

func TestBodyNgram_Ordering(t *testing.T) {
	got := BodyNgram("소유권")

	// All 2-grams in position order, then all 3-grams.
	want := "소유 유권 소유권"
	if got != want {
		t.Errorf("BodyNgram(소유권) = %q, want %q", got, want)
	}
}

func TestBodyNgram_GramCount(t *testing.T) {
	// Space-free bodies so grams can be counted by splitting on spaces.
	tests := []struct {
		body string
	}{
		{"전세권"},
		{"소유자는"},
		{"abcd"},
	}
	for _, tt := range tests {
		runes := []rune(tt.body)
		wantCount := (len(runes) - 1) + (len(runes) - 2)

		got := BodyNgram(tt.body)
		if n := len(strings.Split(got, " ")); n != wantCount {
			t.Errorf("BodyNgram(%q) yields %d grams, want %d", tt.body, n, wantCount)
		}
	}
}

func TestBodyNgram_KeepsDuplicates(t *testing.T) {
	got := BodyNgram("가가가")

	want := "가가 가가 가가가"
	if got != want {
		t.Errorf("BodyNgram(가가가) = %q, want %q", got, want)
	}
}

func TestBodyNgram_WhitespaceIsWindowContent(t *testing.T) {
	got := BodyNgram("소 유")

	grams := strings.Split(got, " ")
	// "소 ", " 유", "소 유" all contain the space rune, so splitting on
	// spaces yields more tokens than grams. Check containment instead.
	if len(grams) <= 3 {
		t.Errorf("expected space-carrying grams to split apart, got %v", grams)
	}
	if !strings.Contains(got, "소 유") {
		t.Errorf("BodyNgram(소 유) = %q, missing 3-gram spanning the space", got)
	}
}

func TestBodyNgram_ShortInput(t *testing.T) {
	for _, body := range []string{"", "소"} {
		if got := BodyNgram(body); got != "" {
			t.Errorf("BodyNgram(%q) = %q, want empty", body, got)
		}
	}
}

func TestBodyNgram_TwoRunes(t *testing.T) {
	// Exactly one 2-gram, no 3-grams possible.
	if got := BodyNgram("점유"); got != "점유" {
		t.Errorf("BodyNgram(점유) = %q, want 점유", got)
	}
}

func TestBodyNgram_Deterministic(t *testing.T) {
	body := "경계를 넘은 수목의 가지"
	a := BodyNgram(body)
	b := BodyNgram(body)
	if a != b {
		t.Error("BodyNgram is not deterministic")
	}
}

func TestPrepareForIndexing(t *testing.T) {
	doc := domain.IndexDocument{
		LawCode:   domain.CivilCode,
		ArticleNo: 218,
		JoCode:    "021800",
		Body:      "소유권",
	}

	got := PrepareForIndexing(doc)
	if got.BodyNgram != "소유 유권 소유권" {
		t.Errorf("BodyNgram = %q", got.BodyNgram)
	}
	// Input is not mutated.
	if doc.BodyNgram != "" {
		t.Error("PrepareForIndexing mutated its argument")
	}
}
