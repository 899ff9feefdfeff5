package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestClassify_ArticleNo(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNo    int
		wantSubNo int
	}{
		{"plain number", "250", 250, 0},
		{"korean sub number", "250의1", 250, 1},
		{"hyphen sub number", "250-1", 250, 1},
		{"leading whitespace", "  218 ", 218, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Classify(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if q.Kind != KindArticleNo {
				t.Fatalf("Kind = %q, want article_no", q.Kind)
			}
			if q.DetectedArticleNo != tt.wantNo || q.DetectedArticleSubNo != tt.wantSubNo {
				t.Errorf("detected = (%d, %d), want (%d, %d)",
					q.DetectedArticleNo, q.DetectedArticleSubNo, tt.wantNo, tt.wantSubNo)
			}
			if len(q.SearchTerms) != 0 {
				t.Errorf("SearchTerms = %v, want empty", q.SearchTerms)
			}
		})
	}
}

func TestClassify_Citation(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantNo     int
		wantSubNo  int
		wantJoCode string
	}{
		{"plain citation", "제218조", 218, 0, "021800"},
		{"citation with sub", "제250조의1", 250, 1, "025001"},
		{"single digit", "제3조", 3, 0, "000300"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Classify(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if q.Kind != KindCitation {
				t.Fatalf("Kind = %q, want citation", q.Kind)
			}
			if q.DetectedArticleNo != tt.wantNo || q.DetectedArticleSubNo != tt.wantSubNo {
				t.Errorf("detected = (%d, %d), want (%d, %d)",
					q.DetectedArticleNo, q.DetectedArticleSubNo, tt.wantNo, tt.wantSubNo)
			}
			if q.DetectedJoCode != tt.wantJoCode {
				t.Errorf("DetectedJoCode = %q, want %q", q.DetectedJoCode, tt.wantJoCode)
			}
		})
	}
}

func TestClassify_Keyword(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTerms []string
	}{
		{"single term", "점유", []string{"점유"}},
		{"multiple terms", "소유권 이전", []string{"소유권", "이전"}},
		{"partial citation is keyword", "제218조 점유", []string{"제218조", "점유"}},
		{"number with text", "250조", []string{"250조"}},
		{"collapsed whitespace", "  물권   변동  ", []string{"물권", "변동"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Classify(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if q.Kind != KindKeyword {
				t.Fatalf("Kind = %q, want keyword", q.Kind)
			}
			if !reflect.DeepEqual(q.SearchTerms, tt.wantTerms) {
				t.Errorf("SearchTerms = %v, want %v", q.SearchTerms, tt.wantTerms)
			}
			if q.DetectedJoCode != "" {
				t.Errorf("DetectedJoCode = %q, want empty", q.DetectedJoCode)
			}
		})
	}
}

func TestClassify_EmptyQuery(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := Classify(input)
		if !errors.Is(err, ErrInvalidQuery) {
			t.Errorf("Classify(%q) err = %v, want ErrInvalidQuery", input, err)
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	a, err := Classify("제250조의1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Classify("제250조의1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Classify not deterministic: %+v vs %+v", a, b)
	}
}

func TestJoCode(t *testing.T) {
	tests := []struct {
		no, subNo int
		want      string
	}{
		{218, 0, "021800"},
		{250, 1, "025001"},
		{3, 0, "000300"},
		{1000, 12, "100012"},
	}
	for _, tt := range tests {
		if got := JoCode(tt.no, tt.subNo); got != tt.want {
			t.Errorf("JoCode(%d, %d) = %q, want %q", tt.no, tt.subNo, got, tt.want)
		}
	}
}

func TestParseScope(t *testing.T) {
	for _, valid := range []string{"all", "civil", "criminal"} {
		if _, err := ParseScope(valid); err != nil {
			t.Errorf("ParseScope(%q) unexpected error: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "ALL", "both", "civil "} {
		if _, err := ParseScope(invalid); !errors.Is(err, ErrInvalidScope) {
			t.Errorf("ParseScope(%q) err should be ErrInvalidScope", invalid)
		}
	}
}

func TestRawHit_Validate(t *testing.T) {
	valid := RawHit{LawCode: CivilCode, ArticleNo: 218, JoCode: "021800"}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		hit  RawHit
	}{
		{"missing joCode", RawHit{LawCode: CivilCode, ArticleNo: 218}},
		{"missing articleNo", RawHit{LawCode: CivilCode, JoCode: "021800"}},
		{"missing lawCode", RawHit{ArticleNo: 218, JoCode: "021800"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.hit.Validate(); !errors.Is(err, ErrMalformedHit) {
				t.Errorf("err = %v, want ErrMalformedHit", err)
			}
		})
	}
}
