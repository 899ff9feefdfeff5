// Package textproc holds indexing-time text processing for Korean statute
// bodies. Korean has no delimiter-based word boundaries usable for short
// substring recall, so indexed documents carry an auxiliary field of
// character n-grams the engine can match against.
package textproc

import (
	"strings"

	"github.com/lawdex/lawdex/internal/domain"
)

const (
	minGram = 2
	maxGram = 3
)

// BodyNgram derives the searchable n-gram field from article body text:
// every contiguous 2-gram followed by every contiguous 3-gram, over the raw
// rune stream, joined by single spaces in generation order. Whitespace and
// punctuation are valid window content; repeated grams are kept so they still
// contribute to the engine's relevance weighting. The field is never shown to
// users.
func BodyNgram(body string) string {
	runes := []rune(body)
	if len(runes) < minGram {
		return ""
	}

	var b strings.Builder
	// 2-grams then 3-grams: L-1 + L-2 grams, avg gram ~3.5 bytes/rune wide.
	b.Grow(len(body) * 5)

	for n := minGram; n <= maxGram; n++ {
		for i := 0; i+n <= len(runes); i++ {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(string(runes[i : i+n]))
		}
	}

	return b.String()
}

// PrepareForIndexing returns a copy of doc with BodyNgram populated.
func PrepareForIndexing(doc domain.IndexDocument) domain.IndexDocument {
	doc.BodyNgram = BodyNgram(doc.Body)
	return doc
}
