package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/lawdex/lawdex/internal/engine"
)

// Search runs a ranked full-text search via FT.SEARCH WITHSCORES.
func (s *Store) Search(ctx context.Context, q *engine.TextQuery) (*engine.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Text == "" && len(q.Exact) == 0 {
		return nil, fmt.Errorf("query is required")
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	queryStr := buildQuery(q)

	args := []string{q.IndexName, queryStr,
		"WITHSCORES",
		"LIMIT", "0", strconv.Itoa(q.Limit),
		"DIALECT", "2",
	}

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		if isRedisErr(err, "no such index") || isRedisErr(err, "unknown index name") {
			return nil, engine.ErrIndexNotFound
		}
		return nil, &engine.Error{Op: engine.OpSearch, Err: err}
	}

	return parseSearchResult(raw)
}

// buildQuery assembles the FT.SEARCH query string. Exact clauses form one
// AND-group unioned with the free-text clause so exact hits always survive
// tokenization.
func buildQuery(q *engine.TextQuery) string {
	var textPart string
	if q.Text != "" {
		fields := strings.Join(q.TextFields, "|")
		if fields == "" {
			textPart = fmt.Sprintf("(%s)", escapeQuery(q.Text))
		} else {
			textPart = fmt.Sprintf("@%s:(%s)", fields, escapeQuery(q.Text))
		}
	}

	if len(q.Exact) == 0 {
		return textPart
	}

	parts := make([]string, 0, len(q.Exact))
	for _, m := range q.Exact {
		if m.Tag != "" {
			parts = append(parts, fmt.Sprintf("@%s:{%s}", m.Field, tagEscaper.Replace(m.Tag)))
		} else {
			parts = append(parts, fmt.Sprintf("@%s:[%d %d]", m.Field, m.Value, m.Value))
		}
	}
	exactPart := "(" + strings.Join(parts, " ") + ")"

	if textPart == "" {
		return exactPart
	}
	return fmt.Sprintf("%s | %s", exactPart, textPart)
}

// parseSearchResult parses the WITHSCORES reply.
// 3-stride: [total, key1, score1, fields1, key2, score2, fields2, ...]
func parseSearchResult(raw []rueidis.RedisMessage) (*engine.SearchResult, error) {
	if len(raw) == 0 {
		return &engine.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &engine.SearchResult{}, nil
	}

	// Total counts every match in the index; the reply itself holds at most
	// LIMIT entries, so size from the reply.
	entries := make([]engine.SearchEntry, 0, len(raw)/3)
	for i := 1; i+2 < len(raw); i += 3 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		scoreStr, err := raw[i+1].ToString()
		if err != nil {
			continue
		}
		score, err := strconv.ParseFloat(scoreStr, 64)
		if err != nil {
			continue
		}

		fields, err := raw[i+2].ToArray()
		if err != nil {
			continue
		}

		entries = append(entries, engine.SearchEntry{
			Key:    key,
			Score:  score,
			Fields: parseFieldPairs(fields),
		})
	}

	return &engine.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// --- Query escaping ---

func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
)

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	" ", "\\ ",
)
