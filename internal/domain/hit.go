package domain

// RawHit is one engine hit after gateway normalization. RankingScore is the
// engine's native relevance score, propagated unmodified.
type RawHit struct {
	LawCode      string
	Index        string
	ArticleNo    int
	ArticleSubNo int
	JoCode       string
	Heading      string
	Body         string
	RankingScore float64
}

// Validate fails with ErrMalformedHit when required fields are missing, so a
// broken document is never scored with defaults.
func (h RawHit) Validate() error {
	if h.JoCode == "" || h.ArticleNo <= 0 || h.LawCode == "" {
		return ErrMalformedHit
	}
	return nil
}

// Bonus holds the deterministic score components added on top of the engine
// score, kept separate for testability.
type Bonus struct {
	JoCode    float64
	ArticleNo float64
	Heading   float64
}

// Total sums the bonus components.
func (b Bonus) Total() float64 { return b.JoCode + b.ArticleNo + b.Heading }

// ScoredHit is a RawHit plus the application-level score.
type ScoredHit struct {
	RawHit
	AppScore float64
	Bonus    Bonus
}
