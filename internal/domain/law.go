package domain

// Law is an immutable reference entity identifying one statute corpus.
type Law struct {
	Code   string
	NameKo string
}

// Law codes. Exactly two corpora exist.
const (
	CivilCode    = "CIVIL_CODE"
	CriminalCode = "CRIMINAL_CODE"
)

// Laws returns the fixed law instances in canonical order.
func Laws() []Law {
	return []Law{
		{Code: CivilCode, NameKo: "민법"},
		{Code: CriminalCode, NameKo: "형법"},
	}
}

// Scope selects the subset of corpora a search targets.
type Scope string

const (
	// ScopeAll targets both the civil and criminal indices.
	ScopeAll Scope = "all"
	// ScopeCivil targets the civil index only.
	ScopeCivil Scope = "civil"
	// ScopeCriminal targets the criminal index only.
	ScopeCriminal Scope = "criminal"
)

// ParseScope validates a raw scope string.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeAll, ScopeCivil, ScopeCriminal:
		return Scope(s), nil
	}
	return "", NewInvalidParam(ErrInvalidScope, "scope", s)
}
