// Package chi exposes the search, article, and health use cases over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lawdex/lawdex/internal/domain"
	articleuc "github.com/lawdex/lawdex/internal/usecase/article"
	healthuc "github.com/lawdex/lawdex/internal/usecase/health"
	searchuc "github.com/lawdex/lawdex/internal/usecase/search"
)

const (
	defaultLimit = 10
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers.
type Server struct {
	search        *searchuc.Service
	articles      *articleuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	articles *articleuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:   search,
		articles: articles,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, "invalid_query"),
		sentinelHandler(domain.ErrInvalidScope, http.StatusBadRequest, "invalid_scope"),
		sentinelHandler(domain.ErrInvalidLimit, http.StatusBadRequest, "invalid_limit"),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, "not_found"),
		sentinelHandler(domain.ErrIndexNotFound, http.StatusInternalServerError, "index_not_found"),
		sentinelHandler(domain.ErrAllIndicesUnavailable, http.StatusBadGateway, "all_indices_unavailable"),
		sentinelHandler(domain.ErrIndexUnavailable, http.StatusBadGateway, "index_unavailable"),
		sentinelHandler(domain.ErrMalformedHit, http.StatusInternalServerError, "malformed_hit"),
	}
	return s
}

// Register mounts all routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/search", s.Search)
	r.Get("/laws", s.Laws)
	r.Get("/laws/{lawCode}/articles/{articleNo}", s.Article)
	r.Get("/laws/{lawCode}/articles/by-jo/{joCode}", s.ArticleByJoCode)
	r.Get("/health", s.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// Search handles GET /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	scope := domain.ScopeAll
	if raw := r.URL.Query().Get("scope"); raw != "" {
		var err error
		scope, err = domain.ParseScope(raw)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
	}

	limit, err := intParam(r, "limit", defaultLimit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	strict := boolParam(r, "strict")

	res, err := s.search.Search(r.Context(), q, scope, limit, offset, strict)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	hits := make([]searchHit, len(res.Hits))
	for i, h := range res.Hits {
		hits[i] = searchHitFromDomain(h)
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Query:  res.Query.RawText,
		Scope:  string(scope),
		Limit:  res.Limit,
		Offset: res.Offset,
		Hits:   hits,
		Count:  res.Count,
	})
}

// Laws handles GET /laws.
func (s *Server) Laws(w http.ResponseWriter, r *http.Request) {
	laws, err := s.articles.Laws(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]lawOut, len(laws))
	for i, l := range laws {
		items[i] = lawOut{Code: l.Code, NameKo: l.NameKo}
	}
	writeJSON(w, http.StatusOK, items)
}

// Article handles GET /laws/{lawCode}/articles/{articleNo}?subNo=N.
func (s *Server) Article(w http.ResponseWriter, r *http.Request) {
	lawCode := chi.URLParam(r, "lawCode")

	articleNo, err := strconv.Atoi(chi.URLParam(r, "articleNo"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_article_no", "articleNo must be an integer")
		return
	}

	subNo := 0
	if raw := r.URL.Query().Get("subNo"); raw != "" {
		subNo, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_article_no", "subNo must be an integer")
			return
		}
	}

	a, err := s.articles.Get(r.Context(), lawCode, articleNo, subNo)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, articleFromDomain(a))
}

// ArticleByJoCode handles GET /laws/{lawCode}/articles/by-jo/{joCode}.
func (s *Server) ArticleByJoCode(w http.ResponseWriter, r *http.Request) {
	lawCode := chi.URLParam(r, "lawCode")
	joCode := chi.URLParam(r, "joCode")

	a, err := s.articles.GetByJoCode(r.Context(), lawCode, joCode)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, articleFromDomain(a))
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// --- Parameter parsing ---

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewInvalidParam(domain.ErrInvalidLimit, name, raw)
	}
	return v, nil
}

func boolParam(r *http.Request, name string) bool {
	switch r.URL.Query().Get(name) {
	case "true", "1":
		return true
	}
	return false
}

// --- Response writing ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err, err.Error()) {
			return
		}
	}

	s.logger.Error("unhandled error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
