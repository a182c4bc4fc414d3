package http

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"findash/internal/chart"
	"findash/internal/core"
	"findash/internal/ledger"
	"findash/internal/log"
)

const themeCookie = "theme"

var templateFuncs = template.FuncMap{
	"amount":  core.FormatAmount,
	"grouped": core.FormatGrouped,
	"plain":   core.FormatPlain,
}

// sanitizeInput removes control characters (except tab/newline) and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// themeFor resolves the page theme. An explicit ?theme= wins and is
// remembered in a cookie; otherwise the cookie is used.
func themeFor(w http.ResponseWriter, r *http.Request) chart.Theme {
	if v := r.URL.Query().Get("theme"); v != "" {
		t := chart.ParseTheme(v)
		http.SetCookie(w, &http.Cookie{
			Name:     themeCookie,
			Value:    string(t),
			Path:     "/",
			MaxAge:   int((365 * 24 * time.Hour).Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		return t
	}
	if c, err := r.Cookie(themeCookie); err == nil {
		return chart.ParseTheme(c.Value)
	}
	return chart.ThemeLight
}

// parseView normalizes the request's view params, logging every correction.
func (s *Server) parseView(r *http.Request) (ledger.Query, []ledger.Correction) {
	q, fixes := s.data.Query(ParseViewParams(r.URL.Query()))
	for _, f := range fixes {
		s.structured.LogCorrection(r.Context(), f.Field, f.Got, f.Used)
	}
	return q, fixes
}

// viewFor returns the filtered and sorted transactions for q, memoized by q.Key.
func (s *Server) viewFor(r *http.Request, q ledger.Query) []core.Transaction {
	txs, hit := s.viewCache.GetOrCompute(q.Key(), func() []core.Transaction {
		return ledger.Apply(s.data.Transactions, q)
	})
	s.structured.LogViewComputed(r.Context(), q.Search, q.Category,
		string(q.Sort.Column), string(q.Sort.Direction), len(txs), hit)
	return txs
}

// viewValues encodes q as query parameters, omitting defaults.
func viewValues(q ledger.Query) url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Category != "" && q.Category != ledger.AllCategories {
		v.Set("category", q.Category)
	}
	if q.Sort != ledger.DefaultSort {
		v.Set("sort", string(q.Sort.Column))
		v.Set("dir", string(q.Sort.Direction))
	}
	return v
}

// viewURL is path with q encoded as its query string.
func viewURL(path string, q ledger.Query) string {
	if enc := viewValues(q).Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

// render executes a template into a buffer so a failure can still produce
// a clean error placeholder instead of a half-written page.
func (s *Server) render(name string, data any) ([]byte, error) {
	if s.templates == nil {
		return nil, errTemplatesNotLoaded
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writePartial renders a template as an HTMX partial. b may carry triggers.
func (s *Server) writePartial(w http.ResponseWriter, r *http.Request, name string, data any, b *HTMXResponseBuilder) {
	body, err := s.render(name, data)
	if err != nil {
		log.FromContext(r.Context()).WithComponent(log.ComponentTemplate).ErrorContext(r.Context(), "Template execution failed",
			log.FieldOperation, log.OpRender,
			"template", name,
			log.FieldError, err)
		InternalServerError("This panel could not be rendered.").
			TriggerErrorNotification("Rendering failed").
			Write(w)
		return
	}
	if b == nil {
		b = NewHTMXResponse()
	}
	b.HTML(body).Write(w)
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to encode JSON response", log.FieldError, err)
	}
}
