package http

import (
	"errors"
	"net/http"

	"findash/internal/core"
	"findash/internal/log"
)

// transactionPage is a paginated response body: one page of items plus the
// total and page count.
type transactionPage struct {
	Items []core.Transaction `json:"items"`
	Total int                `json:"total"`
	Page  int                `json:"page"`
	Size  int                `json:"size"`
	Pages int                `json:"pages"`
}

type validationDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type categoryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// handleAPITransactions returns one page of the filtered and sorted view
func (s *Server) handleAPITransactions(w http.ResponseWriter, r *http.Request) {
	page, err := ParsePage(r.URL.Query())
	if err != nil {
		var pe *PageError
		if errors.As(err, &pe) {
			log.FromContext(r.Context()).WarnContext(r.Context(), "Invalid pagination parameter",
				log.FieldParam, pe.Param,
				log.FieldGot, pe.Value,
				log.FieldError, err)
			writeJSON(w, r, http.StatusUnprocessableEntity, map[string]any{
				"detail": []validationDetail{{Loc: []string{"query", pe.Param}, Msg: pe.Msg, Type: "value_error"}},
			})
			return
		}
		writeJSON(w, r, http.StatusBadRequest, map[string]any{"detail": err.Error()})
		return
	}

	q, _ := s.parseView(r)
	txs := s.viewFor(r, q)

	body := transactionPage{
		Items: []core.Transaction{},
		Total: len(txs),
		Page:  page.Page,
		Size:  page.Size,
		Pages: (len(txs) + page.Size - 1) / page.Size,
	}
	if start := page.Offset(); start < len(txs) {
		end := min(start+page.Size, len(txs))
		body.Items = txs[start:end]
	}
	writeJSON(w, r, http.StatusOK, body)
}

// handleAPICategories returns the category filter options, "all" first
func (s *Server) handleAPICategories(w http.ResponseWriter, r *http.Request) {
	opts := make([]categoryOption, 0, len(s.data.Options))
	for _, o := range s.data.Options {
		opts = append(opts, categoryOption{Value: o.Value, Label: o.Label})
	}
	writeJSON(w, r, http.StatusOK, opts)
}

// handleAPIAggregates returns the chart projections and the summary panel totals
func (s *Server) handleAPIAggregates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"mode":       s.data.Mode,
		"categories": s.data.Aggregates.Categories,
		"monthly":    s.data.Aggregates.Monthly,
		"summary":    s.data.Summary,
	})
}
