package http

import (
	"bytes"
	"net/http"
	"strconv"

	"findash/internal/export"
	"findash/internal/log"
)

// handleExport downloads the current table view as an XLSX workbook
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q, _ := s.parseView(r)
	txs := s.viewFor(r, q)

	var buf bytes.Buffer
	if err := export.Write(&buf, txs, q, s.data.Aggregates); err != nil {
		s.structured.LogError(r.Context(), "Workbook export failed", err, log.ComponentExport, log.OpExport,
			log.NewFields().WithView(q.Search, q.Category, string(q.Sort.Column), string(q.Sort.Direction)))
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	log.FromContext(r.Context()).InfoContext(r.Context(), "Workbook exported",
		log.FieldOperation, log.OpExport,
		log.FieldRows, len(txs))

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}
