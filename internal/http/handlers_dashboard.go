package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"findash/internal/chart"
	"findash/internal/core"
	"findash/internal/ledger"
	"findash/internal/log"
)

type summaryView struct {
	Income   string
	Expenses string
	Net      string
	Negative bool
}

type headerView struct {
	Label  string
	URL    string
	Active bool
	Marker string
}

type rowView struct {
	ID          int64
	Date        string
	Description string
	Amount      string
	Category    string
	Income      bool
}

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

type tableView struct {
	Query     ledger.Query
	Headers   []headerView
	Rows      []rowView
	Options   []optionView
	Count     int
	Total     int
	Net       string
	NetIncome bool
	ExportURL string
}

type pageData struct {
	Theme     chart.Theme
	NextTheme chart.Theme
	ThemeURL  string
	Mode      string
	Summary   summaryView
	Pie       chart.PieChart
	Bars      chart.BarChart
	Table     tableView
}

func newSummaryView(sum core.Summary) summaryView {
	return summaryView{
		Income:   core.FormatGrouped(sum.TotalIncome),
		Expenses: core.FormatGrouped(sum.TotalExpenses),
		Net:      core.FormatGrouped(sum.NetSavings),
		Negative: sum.NetSavings.IsNegative(),
	}
}

func newTableView(txs []core.Transaction, q ledger.Query, opts []ledger.Option, total int) tableView {
	tv := tableView{
		Query:     q,
		Count:     len(txs),
		Total:     total,
		ExportURL: viewURL("/export/transactions.xlsx", q),
	}
	for _, c := range ledger.Columns() {
		h := headerView{
			Label: c.Label(),
			URL:   viewURL("/ui/transactions", ledger.Query{Search: q.Search, Category: q.Category, Sort: q.Sort.Toggle(c)}),
		}
		if c == q.Sort.Column {
			h.Active = true
			h.Marker = "▼"
			if q.Sort.Direction == ledger.Asc {
				h.Marker = "▲"
			}
		}
		tv.Headers = append(tv.Headers, h)
	}
	for _, o := range opts {
		tv.Options = append(tv.Options, optionView{Value: o.Value, Label: o.Label, Selected: o.Value == q.Category})
	}
	net := decimal.Zero
	for _, t := range txs {
		net = net.Add(t.Amount)
		tv.Rows = append(tv.Rows, rowView{
			ID:          t.ID,
			Date:        t.Date,
			Description: t.Description,
			Amount:      core.FormatAmount(t.Amount),
			Category:    t.Category,
			Income:      t.IsIncome(),
		})
	}
	tv.Net = core.FormatAmount(net)
	tv.NetIncome = !net.IsNegative()
	return tv
}

// handleDashboard renders the main dashboard page
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		NotFoundError("Page not found").Write(w)
		return
	}

	theme := themeFor(w, r)
	q, _ := s.parseView(r)
	active := s.activeSlice(r)

	data := pageData{
		Theme:     theme,
		NextTheme: theme.Next(),
		ThemeURL:  themeURL(q, theme.Next()),
		Mode:      s.data.Mode,
		Summary:   newSummaryView(s.data.Summary),
		Pie:       chart.BuildPie(s.data.Aggregates.Categories, active),
		Bars:      chart.BuildBars(s.data.Aggregates.Monthly, theme),
		Table:     newTableView(s.viewFor(r, q), q, s.data.Options, len(s.data.Transactions)),
	}

	body, err := s.render("dashboard_page", data)
	if err != nil {
		log.FromContext(r.Context()).WithComponent(log.ComponentTemplate).ErrorContext(r.Context(), "Dashboard template execution failed",
			log.FieldOperation, log.OpRender,
			log.FieldError, err)
		http.Error(w, "dashboard unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}

// handlePie returns the category donut with the hovered slice annotated
func (s *Server) handlePie(w http.ResponseWriter, r *http.Request) {
	pie := chart.BuildPie(s.data.Aggregates.Categories, s.activeSlice(r))
	if pie.Label != nil {
		log.FromContext(r.Context()).DebugContext(r.Context(), "Pie slice activated",
			log.FieldActiveSlice, pie.Active,
			log.FieldCategory, pie.Label.Name.Content)
	}
	s.writePartial(w, r, "pie_chart", pie, NewHTMXResponse().TriggerSliceActive(pie.Active))
}

// handleBars returns the monthly income/expense bars in the current theme
func (s *Server) handleBars(w http.ResponseWriter, r *http.Request) {
	s.writePartial(w, r, "bar_chart", chart.BuildBars(s.data.Aggregates.Monthly, themeFor(w, r)), nil)
}

// handleSummary returns the income/expenses/net savings panel
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.writePartial(w, r, "summary_panel", newSummaryView(s.data.Summary), nil)
}

// handleTransactions returns the filtered and sorted transaction table
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	q, fixes := s.parseView(r)
	tv := newTableView(s.viewFor(r, q), q, s.data.Options, len(s.data.Transactions))

	b := NewHTMXResponse().TriggerViewChanged(q).PushURL(viewURL("/", q))
	if len(fixes) > 0 {
		msgs := make([]string, 0, len(fixes))
		for _, f := range fixes {
			msgs = append(msgs, fmt.Sprintf("Ignored %s %q, using %q", f.Field, f.Got, f.Used))
		}
		b.TriggerWarningNotification(strings.Join(msgs, "; "))
	}
	s.writePartial(w, r, "transactions_table", tv, b)
}

// activeSlice reads ?active=, falling back to 0 for malformed or out-of-range indexes.
func (s *Server) activeSlice(r *http.Request) int {
	raw := r.URL.Query().Get("active")
	active, ok := ParseActive(r.URL.Query())
	if !ok {
		s.structured.LogCorrection(r.Context(), "active", raw, "0")
		return 0
	}
	if n := len(s.data.Aggregates.Categories); active > 0 && active >= n {
		s.structured.LogCorrection(r.Context(), "active", strconv.Itoa(active), "0")
		return 0
	}
	return active
}

// themeURL reloads the page for q in theme t.
func themeURL(q ledger.Query, t chart.Theme) string {
	v := viewValues(q)
	v.Set("theme", string(t))
	return "/?" + v.Encode()
}
