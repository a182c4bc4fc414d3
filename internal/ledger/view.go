package ledger

import (
	"findash/internal/core"
)

// View is the dashboard's view model: the user-controlled state plus a
// memoized derived transaction list. It is not safe for concurrent use;
// each rendering instance owns one.
type View struct {
	txs     []core.Transaction
	options []Option
	gen     uint64

	query  Query
	active int

	memoKey  string
	memoGen  uint64
	memo     []core.Transaction
	computes int
}

// NewView starts in the default state over txs.
func NewView(txs []core.Transaction) *View {
	v := &View{query: DefaultQuery()}
	v.SetTransactions(txs)
	return v
}

// SetTransactions replaces the source set and its category options.
func (v *View) SetTransactions(txs []core.Transaction) {
	v.txs = txs
	v.options = CategoryOptions(txs)
	v.gen++
}

func (v *View) Query() Query { return v.query }

func (v *View) ActiveSlice() int { return v.active }

func (v *View) Options() []Option { return v.options }

func (v *View) SetSearch(s string) { v.query.Search = LimitSearch(s) }

// SetCategory selects a filter; values not among the options reset to "all".
func (v *View) SetCategory(c string) {
	if !HasCategory(v.options, c) {
		c = AllCategories
	}
	v.query.Category = c
}

// ToggleSort applies a column header click.
func (v *View) ToggleSort(c Column) {
	if !c.IsValid() {
		return
	}
	v.query.Sort = v.query.Sort.Toggle(c)
}

// SortBy clicks the header of s.Column until the view is sorted by s.
// Invalid sorts are ignored.
func (v *View) SortBy(s Sort) {
	if !s.Column.IsValid() || !s.Direction.IsValid() {
		return
	}
	for v.query.Sort != s {
		v.ToggleSort(s.Column)
	}
}

// SetActiveSlice records the hovered pie slice. Negative indexes clamp to 0.
func (v *View) SetActiveSlice(i int) {
	if i < 0 {
		i = 0
	}
	v.active = i
}

// Transactions returns the filtered, sorted list, recomputing only when
// the source set or the query changed since the last call.
func (v *View) Transactions() []core.Transaction {
	key := v.query.Key()
	if v.memo != nil && key == v.memoKey && v.gen == v.memoGen {
		return v.memo
	}
	v.memo = Apply(v.txs, v.query)
	v.memoKey, v.memoGen = key, v.gen
	v.computes++
	return v.memo
}
