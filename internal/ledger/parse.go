package ledger

import "strings"

// Correction records a raw input value that was replaced during Normalize.
type Correction struct {
	Field string
	Got   string
	Used  string
}

// Params are view inputs as they arrive from a URL or command line.
type Params struct {
	Search    string
	Category  string
	Column    string
	Direction string
}

// Normalize turns raw params into a valid Query against the given category
// options. Unknown columns fall back to DefaultSort, unknown directions to
// ascending for a non-default column, unknown categories to "all".
func Normalize(p Params, opts []Option) (Query, []Correction) {
	var fixes []Correction
	q := Query{Search: LimitSearch(p.Search), Category: AllCategories, Sort: DefaultSort}

	if cat := strings.TrimSpace(p.Category); cat != "" {
		if HasCategory(opts, cat) {
			q.Category = cat
		} else {
			fixes = append(fixes, Correction{Field: "category", Got: cat, Used: AllCategories})
		}
	}

	col := Column(strings.ToLower(strings.TrimSpace(p.Column)))
	dir := Direction(strings.ToLower(strings.TrimSpace(p.Direction)))
	switch {
	case col == "":
		if dir.IsValid() {
			q.Sort.Direction = dir
		}
	case !col.IsValid():
		fixes = append(fixes, Correction{Field: "sort", Got: string(col), Used: string(DefaultSort.Column)})
	default:
		q.Sort.Column = col
		switch {
		case dir.IsValid():
			q.Sort.Direction = dir
		case col == DefaultSort.Column:
			q.Sort.Direction = DefaultSort.Direction
		default:
			q.Sort.Direction = Asc
		}
		if dir != "" && !dir.IsValid() {
			fixes = append(fixes, Correction{Field: "dir", Got: string(dir), Used: string(q.Sort.Direction)})
		}
	}
	return q, fixes
}
