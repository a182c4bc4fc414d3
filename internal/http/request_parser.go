// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating request query
// parameters: the table view, API pagination and the active pie slice.

package http

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"findash/internal/ledger"
)

// Pagination bounds for the JSON API.
const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// PageParams holds a validated page request.
type PageParams struct {
	Page int
	Size int
}

// Offset is the index of the first item on the page. It saturates at
// math.MaxInt instead of overflowing for huge page numbers.
func (p PageParams) Offset() int {
	if p.Size > 0 && p.Page-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Size
}

// PageError describes an invalid pagination parameter.
type PageError struct {
	Param string
	Value string
	Msg   string
}

func (e *PageError) Error() string {
	return fmt.Sprintf("%s: %s (got %q)", e.Param, e.Msg, e.Value)
}

// ParseViewParams extracts the raw table view inputs from a query string.
// The search term is passed through untouched since it is matched as typed;
// the other values are only sanitized here and ledger.Normalize validates them.
func ParseViewParams(query url.Values) ledger.Params {
	return ledger.Params{
		Search:    query.Get("q"),
		Category:  sanitizeInput(query.Get("category")),
		Column:    sanitizeInput(query.Get("sort")),
		Direction: sanitizeInput(query.Get("dir")),
	}
}

// ParsePage extracts page (>= 1, default 1) and size (1..MaxPageSize,
// default DefaultPageSize). Out-of-range or non-numeric values are errors.
func ParsePage(query url.Values) (PageParams, error) {
	p := PageParams{Page: 1, Size: DefaultPageSize}

	if v := strings.TrimSpace(query.Get("page")); v != "" {
		n, err := strconv.Atoi(v)
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(v, "-") {
			return p, &PageError{Param: "page", Value: v, Msg: "is too large"}
		}
		if err != nil {
			return p, &PageError{Param: "page", Value: v, Msg: "must be an integer"}
		}
		if n < 1 {
			return p, &PageError{Param: "page", Value: v, Msg: "must be greater than or equal to 1"}
		}
		p.Page = n
	}
	if v := strings.TrimSpace(query.Get("size")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, &PageError{Param: "size", Value: v, Msg: "must be an integer"}
		}
		if n < 1 || n > MaxPageSize {
			return p, &PageError{Param: "size", Value: v, Msg: fmt.Sprintf("must be between 1 and %d", MaxPageSize)}
		}
		p.Size = n
	}
	return p, nil
}

// ParseActive reads the hovered pie slice index. ok is false when the value
// is present but not a non-negative integer; the index is then 0.
func ParseActive(query url.Values) (index int, ok bool) {
	v := strings.TrimSpace(query.Get("active"))
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequireGET is a convenience function for GET-only handlers.
func RequireGET(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodGet)
}
