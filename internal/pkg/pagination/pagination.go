package pagination

import (
	"math"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

type Params struct {
	Page  int
	Limit int
}

// FromQuery parses raw query values. Missing or malformed values fall back to
// defaults, the limit is clamped to MaxLimit and the page is clamped so the
// offset stays within int32.
func FromQuery(rawPage, rawLimit string) Params {
	page, err := strconv.Atoi(rawPage)
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit, err := strconv.Atoi(rawLimit)
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)
	page = min(page, math.MaxInt32/limit+1)

	return Params{Page: page, Limit: limit}
}

func (p Params) Offset() uint64 {
	return uint64((p.Page - 1) * p.Limit)
}

type Page[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

func NewPage[T any](items []T, p Params, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Page: p.Page, Limit: p.Limit, Total: total}
}

// Map converts the items of a page, keeping its paging fields.
func Map[T, U any](in Page[T], f func(T) U) Page[U] {
	out := make([]U, len(in.Items))
	for i, item := range in.Items {
		out[i] = f(item)
	}
	return Page[U]{Items: out, Page: in.Page, Limit: in.Limit, Total: in.Total}
}
