package domain

import "math"

const (
	DefaultLimit = 10
	MaxLimit     = 50
	DefaultPage  = 1
	MaxSearchLen = 100

	// MaxOffset keeps offset+limit and page arithmetic inside int.
	MaxOffset = math.MaxInt - MaxLimit
	// MaxPage is the largest page whose offset fits MaxOffset at any allowed limit.
	MaxPage = MaxOffset/MaxLimit + 1
)

type SelectorKind int

const (
	SelectorPage SelectorKind = iota
	SelectorSkip
)

// PageSelector locates a window either by page number or by raw skip count.
type PageSelector struct {
	Kind SelectorKind
	Page int
	Skip int
}

func PageAt(page int) PageSelector {
	return PageSelector{Kind: SelectorPage, Page: page}
}

func SkipBy(skip int) PageSelector {
	return PageSelector{Kind: SelectorSkip, Skip: skip}
}

// Offset returns the number of leading records to skip, saturating at MaxOffset.
func (p PageSelector) Offset(limit int) int {
	if p.Kind == SelectorSkip {
		return min(max(p.Skip, 0), MaxOffset)
	}
	if p.Page <= 1 || limit <= 0 {
		return 0
	}
	if p.Page-1 > MaxOffset/limit {
		return MaxOffset
	}
	return (p.Page - 1) * limit
}

// CurrentPage reports the 1-based page the selector falls on.
func (p PageSelector) CurrentPage(limit int) int {
	if p.Kind == SelectorSkip {
		return min(max(p.Skip, 0), MaxOffset)/limit + 1
	}
	return p.Page
}

// ListQuery is one validated listing request.
type ListQuery struct {
	Filter   TaskFilter
	Selector PageSelector
	Limit    int
}

type PaginationInfo struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int64
	HasNextPage bool
	HasPrevPage bool
}

// NewPaginationInfo derives the page metadata from the total count.
func NewPaginationInfo(currentPage, limit int, totalItems int64) PaginationInfo {
	totalPages := 0
	if totalItems > 0 {
		totalPages = int((totalItems + int64(limit) - 1) / int64(limit))
	}

	return PaginationInfo{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasNextPage: currentPage < totalPages,
		HasPrevPage: currentPage > 1,
	}
}

type ListResult struct {
	Items      []*Task
	Pagination PaginationInfo
}
