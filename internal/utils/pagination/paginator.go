// Package pagination slices an in-memory ordered collection into pages,
// independent of where the collection came from.
package pagination

// DefaultPageSize is used when a paginator is created with a non-positive
// page size.
const DefaultPageSize = 10

// Paginator derives a visible page of items from 1-based page/size state.
// Out-of-range requests are clamped, never errors, and the visible slice is
// recomputed deterministically from (items, page, size) on every call: if the
// collection shrinks below the current page, the page self-heals to 1.
type Paginator[T any] struct {
	items    []T
	page     int
	pageSize int
}

// New creates a paginator over items, starting at page 1. The items slice is
// referenced, not copied; callers may swap it with SetItems.
func New[T any](items []T, pageSize int) *Paginator[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Paginator[T]{items: items, page: 1, pageSize: pageSize}
}

// SetItems replaces the underlying collection. The current page is kept and
// self-heals on the next derivation if it is now out of range.
func (p *Paginator[T]) SetItems(items []T) {
	p.items = items
}

// TotalItems returns the size of the underlying collection.
func (p *Paginator[T]) TotalItems() int {
	return len(p.items)
}

// TotalPages returns the number of pages, at least 1 even when empty.
func (p *Paginator[T]) TotalPages() int {
	if len(p.items) == 0 {
		return 1
	}
	return (len(p.items) + p.pageSize - 1) / p.pageSize
}

// PageSize returns the current page size.
func (p *Paginator[T]) PageSize() int {
	return p.pageSize
}

// SetPageSize changes the page density and resets to page 1, since the prior
// page offset is meaningless under a new size.
func (p *Paginator[T]) SetPageSize(size int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	p.pageSize = size
	p.page = 1
}

// CurrentPage returns the clamped, self-healed current page.
func (p *Paginator[T]) CurrentPage() int {
	p.heal()
	return p.page
}

// SetCurrentPage clamps page into [1, TotalPages].
func (p *Paginator[T]) SetCurrentPage(page int) {
	p.page = clamp(page, 1, p.TotalPages())
}

// GoToFirstPage moves to page 1.
func (p *Paginator[T]) GoToFirstPage() { p.SetCurrentPage(1) }

// GoToLastPage moves to the final page.
func (p *Paginator[T]) GoToLastPage() { p.SetCurrentPage(p.TotalPages()) }

// GoToNextPage advances one page, clamped at the end.
func (p *Paginator[T]) GoToNextPage() { p.SetCurrentPage(p.CurrentPage() + 1) }

// GoToPreviousPage steps back one page, clamped at the start.
func (p *Paginator[T]) GoToPreviousPage() { p.SetCurrentPage(p.CurrentPage() - 1) }

// Page returns the visible slice for the current page.
func (p *Paginator[T]) Page() []T {
	p.heal()
	start := (p.page - 1) * p.pageSize
	if start >= len(p.items) {
		return nil
	}
	end := start + p.pageSize
	if end > len(p.items) {
		end = len(p.items)
	}
	return p.items[start:end]
}

// heal resets the page to 1 when the collection shrank underneath it.
func (p *Paginator[T]) heal() {
	if p.page > p.TotalPages() {
		p.page = 1
	}
	if p.page < 1 {
		p.page = 1
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
