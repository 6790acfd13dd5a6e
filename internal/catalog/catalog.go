package catalog

import (
	"github.com/festivalmap/festivals/internal/festival"
)

// DefaultPageSize is used when a request does not name a page size.
const DefaultPageSize = 12

// Catalog is an immutable, ordered festival collection
type Catalog struct {
	records   []*festival.Record
	locations []string
	byID      map[int]*festival.Record
}

// New builds a catalog over records, keeping their order.
func New(records []*festival.Record) *Catalog {
	kept := make([]*festival.Record, len(records))
	copy(kept, records)

	byID := make(map[int]*festival.Record, len(kept))
	for _, r := range kept {
		byID[r.ID] = r
	}

	return &Catalog{
		records:   kept,
		locations: festival.Locations(kept),
		byID:      byID,
	}
}

// Len returns the number of festivals.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Locations returns the sorted distinct regions.
func (c *Catalog) Locations() []string {
	out := make([]string, len(c.locations))
	copy(out, c.locations)
	return out
}

// Get returns the festival with the given id.
func (c *Catalog) Get(id int) (*festival.Record, bool) {
	r, ok := c.byID[id]
	return r, ok
}

// Filter returns the festivals in location, or all of them for "".
func (c *Catalog) Filter(location string) []*festival.Record {
	return festival.FilterByLocation(c.records, location)
}

// PageResult is one page of a filtered listing
type PageResult struct {
	Items      []*festival.Record
	Pagination Pagination
}

// Page filters by location and returns the requested 1-based page.
// Out-of-range pages are clamped; a size below 1 uses DefaultPageSize.
func (c *Catalog) Page(location string, page, size int) PageResult {
	if size < 1 {
		size = DefaultPageSize
	}
	filtered := c.Filter(location)

	totalPages := (len(filtered) + size - 1) / size
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * size
	end := start + size
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return PageResult{
		Items:      filtered[start:end],
		Pagination: Paginate(page, totalPages, size, len(filtered)),
	}
}
