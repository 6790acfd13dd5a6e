package catalog

// WindowSize is how many page numbers are shown around the current page.
const WindowSize = 5

// Pagination describes page navigation for a listing
type Pagination struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int   `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
	Pages      []int `json:"pages"`

	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`

	// ShowFirst is set when page 1 is outside the window and gets its own link;
	// LeadingEllipsis when pages between it and the window are hidden.
	ShowFirst       bool `json:"showFirst"`
	LeadingEllipsis bool `json:"leadingEllipsis"`
	// ShowLast and TrailingEllipsis mirror them for the last page.
	ShowLast         bool `json:"showLast"`
	TrailingEllipsis bool `json:"trailingEllipsis"`
}

// PageWindow returns the page numbers to display for current out of total.
// Up to WindowSize pages are shown, centered on current where possible.
func PageWindow(current, total int) []int {
	if total < 1 {
		return []int{}
	}

	var from, to int
	switch {
	case total <= WindowSize:
		from, to = 1, total
	case current <= 3:
		from, to = 1, WindowSize
	case current >= total-2:
		from, to = total-WindowSize+1, total
	default:
		from, to = current-2, current+2
	}

	pages := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		pages = append(pages, i)
	}
	return pages
}

// Paginate builds the navigation block for page current of total.
func Paginate(current, total, size, items int) Pagination {
	pages := PageWindow(current, total)
	p := Pagination{
		Page:        current,
		Size:        size,
		TotalItems:  items,
		TotalPages:  total,
		Pages:       pages,
		HasPrevious: current > 1,
		HasNext:     current < total,
	}
	if len(pages) == 0 {
		return p
	}

	first, last := pages[0], pages[len(pages)-1]
	p.ShowFirst = first > 1
	p.LeadingEllipsis = first > 2
	p.ShowLast = last < total
	p.TrailingEllipsis = last < total-1
	return p
}
