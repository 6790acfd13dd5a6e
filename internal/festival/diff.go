package festival

import "sort"

// DiffResult contains the festivals that appeared or disappeared between two runs
type DiffResult struct {
	Added   []*Record
	Removed []*Record
}

// Diff compares the previous dataset with the current one by detail page URL.
// A nil previous dataset makes every current record new.
func Diff(previous, current []*Record) *DiffResult {
	result := &DiffResult{
		Added:   make([]*Record, 0),
		Removed: make([]*Record, 0),
	}

	prev := make(map[string]bool, len(previous))
	for _, r := range previous {
		prev[r.McstURL] = true
	}
	cur := make(map[string]bool, len(current))
	for _, r := range current {
		cur[r.McstURL] = true
		if !prev[r.McstURL] {
			result.Added = append(result.Added, r)
		}
	}
	for _, r := range previous {
		if !cur[r.McstURL] {
			result.Removed = append(result.Removed, r)
		}
	}

	// Removed festivals come from the previous file; order them by name for output
	sort.Slice(result.Removed, func(i, j int) bool {
		return result.Removed[i].Name < result.Removed[j].Name
	})

	return result
}

// Changed reports whether the two runs differ in membership.
func (d *DiffResult) Changed() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0
}
