package festival

import (
	"sort"
)

// Dedupe collapses references sharing the same name and link, keeping the first
// occurrence and the original order.
func Dedupe(refs []ListItemRef) []ListItemRef {
	seen := make(map[string]bool)
	unique := make([]ListItemRef, 0, len(refs))
	for _, ref := range refs {
		key := ref.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, ref)
	}
	return unique
}

// FilterDated drops records whose period could not be parsed.
func FilterDated(records []*Record) []*Record {
	dated := make([]*Record, 0, len(records))
	for _, r := range records {
		if r.Dated() {
			dated = append(dated, r)
		}
	}
	return dated
}

// FilterActive keeps records that end today or later.
func FilterActive(records []*Record, today string) []*Record {
	active := make([]*Record, 0, len(records))
	for _, r := range records {
		if IsActiveOrUpcoming(r.EndDate, today) {
			active = append(active, r)
		}
	}
	return active
}

// SortByStartDate sorts records ascending by start date.
// Records starting on the same day keep their relative order.
func SortByStartDate(records []*Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].StartDate < records[j].StartDate
	})
}

// AssignIDs numbers records 1..n in their current order.
func AssignIDs(records []*Record) {
	for i, r := range records {
		r.ID = i + 1
	}
}

// Locations returns the sorted distinct locations of records.
func Locations(records []*Record) []string {
	seen := make(map[string]bool)
	locations := make([]string, 0)
	for _, r := range records {
		if seen[r.Location] {
			continue
		}
		seen[r.Location] = true
		locations = append(locations, r.Location)
	}
	sort.Strings(locations)
	return locations
}

// FilterByLocation keeps records whose location equals location exactly.
// An empty location matches every record.
func FilterByLocation(records []*Record, location string) []*Record {
	if location == "" {
		return records
	}
	filtered := make([]*Record, 0)
	for _, r := range records {
		if r.Location == location {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
