package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/festivalmap/festivals/internal/festival"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDate   SortOrder = "date"
	SortByRegion SortOrder = "region"
	SortByName   SortOrder = "name"
)

func parseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(s))); order {
	case SortByDate, SortByRegion, SortByName:
		return order, nil
	default:
		return "", fmt.Errorf("invalid sort order: %s (must be 'date', 'region' or 'name')", s)
	}
}

// sortFestivals sorts records in place by the given order. Ties keep their dataset order.
func sortFestivals(records []*festival.Record, order SortOrder) {
	switch order {
	case SortByDate:
		sort.SliceStable(records, func(i, j int) bool {
			return compareByDate(records[i], records[j])
		})
	case SortByRegion:
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].Location != records[j].Location {
				return records[i].Location < records[j].Location
			}
			return compareByDate(records[i], records[j])
		})
	case SortByName:
		sort.SliceStable(records, func(i, j int) bool {
			a, b := strings.ToLower(records[i].Name), strings.ToLower(records[j].Name)
			if a != b {
				return a < b
			}
			return compareByDate(records[i], records[j])
		})
	}
}

// compareByDate reports whether i starts before j.
// Undated records go last.
func compareByDate(i, j *festival.Record) bool {
	if i.StartDate != "" && j.StartDate != "" {
		return i.StartDate < j.StartDate
	}
	return i.StartDate != "" && j.StartDate == ""
}
