// Package festival provides the festival record types and the normalization rules
// applied to them.
//
// The festival package turns the free text scraped from the MCST festival pages into
// comparable values: Korean period strings become ISO calendar dates, region text
// becomes a short display token, and fee text becomes a display-ready summary. It also
// holds the collection rules shared by the pipeline and the UI: deduplication of list
// references, the active/upcoming filter, the start-date sort and dense id assignment.
package festival
