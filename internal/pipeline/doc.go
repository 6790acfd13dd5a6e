// Package pipeline runs one complete scrape: crawl the list pages, fetch every
// unique festival's detail page, keep the dated festivals that have not ended,
// order and number them, and overwrite the dataset.
package pipeline
