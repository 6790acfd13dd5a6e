// Package catalog serves a loaded festival dataset to the UI: region filtering,
// page slicing with a five-number page window, and display views carrying the
// status badge, formatted dates and fee text.
//
// A Catalog is built once from the dataset and never modified, so it can be
// shared by concurrent request handlers.
package catalog
