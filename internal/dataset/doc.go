// Package dataset persists the festival collection produced by a scrape run.
//
// Each run writes two files into the data directory, both replaced atomically
// (temporary file plus rename) so a failed run leaves the previous dataset intact:
//
//   - festivals.js, an ES module exporting the festivals array and a getLocations
//     helper, consumed by the web UI;
//   - festivals.json, the same records as a JSON array, read back by the UI server
//     and by the next run to report what changed.
//
// The default location is ./data.
package dataset
