// Package cli implements the festivals command-line interface.
//
// Running festivals with no arguments performs a full scrape of the MCST festival
// listings and rewrites the dataset, printing a summary of what was collected and
// what changed since the previous run. The serve subcommand exposes the dataset to
// the web UI over HTTP; list prints it in the terminal as text or JSON.
package cli
