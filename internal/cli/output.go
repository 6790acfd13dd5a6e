package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/festivalmap/festivals/internal/dataset"
	"github.com/festivalmap/festivals/internal/festival"
	"github.com/festivalmap/festivals/internal/pipeline"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// FestivalRef identifies a festival in a change list
type FestivalRef struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Period   string `json:"period,omitempty"`
	URL      string `json:"mcstUrl"`
}

// ScrapeSummary contains the outcome of one scrape run
type ScrapeSummary struct {
	RunID      string        `json:"run_id"`
	CheckedAt  time.Time     `json:"checked_at"`
	Today      string        `json:"today"`
	Listed     int           `json:"listed"`
	Unique     int           `json:"unique"`
	Fetched    int           `json:"fetched"`
	Failed     int           `json:"failed"`
	Undated    int           `json:"undated"`
	Expired    int           `json:"expired"`
	Emitted    int           `json:"emitted"`
	Locations  []string      `json:"locations"`
	Added      []FestivalRef `json:"added"`
	Removed    []FestivalRef `json:"removed"`
	ModulePath string        `json:"module_path,omitempty"`
	JSONPath   string        `json:"json_path,omitempty"`
	Duration   string        `json:"duration"`
}

// NewScrapeSummary builds the printable summary of a pipeline result.
// store may be nil when the output paths are unknown.
func NewScrapeSummary(runID string, result *pipeline.Result, store *dataset.Store) *ScrapeSummary {
	s := &ScrapeSummary{
		RunID:     runID,
		CheckedAt: time.Now().UTC(),
		Today:     result.Today,
		Listed:    result.Listed,
		Unique:    result.Unique,
		Fetched:   result.Fetched,
		Failed:    result.Failed,
		Undated:   result.Undated,
		Expired:   result.Expired,
		Emitted:   result.Emitted,
		Locations: festival.Locations(result.Records),
		Added:     []FestivalRef{},
		Removed:   []FestivalRef{},
		Duration:  result.Duration.Round(time.Millisecond).String(),
	}
	if result.Diff != nil {
		s.Added = refs(result.Diff.Added)
		s.Removed = refs(result.Diff.Removed)
	}
	if store != nil {
		s.ModulePath = store.ModulePath()
		s.JSONPath = store.JSONPath()
	}
	return s
}

func refs(records []*festival.Record) []FestivalRef {
	out := make([]FestivalRef, 0, len(records))
	for _, r := range records {
		out = append(out, FestivalRef{
			Name:     r.Name,
			Location: r.Location,
			Period:   periodOf(r),
			URL:      r.McstURL,
		})
	}
	return out
}

func periodOf(r *festival.Record) string {
	if !r.Dated() {
		return ""
	}
	if r.StartDate == r.EndDate {
		return r.StartDate
	}
	return r.StartDate + " ~ " + r.EndDate
}

// WriteSummary writes the scrape summary in the specified format
func WriteSummary(w io.Writer, summary *ScrapeSummary, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, summary)
	case FormatText:
		return writeSummaryText(w, summary, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs v as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}

func writeSummaryText(w io.Writer, s *ScrapeSummary, verbose bool) error {
	fmt.Fprintf(w, "Collected %d festivals across %d regions (as of %s)\n", s.Emitted, len(s.Locations), s.Today)
	fmt.Fprintf(w, "  listed %d, unique %d, fetched %d, failed %d\n", s.Listed, s.Unique, s.Fetched, s.Failed)
	fmt.Fprintf(w, "  dropped %d undated, %d ended\n", s.Undated, s.Expired)

	if len(s.Added) == 0 && len(s.Removed) == 0 {
		fmt.Fprintln(w, "No changes since the previous run.")
	} else {
		for _, f := range s.Added {
			writeRef(w, "NEW", f, verbose)
		}
		for _, f := range s.Removed {
			writeRef(w, "GONE", f, verbose)
		}
		fmt.Fprintf(w, "\n%d added, %d removed\n", len(s.Added), len(s.Removed))
	}

	if verbose {
		fmt.Fprintf(w, "\nWrote %s\n", s.ModulePath)
		fmt.Fprintf(w, "Wrote %s\n", s.JSONPath)
		fmt.Fprintf(w, "Finished in %s\n", s.Duration)
	}
	return nil
}

func writeRef(w io.Writer, prefix string, f FestivalRef, verbose bool) {
	if f.Location != "" {
		fmt.Fprintf(w, "%s (%s): %s\n", prefix, f.Location, f.Name)
	} else {
		fmt.Fprintf(w, "%s: %s\n", prefix, f.Name)
	}
	if verbose {
		if f.Period != "" {
			fmt.Fprintf(w, "     Period: %s\n", f.Period)
		}
		fmt.Fprintf(w, "     URL: %s\n", f.URL)
	}
}

// WriteFestivals writes a festival listing in the specified format
func WriteFestivals(w io.Writer, records []*festival.Record, format OutputFormat, verbose bool, today string) error {
	switch format {
	case FormatJSON:
		if records == nil {
			records = []*festival.Record{}
		}
		return writeJSON(w, records)
	case FormatText:
		return writeFestivalsText(w, records, verbose, today)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeFestivalsText(w io.Writer, records []*festival.Record, verbose bool, today string) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No festivals found.")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(w, "%s: %s\n", r.Location, r.Name)
		if p := periodOf(r); p != "" {
			fmt.Fprintf(w, "     %s (%s)\n", p, festival.StatusText(r, today))
		}
		if verbose {
			if r.Address != "" {
				fmt.Fprintf(w, "     Address: %s\n", r.Address)
			}
			if fee := festival.FormatFee(r.FeeText); fee != "" {
				fmt.Fprintf(w, "     Fee: %s\n", strings.ReplaceAll(fee, "\n", " / "))
			}
			if r.HomepageURL != "" {
				fmt.Fprintf(w, "     Homepage: %s\n", r.HomepageURL)
			}
			fmt.Fprintf(w, "     URL: %s\n", r.McstURL)
		}
	}
	fmt.Fprintf(w, "\nTotal: %d festivals\n", len(records))
	return nil
}
