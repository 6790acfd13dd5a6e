package catalog

import (
	"github.com/festivalmap/festivals/internal/festival"
)

// View is a festival as shown on a card
type View struct {
	festival.Record
	DaysText   string `json:"daysText"`
	Ongoing    bool   `json:"ongoing"`
	TimeText   string `json:"timeText"`
	StartLabel string `json:"startLabel"`
	EndLabel   string `json:"endLabel"`
	Fee        string `json:"fee"`
}

// NewView derives the display fields of r relative to today.
func NewView(r *festival.Record, today string) View {
	return View{
		Record:     *r,
		DaysText:   festival.StatusText(r, today),
		Ongoing:    festival.IsOngoing(r.StartDate, r.EndDate, today),
		TimeText:   r.TimeText(),
		StartLabel: festival.FormatDate(r.StartDate),
		EndLabel:   festival.FormatDate(r.EndDate),
		Fee:        festival.FormatFee(r.FeeText),
	}
}

// Views converts records in order.
func Views(records []*festival.Record, today string) []View {
	views := make([]View, 0, len(records))
	for _, r := range records {
		views = append(views, NewView(r, today))
	}
	return views
}
