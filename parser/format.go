package parser

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/crude-signals/crude/model"
	"github.com/pkg/errors"
)

// DateFormat is the layout used for every date this service writes.
const DateFormat = "2006-01-02"

// FormatDate renders a date as YYYY-MM-DD, or the empty string for the
// zero time.
func FormatDate(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format(DateFormat)
}

// WritePrices writes the series as a Date,Price CSV that ParsePrices reads
// back unchanged.
func WritePrices(w io.Writer, series model.PriceSeries) error {
	out := csv.NewWriter(w)
	if err := out.Write([]string{"Date", "Price"}); err != nil {
		return errors.Wrap(err, "problem writing price header")
	}

	for _, p := range series {
		if err := out.Write([]string{FormatDate(p.Date), strconv.FormatFloat(p.Price, 'f', -1, 64)}); err != nil {
			return errors.Wrap(err, "problem writing price record")
		}
	}

	out.Flush()
	return errors.Wrap(out.Error(), "problem flushing price csv")
}

// WriteEvents writes events as CSV. Attribute columns follow the fixed
// columns in name order; an event lacking an attribute gets an empty cell.
func WriteEvents(w io.Writer, events []model.Event) error {
	attrs := map[string]struct{}{}
	for _, e := range events {
		for name := range e.Attributes {
			attrs[name] = struct{}{}
		}
	}
	extra := make([]string, 0, len(attrs))
	for name := range attrs {
		extra = append(extra, name)
	}
	sort.Strings(extra)

	out := csv.NewWriter(w)
	header := append([]string{eventDateColumn, eventNameColumn, eventCategoryColumn}, extra...)
	if err := out.Write(header); err != nil {
		return errors.Wrap(err, "problem writing event header")
	}

	for _, e := range events {
		record := make([]string, 0, len(header))
		record = append(record, FormatDate(e.Date), e.Name, e.Category)
		for _, name := range extra {
			record = append(record, e.Attributes[name])
		}
		if err := out.Write(record); err != nil {
			return errors.Wrap(err, "problem writing event record")
		}
	}

	out.Flush()
	return errors.Wrap(out.Error(), "problem flushing event csv")
}
