package parser

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
)

// dayFirstLayouts are tried in order before falling back to dateparse.
// Slash and dot separated numeric dates are read day-first.
var dayFirstLayouts = []string{
	"2006-01-02",
	"02-Jan-06",
	"2-Jan-06",
	"02-Jan-2006",
	"2-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02/01/2006",
	"2/1/2006",
	"02.01.2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDate reads a calendar date written in any of the formats found in
// the price and event sources and truncates it to the UTC day.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty date")
	}

	for _, layout := range dayFirstLayouts {
		if ts, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return utility.GetUTCDay(ts), nil
		}
	}

	ts, err := dateparse.ParseIn(value, time.UTC, dateparse.PreferMonthFirst(false))
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "unrecognized date '%s'", value)
	}

	return utility.GetUTCDay(ts), nil
}

// ParseOptionalDate parses a query-string style bound. Empty or
// unparseable values are reported as absent rather than as errors.
func ParseOptionalDate(value string) *time.Time {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	ts, err := ParseDate(value)
	if err != nil {
		return nil
	}

	return &ts
}
