package parser

import (
	"io"

	"github.com/crude-signals/crude/model"
	"github.com/pkg/errors"
)

const (
	eventDateColumn     = "event_date"
	eventNameColumn     = "event_name"
	eventCategoryColumn = "category"
)

// ParseEvents reads an event CSV. Rows with an unparseable event_date are
// kept undated and counted as dropped dates in the report; every column
// other than the date, name and category lands in Attributes.
func ParseEvents(r io.Reader) ([]model.Event, Report, error) {
	report := Report{}

	table, err := newCSVTable(r, eventDateColumn)
	if err != nil {
		return nil, report, errors.WithStack(err)
	}

	events := []model.Event{}
	for {
		record, err := table.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, report, err
		}

		event := model.Event{
			Name:     table.field(record, eventNameColumn),
			Category: table.field(record, eventCategoryColumn),
		}
		if date, err := ParseDate(table.field(record, eventDateColumn)); err == nil {
			event.Date = date
			report.accept()
		} else {
			report.drop()
		}

		for _, name := range table.header {
			switch name {
			case "", eventDateColumn, eventNameColumn, eventCategoryColumn, "date":
				continue
			}
			if event.Attributes == nil {
				event.Attributes = map[string]string{}
			}
			event.Attributes[name] = table.field(record, name)
		}

		events = append(events, event)
	}

	return events, report, nil
}
