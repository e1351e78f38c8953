package parser

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/crude-signals/crude/model"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

const (
	priceDateColumn  = "date"
	priceValueColumn = "price"
)

// ParsePrices reads a price CSV with Date and Price columns. Rows whose
// date or price cannot be parsed are dropped and counted in the report.
// The series is returned ordered by date.
func ParsePrices(r io.Reader) (model.PriceSeries, Report, error) {
	report := Report{}

	table, err := newCSVTable(r, priceDateColumn, priceValueColumn)
	if err != nil {
		return nil, report, errors.WithStack(err)
	}

	series := model.PriceSeries{}
	for {
		record, err := table.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, report, err
		}

		date, err := ParseDate(table.field(record, priceDateColumn))
		if err != nil {
			report.drop()
			continue
		}

		price, err := ParsePrice(table.field(record, priceValueColumn))
		if err != nil {
			report.drop()
			continue
		}

		series = append(series, model.PricePoint{Date: date, Price: price})
		report.accept()
	}

	grip.DebugWhen(report.Dropped > 0, message.Fields{
		"message":  "dropped unparseable price rows",
		"rows":     report.Rows,
		"accepted": report.Accepted,
		"dropped":  report.Dropped,
	})

	return series.Sorted(), report, nil
}

// ParsePrice coerces a price cell to a number, accepting thousands
// separators. Missing, non-numeric, NaN and infinite values are errors;
// sign checks are left to log-return derivation.
func ParsePrice(value string) (float64, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if value == "" {
		return 0, errors.New("empty price")
	}

	price, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid price '%s'", value)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, errors.Errorf("non-finite price '%s'", value)
	}

	return price, nil
}
