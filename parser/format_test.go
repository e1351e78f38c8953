package parser

import (
	"bytes"
	"testing"
	"time"

	"github.com/crude-signals/crude/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndParsePrices(t *testing.T) {
	series := model.PriceSeries{
		{Date: time.Date(1987, time.May, 20, 0, 0, 0, 0, time.UTC), Price: 18.63},
		{Date: time.Date(1987, time.May, 21, 0, 0, 0, 0, time.UTC), Price: 18.45},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, WritePrices(buf, series))
	assert.Equal(t, "Date,Price\n1987-05-20,18.63\n1987-05-21,18.45\n", buf.String())

	parsed, report, err := ParsePrices(buf)
	require.NoError(t, err)
	assert.Zero(t, report.Dropped)
	assert.Equal(t, series, parsed)
}

func TestWriteEvents(t *testing.T) {
	events := []model.Event{
		{
			Date:       time.Date(2014, time.November, 27, 0, 0, 0, 0, time.UTC),
			Name:       "OPEC maintains output",
			Category:   "OPEC Policy",
			Attributes: map[string]string{"region": "Middle East", "impact": "negative"},
		},
		{Name: "undated", Category: "Other"},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, WriteEvents(buf, events))
	assert.Equal(t, "event_date,event_name,category,impact,region\n"+
		"2014-11-27,OPEC maintains output,OPEC Policy,negative,Middle East\n"+
		",undated,Other,,\n", buf.String())

	parsed, report, err := ParseEvents(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Dropped)
	require.Len(t, parsed, 2)
	assert.Equal(t, events[0], parsed[0])
	assert.False(t, parsed[1].HasDate())
	assert.Equal(t, map[string]string{"impact": "", "region": ""}, parsed[1].Attributes)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", FormatDate(time.Time{}))
	assert.Equal(t, "2020-04-22", FormatDate(time.Date(2020, time.April, 22, 15, 4, 5, 0, time.UTC)))
}
