package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	for name, test := range map[string]struct {
		input    string
		expected time.Time
	}{
		"ISO":              {input: "2019-01-31", expected: time.Date(2019, time.January, 31, 0, 0, 0, 0, time.UTC)},
		"DayMonthTwoDigit": {input: "20-May-87", expected: time.Date(1987, time.May, 20, 0, 0, 0, 0, time.UTC)},
		"SingleDigitDay":   {input: "4-Jan-00", expected: time.Date(2000, time.January, 4, 0, 0, 0, 0, time.UTC)},
		"MonthNameFirst":   {input: "Apr 22, 2020", expected: time.Date(2020, time.April, 22, 0, 0, 0, 0, time.UTC)},
		"SlashDayFirst":    {input: "03/04/2020", expected: time.Date(2020, time.April, 3, 0, 0, 0, 0, time.UTC)},
		"RFC3339":          {input: "2020-01-02T15:04:05Z", expected: time.Date(2020, time.January, 2, 0, 0, 0, 0, time.UTC)},
		"Padded":           {input: "  2019-01-31 ", expected: time.Date(2019, time.January, 31, 0, 0, 0, 0, time.UTC)},
		"Fallback":         {input: "2014/3/31", expected: time.Date(2014, time.March, 31, 0, 0, 0, 0, time.UTC)},
	} {
		t.Run(name, func(t *testing.T) {
			ts, err := ParseDate(test.input)
			require.NoError(t, err)
			assert.True(t, test.expected.Equal(ts), "expected %s, got %s", test.expected, ts)
		})
	}
	t.Run("Invalid", func(t *testing.T) {
		for _, input := range []string{"", "   ", "not a date", "2019-13-45"} {
			_, err := ParseDate(input)
			assert.Error(t, err, input)
		}
	})
}

func TestParseOptionalDate(t *testing.T) {
	assert.Nil(t, ParseOptionalDate(""))
	assert.Nil(t, ParseOptionalDate("yesterday-ish"))

	ts := ParseOptionalDate("2013-01-01")
	require.NotNil(t, ts)
	assert.Equal(t, 2013, ts.Year())
}
