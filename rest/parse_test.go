package rest

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/evergreen-ci/gimlet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeRange(t *testing.T) {
	for name, test := range map[string]struct {
		query    string
		expected func(*testing.T, url.Values)
	}{
		"Empty": {
			query: "",
			expected: func(t *testing.T, vals url.Values) {
				assert.True(t, parseTimeRange(vals, "start", "end").IsZero())
			},
		},
		"BothBounds": {
			query: "start=2020-01-01&end=31/01/2020",
			expected: func(t *testing.T, vals url.Values) {
				tr := parseTimeRange(vals, "start", "end")
				assert.Equal(t, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), tr.StartAt)
				assert.Equal(t, time.Date(2020, time.January, 31, 0, 0, 0, 0, time.UTC), tr.EndAt)
			},
		},
		"UnparseableBoundIsOpen": {
			query: "start=soon&end=2020-01-31",
			expected: func(t *testing.T, vals url.Values) {
				tr := parseTimeRange(vals, "start", "end")
				assert.False(t, tr.HasStart())
				assert.True(t, tr.HasEnd())
			},
		},
	} {
		t.Run(name, func(t *testing.T) {
			vals, err := url.ParseQuery(test.query)
			require.NoError(t, err)
			test.expected(t, vals)
		})
	}
}

func TestParseWindow(t *testing.T) {
	for _, test := range []struct {
		query    string
		expected int
	}{
		{query: "", expected: 30},
		{query: "window=", expected: 30},
		{query: "window=abc", expected: 30},
		{query: "window=12.5", expected: 30},
		{query: "window=1", expected: 1},
		{query: "window=%2045%20", expected: 45},
		{query: "window=100", expected: 100},
	} {
		vals, err := url.ParseQuery(test.query)
		require.NoError(t, err)
		window, err := parseWindow(vals, "window", 30, 100)
		require.NoError(t, err, test.query)
		assert.Equal(t, test.expected, window, test.query)
	}

	for _, query := range []string{"window=0", "window=-1", "window=101"} {
		vals, err := url.ParseQuery(query)
		require.NoError(t, err)
		_, err = parseWindow(vals, "window", 30, 100)
		require.Error(t, err, query)
		errResp, ok := err.(gimlet.ErrorResponse)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, errResp.StatusCode)
	}
}
