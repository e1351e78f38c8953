package rest

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/crude-signals/crude/parser"
	"github.com/crude-signals/crude/util"
	"github.com/evergreen-ci/gimlet"
)

// parseTimeRange reads optional inclusive date bounds. A bound that is
// missing or cannot be parsed leaves that side of the range open.
func parseTimeRange(vals url.Values, start, end string) util.TimeRange {
	return util.NewTimeRange(
		parser.ParseOptionalDate(vals.Get(start)),
		parser.ParseOptionalDate(vals.Get(end)),
	)
}

// parseWindow reads the window size. A missing or non-integer value falls
// back to the default; an integer outside [1, max] is rejected.
func parseWindow(vals url.Values, key string, defaultWindow, maxWindow int) (int, error) {
	value := strings.TrimSpace(vals.Get(key))
	if value == "" {
		return defaultWindow, nil
	}

	window, err := strconv.Atoi(value)
	if err != nil {
		return defaultWindow, nil
	}

	if window < 1 || window > maxWindow {
		return 0, gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    fmt.Sprintf("window must be between 1 and %d, got %d", maxWindow, window),
		}
	}

	return window, nil
}
