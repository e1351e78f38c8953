package perf

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/crude-signals/crude/model"
)

type EstimateFixture struct {
	Returns  []float64 `json:"returns"`
	Window   int       `json:"window"`
	Expected struct {
		Status     Status  `json:"status"`
		Index      int     `json:"index"`
		MeanBefore float64 `json:"mean_before"`
		MeanAfter  float64 `json:"mean_after"`
		MeanShift  float64 `json:"mean_shift"`
	} `json:"expected"`
}

func LoadFixture(testName string, fixture interface{}) error {
	parts := strings.Split(testName, "/")
	testName = parts[len(parts)-1]

	data, err := os.ReadFile(fmt.Sprintf("testdata/%s.json", testName))
	if err != nil {
		return err
	}

	return json.Unmarshal(data, fixture)
}

var seriesStart = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

func makeReturns(values []float64) model.LogReturnSeries {
	out := make(model.LogReturnSeries, len(values))
	for idx, v := range values {
		out[idx] = model.LogReturnPoint{Date: seriesStart.AddDate(0, 0, idx), LogReturn: v}
	}
	return out
}
