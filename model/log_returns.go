package model

import (
	"time"

	"github.com/crude-signals/crude/util"
)

// LogReturnPoint is the log-price difference between an observation and
// the one preceding it.
type LogReturnPoint struct {
	Date      time.Time `bson:"date" json:"date" yaml:"date"`
	LogReturn float64   `bson:"log_return" json:"log_return" yaml:"log_return"`
}

type LogReturnSeries []LogReturnPoint

// Values returns the bare log-return values in series order.
func (s LogReturnSeries) Values() []float64 {
	out := make([]float64, len(s))
	for idx := range s {
		out[idx] = s[idx].LogReturn
	}
	return out
}

func (s LogReturnSeries) Filter(tr util.TimeRange) LogReturnSeries {
	out := LogReturnSeries{}
	for _, p := range s {
		if tr.Check(p.Date) {
			out = append(out, p)
		}
	}
	return out
}
