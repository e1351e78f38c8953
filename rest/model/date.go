package model

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
)

// APIDateFormat is the wire format of every calendar date.
const APIDateFormat = "2006-01-02"

// APIDate is a calendar date that serializes as YYYY-MM-DD, or null when
// zero.
type APIDate time.Time

// NewDate truncates the time to its UTC day.
func NewDate(t time.Time) APIDate {
	if t.IsZero() {
		return APIDate{}
	}
	return APIDate(utility.GetUTCDay(t))
}

func (d APIDate) IsZero() bool    { return time.Time(d).IsZero() }
func (d APIDate) Time() time.Time { return time.Time(d) }
func (d APIDate) String() string {
	if d.IsZero() {
		return ""
	}
	return time.Time(d).Format(APIDateFormat)
}

func (d APIDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *APIDate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = APIDate{}
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return errors.Wrap(err, "date must be a string")
	}

	ts, err := time.ParseInLocation(APIDateFormat, value, time.UTC)
	if err != nil {
		return errors.Wrapf(err, "invalid date '%s'", value)
	}
	*d = APIDate(ts)

	return nil
}
