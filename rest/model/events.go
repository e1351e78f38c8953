package model

import (
	"encoding/json"
	"fmt"

	dbmodel "github.com/crude-signals/crude/model"
	"github.com/pkg/errors"
)

const (
	eventDateKey     = "date"
	eventNameKey     = "event_name"
	eventCategoryKey = "category"
)

// APIEvent is an annotated market event. Attributes are flattened into the
// JSON object next to the fixed fields, which they cannot shadow.
type APIEvent struct {
	Date       APIDate
	Name       string
	Category   string
	Attributes map[string]string
}

// Import transforms an Event object into an APIEvent object.
func (a *APIEvent) Import(i interface{}) error {
	switch e := i.(type) {
	case dbmodel.Event:
		a.Date = NewDate(e.Date)
		a.Name = e.Name
		a.Category = e.Category
		a.Attributes = nil
		if len(e.Attributes) > 0 {
			a.Attributes = make(map[string]string, len(e.Attributes))
			for k, v := range e.Attributes {
				a.Attributes[k] = v
			}
		}
	default:
		return errors.Errorf("incorrect type %T when converting event type", i)
	}
	return nil
}

func (a APIEvent) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(a.Attributes)+3)
	for k, v := range a.Attributes {
		out[k] = v
	}
	out[eventDateKey] = a.Date
	out[eventNameKey] = a.Name
	out[eventCategoryKey] = a.Category

	return json.Marshal(out)
}

func (a *APIEvent) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "event must be an object")
	}

	*a = APIEvent{}
	for k, v := range raw {
		switch k {
		case eventDateKey:
			if err := json.Unmarshal(v, &a.Date); err != nil {
				return errors.WithStack(err)
			}
		case eventNameKey:
			if err := json.Unmarshal(v, &a.Name); err != nil {
				return errors.Wrap(err, "invalid event name")
			}
		case eventCategoryKey:
			if err := json.Unmarshal(v, &a.Category); err != nil {
				return errors.Wrap(err, "invalid event category")
			}
		default:
			if a.Attributes == nil {
				a.Attributes = map[string]string{}
			}
			a.Attributes[k] = attributeString(v)
		}
	}

	return nil
}

func attributeString(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}

	var other interface{}
	if err := json.Unmarshal(v, &other); err != nil || other == nil {
		return ""
	}
	return fmt.Sprint(other)
}

// ImportEvents converts a list of events. The result is never nil.
func ImportEvents(events []dbmodel.Event) ([]APIEvent, error) {
	out := make([]APIEvent, len(events))
	for idx := range events {
		if err := out[idx].Import(events[idx]); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	return out, nil
}
