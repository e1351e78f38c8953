package rest

import (
	"net/http"

	"github.com/evergreen-ci/gimlet"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// logFindError logs a failed lookup, demoting client errors and an
// unloaded dataset below the error level.
func logFindError(err error, fields message.Fields) {
	logLevel := level.Error
	if errResp, ok := errors.Cause(err).(gimlet.ErrorResponse); ok {
		switch {
		case errResp.StatusCode == http.StatusServiceUnavailable:
			logLevel = level.Warning
		case errResp.StatusCode < http.StatusInternalServerError:
			logLevel = level.Info
		}
	}
	grip.Log(logLevel, message.WrapError(err, fields))
}
