/*
Package crude holds the application level constants and shared resources
for the oil price change point service.
*/
package crude

const (
	// ServiceName is reported by the health endpoint.
	ServiceName = "change-point-api"

	// ShortDateFormat is the layout of every date the service emits.
	ShortDateFormat = "2006-01-02"
)

// BuildRevision stores the commit in the git repository at build time and is
// specified with -ldflags at build time.
var BuildRevision = ""
