package util

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// WriteJSON renders data as indented JSON into the named file.
func WriteJSON(fn string, data interface{}) error {
	f, err := os.Create(fn)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	if err = RenderJSON(f, data); err != nil {
		return errors.Wrapf(err, "problem writing '%s'", fn)
	}

	return errors.WithStack(f.Sync())
}

// PrintJSON renders data as indented JSON on standard output.
func PrintJSON(data interface{}) error {
	return RenderJSON(os.Stdout, data)
}

func RenderJSON(w io.Writer, data interface{}) error {
	out, err := json.MarshalIndent(data, "", "   ")
	if err != nil {
		return errors.Wrap(err, "problem rendering data")
	}

	if _, err = fmt.Fprintln(w, string(out)); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
