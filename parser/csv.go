package parser

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Report counts what a parse kept and what it dropped as unusable.
type Report struct {
	Rows     int `json:"rows"`
	Accepted int `json:"accepted"`
	Dropped  int `json:"dropped"`
}

func (r *Report) accept() { r.Rows++; r.Accepted++ }
func (r *Report) drop()   { r.Rows++; r.Dropped++ }

type csvTable struct {
	header  []string
	columns map[string]int
	reader  *csv.Reader
}

func newCSVTable(r io.Reader, required ...string) (*csvTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("csv input is empty")
	}
	if err != nil {
		return nil, errors.Wrap(err, "problem reading csv header")
	}

	table := &csvTable{
		header:  make([]string, len(header)),
		columns: make(map[string]int, len(header)),
		reader:  reader,
	}
	for idx, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		table.header[idx] = name
		if _, ok := table.columns[name]; !ok {
			table.columns[name] = idx
		}
	}

	for _, name := range required {
		if _, ok := table.columns[name]; !ok {
			return nil, errors.Errorf("csv header is missing required column '%s'", name)
		}
	}

	return table, nil
}

// next returns the following record, or io.EOF once the input is exhausted.
func (t *csvTable) next() ([]string, error) {
	record, err := t.reader.Read()
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "problem reading csv record")
	}
	return record, err
}

func (t *csvTable) field(record []string, name string) string {
	idx, ok := t.columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
