package dataset

import (
	"fmt"
	"strings"
)

// DataUnavailableError indicates the dataset file is missing or cannot be read.
type DataUnavailableError struct {
	Path string
	Err  error
}

func (e *DataUnavailableError) Error() string {
	if e == nil {
		return "dataset unavailable"
	}
	return fmt.Sprintf("dataset unavailable at %s: %v", e.Path, e.Err)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }

// SchemaError indicates required columns are absent from the dataset header.
// Column is the first missing column; Missing lists all of them.
type SchemaError struct {
	Column  string
	Missing []string
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 1 {
		quoted := make([]string, len(e.Missing))
		for i, m := range e.Missing {
			quoted[i] = fmt.Sprintf("%q", m)
		}
		return fmt.Sprintf("missing required columns in dataset: %s", strings.Join(quoted, ", "))
	}
	return fmt.Sprintf("missing required column in dataset: %q", e.Column)
}
