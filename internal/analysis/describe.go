package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// ColumnStats holds descriptive statistics for one numeric column.
// Std is the sample standard deviation (n-1) and is only defined when Count > 1.
type ColumnStats struct {
	Name  string
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Max   float64
}

// HasStd reports whether the sample standard deviation is defined.
func (c ColumnStats) HasStd() bool { return c.Count > 1 }

// MarshalJSON renders undefined statistics as null rather than NaN.
func (c ColumnStats) MarshalJSON() ([]byte, error) {
	type out struct {
		Count int      `json:"count"`
		Mean  *float64 `json:"mean"`
		Std   *float64 `json:"std"`
		Min   *float64 `json:"min"`
		Max   *float64 `json:"max"`
	}
	o := out{Count: c.Count}
	if c.Count > 0 {
		o.Mean, o.Min, o.Max = &c.Mean, &c.Min, &c.Max
	}
	if c.HasStd() {
		o.Std = &c.Std
	}
	return json.Marshal(o)
}

// Describe computes count, mean, sample std, min and max of vals in one pass.
func Describe(name string, vals []float64) ColumnStats {
	s := ColumnStats{Name: name}
	if len(vals) == 0 {
		return s
	}
	var mean, m2 float64
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, x := range vals {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
		// Welford update
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)
	}
	s.Count = len(vals)
	s.Mean = mean
	s.Min = lo
	s.Max = hi
	if s.Count > 1 {
		s.Std = math.Sqrt(m2 / float64(s.Count-1))
	}
	return s
}

// Summary describes a dataset: its shape plus statistics for the numeric columns.
type Summary struct {
	DatasetPath string
	Rows        int
	Columns     []string
	Numeric     []ColumnStats
	Warnings    []string
}

// Stats returns the statistics for the named column.
func (s *Summary) Stats(name string) (ColumnStats, bool) {
	for _, c := range s.Numeric {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnStats{}, false
}

// MarshalJSON emits the summary with numeric_summary keyed by column name.
func (s *Summary) MarshalJSON() ([]byte, error) {
	numeric := make(map[string]ColumnStats, len(s.Numeric))
	for _, c := range s.Numeric {
		numeric[c.Name] = c
	}
	cols := s.Columns
	if cols == nil {
		cols = []string{}
	}
	return json.Marshal(struct {
		DatasetPath    string                 `json:"dataset_path"`
		Rows           int                    `json:"n_rows"`
		NColumns       int                    `json:"n_columns"`
		Columns        []string               `json:"columns"`
		NumericSummary map[string]ColumnStats `json:"numeric_summary"`
		Warnings       []string               `json:"warnings,omitempty"`
	}{
		DatasetPath:    s.DatasetPath,
		Rows:           s.Rows,
		NColumns:       len(s.Columns),
		Columns:        cols,
		NumericSummary: numeric,
		Warnings:       s.Warnings,
	})
}

// Text renders a compact human-readable report.
func (s *Summary) Text() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if s.DatasetPath != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", s.DatasetPath))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", s.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n", len(s.Columns)))
	if len(s.Columns) > 0 {
		b.WriteString(fmt.Sprintf("Names: %s\n", strings.Join(s.Columns, ", ")))
	}

	b.WriteString("\n[NUMERIC SUMMARY]\n")
	if len(s.Numeric) == 0 {
		b.WriteString("(no numeric columns)\n")
	}
	for _, c := range s.Numeric {
		if c.Count == 0 {
			b.WriteString(fmt.Sprintf("- %s: count 0\n", c.Name))
			continue
		}
		std := "n/a"
		if c.HasStd() {
			std = fmt.Sprintf("%.4g", c.Std)
		}
		b.WriteString(fmt.Sprintf("- %s: count %d, mean %.4g, std %s, min %.4g, max %.4g\n",
			c.Name, c.Count, c.Mean, std, c.Min, c.Max))
	}
	if len(s.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range s.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}
