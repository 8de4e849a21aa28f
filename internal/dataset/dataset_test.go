package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadDropsNonNumericRowsAndKeepsOrder(t *testing.T) {
	p := writeFile(t, "cfb.csv", strings.Join([]string{
		"Team,Points Per Game,Pass Touchdowns",
		"Alpha,30.5,2",
		"Bravo,,1",
		"Charlie,40,n/a",
		"Delta,25,NaN",
		"Echo,21.25,3",
		"Foxtrot,18",
		"Golf,33,inf",
		"Hotel,12,4",
	}, "\n"))

	f, err := Load(p, []string{"Pass Touchdowns", "Points Per Game"}, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Source != 8 || f.Dropped != 5 {
		t.Fatalf("source/dropped = %d/%d, want 8/5", f.Source, f.Dropped)
	}
	x := f.Column("Pass Touchdowns")
	y := f.Column("Points Per Game")
	if len(x) != len(y) || len(x) != f.Len() {
		t.Fatalf("column lengths differ: %d vs %d (len %d)", len(x), len(y), f.Len())
	}
	wantX := []float64{2, 3, 4}
	wantY := []float64{30.5, 21.25, 12}
	for i := range wantX {
		if x[i] != wantX[i] || y[i] != wantY[i] {
			t.Fatalf("row %d = (%v, %v), want (%v, %v)", i, x[i], y[i], wantX[i], wantY[i])
		}
	}
}

func TestRequireMissingColumnNamesIt(t *testing.T) {
	p := writeFile(t, "cfb.csv", "team,ppg\nA,30\n")
	_, err := Load(p, []string{"ppg", "pass_td"}, Options{})
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if se.Column != "pass_td" {
		t.Fatalf("column = %q, want pass_td", se.Column)
	}
	if !strings.Contains(err.Error(), "pass_td") {
		t.Fatalf("error does not name the column: %v", err)
	}
}

func TestRequireListsAllMissingColumns(t *testing.T) {
	p := writeFile(t, "cfb.csv", "team\nA\n")
	_, err := Load(p, []string{"ppg", "pass_td"}, Options{})
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if len(se.Missing) != 2 || se.Column != "ppg" {
		t.Fatalf("missing = %#v, column = %q", se.Missing, se.Column)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.csv"), Options{})
	var du *DataUnavailableError
	if !errors.As(err, &du) {
		t.Fatalf("expected DataUnavailableError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestReadDirectoryIsUnavailable(t *testing.T) {
	_, err := Read(t.TempDir(), Options{})
	var du *DataUnavailableError
	if !errors.As(err, &du) {
		t.Fatalf("expected DataUnavailableError, got %v", err)
	}
}

func TestEmptyFileHasNoColumns(t *testing.T) {
	p := writeFile(t, "empty.csv", "")
	tbl, err := Read(p, Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(tbl.Header) != 0 || len(tbl.Rows) != 0 {
		t.Fatalf("expected empty table, got %#v", tbl)
	}
	var se *SchemaError
	if _, err := tbl.Require("ppg"); !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestHeaderTrimmedAndBOMStripped(t *testing.T) {
	p := writeFile(t, "bom.csv", "\ufeffppg , pass_td\n30,2\n")
	tbl, err := Read(p, Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !tbl.Has("ppg") || !tbl.Has("pass_td") {
		t.Fatalf("header = %#v", tbl.Header)
	}
	if tbl.Name != "bom.csv" {
		t.Fatalf("name = %q", tbl.Name)
	}
}

func TestNumericColumnCountsMissing(t *testing.T) {
	p := writeFile(t, "cfb.tsv", "team\tppg\nA\t30\nB\t\nC\tx\nD\t20\n")
	tbl, err := Read(p, Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	vals, missing, err := tbl.Numeric("ppg")
	if err != nil {
		t.Fatalf("Numeric: %v", err)
	}
	if len(vals) != 2 || vals[0] != 30 || vals[1] != 20 || missing != 2 {
		t.Fatalf("vals = %v, missing = %d", vals, missing)
	}
	if _, _, err := tbl.Numeric("nope"); err == nil {
		t.Fatalf("expected error for unknown column")
	}
}

func TestNumericColumnsFollowsValueTypes(t *testing.T) {
	p := writeFile(t, "cfb.csv", "team,ppg,conf,pass_td,empty\nA,30,SEC,2,\nB,NaN,ACC,1,\nC,40,n/a,3,\n")
	tbl, err := Read(p, Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	got := tbl.NumericColumns()
	want := []string{"ppg", "pass_td"}
	if len(got) != len(want) {
		t.Fatalf("numeric columns = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("numeric columns = %v, want %v", got, want)
		}
	}
}

func TestSemicolonDelimiterWithDecimalComma(t *testing.T) {
	p := writeFile(t, "eu.csv", "ppg;yards\n30,5;1.234,5\n20,0;987,0\n")
	opt := Options{Delimiter: ';', DecimalSeparator: ',', ThousandsSeparator: '.'}
	f, err := Load(p, []string{"ppg", "yards"}, opt)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := f.Column("yards"); len(got) != 2 || got[0] != 1234.5 || got[1] != 987 {
		t.Fatalf("yards = %v", got)
	}
	if got := f.Column("ppg"); got[0] != 30.5 {
		t.Fatalf("ppg = %v", got)
	}
}

func TestParseNumeric(t *testing.T) {
	cases := []struct {
		in   string
		opt  Options
		want float64
		ok   bool
	}{
		{"42", Options{}, 42, true},
		{" 3.5 ", Options{}, 3.5, true},
		{"-1.25", Options{}, -1.25, true},
		{"1e3", Options{}, 1000, true},
		{"45%", Options{}, 45, true},
		{"", Options{}, 0, false},
		{"abc", Options{}, 0, false},
		{"NaN", Options{}, 0, false},
		{"+Inf", Options{}, 0, false},
		{"1,234", Options{}, 0, false},
		{"1,234", Options{ThousandsSeparator: ','}, 1234, true},
		{"1.234,5", Options{AutoLocale: true}, 1234.5, true},
		{"1,234.5", Options{AutoLocale: true}, 1234.5, true},
		{"0,75", Options{AutoLocale: true}, 0.75, true},
		{"12.5", Options{AutoLocale: true}, 12.5, true},
	}
	for _, c := range cases {
		got, ok := parseNumeric(c.in, c.opt)
		if ok != c.ok || (ok && got != c.want) {
			t.Fatalf("parseNumeric(%q, %+v) = %v, %v; want %v, %v", c.in, c.opt, got, ok, c.want, c.ok)
		}
	}
}

func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	p := filepath.Join(t.TempDir(), "cfb.xlsx")
	if err := f.SaveAs(p); err != nil {
		t.Fatalf("save xlsx: %v", err)
	}
	return p
}

func TestReadXLSXNamedSheet(t *testing.T) {
	p := writeWorkbook(t, "Teams", [][]any{
		{"Team", "ppg", "pass_td"},
		{"A", 30, 2},
		{"B", 20, ""},
		{"C", 40, 3},
	})
	f, err := Load(p, []string{"pass_td", "ppg"}, Options{Sheet: "teams"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Len() != 2 || f.Dropped != 1 {
		t.Fatalf("len/dropped = %d/%d", f.Len(), f.Dropped)
	}
	if y := f.Column("ppg"); y[0] != 30 || y[1] != 40 {
		t.Fatalf("ppg = %v", y)
	}
}

func TestReadXLSXUnknownSheet(t *testing.T) {
	p := writeWorkbook(t, "Sheet1", [][]any{{"ppg"}, {1}})
	_, err := Read(p, Options{Sheet: "Missing"})
	var du *DataUnavailableError
	if !errors.As(err, &du) {
		t.Fatalf("expected DataUnavailableError, got %v", err)
	}
	if !strings.Contains(err.Error(), "Sheet1") {
		t.Fatalf("expected available sheets in error: %v", err)
	}
}
