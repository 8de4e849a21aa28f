// Package pipeline ties the loader, the statistics and the plot renderer
// together. Every call reads the dataset again; nothing is kept between calls.
package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/KaramelBytes/cfbstats/internal/analysis"
	"github.com/KaramelBytes/cfbstats/internal/config"
	"github.com/KaramelBytes/cfbstats/internal/dataset"
	"github.com/KaramelBytes/cfbstats/internal/plot"
)

// Pipeline computes fits, plots and summaries for one configured dataset.
type Pipeline struct {
	path     string
	opt      dataset.Options
	pairs    []analysis.Pair
	cols     config.Columns
	width    int
	height   int
	decimals int
	log      *zap.Logger
}

// New validates the dataset options in cfg and returns a pipeline for it.
func New(cfg *config.Global, log *zap.Logger) (*Pipeline, error) {
	if log == nil {
		log = zap.NewNop()
	}
	opt, err := Options(cfg)
	if err != nil {
		return nil, err
	}
	c := cfg.Columns
	return &Pipeline{
		path: cfg.DataPath,
		opt:  opt,
		pairs: analysis.Pairs(analysis.PairColumns{
			PPG:            c.PPG,
			PassTouchdowns: c.PassTouchdowns,
			RushTouchdowns: c.RushTouchdowns,
			TotalYards:     c.TotalYards,
			Turnovers:      c.Turnovers,
		}),
		cols:     c,
		width:    cfg.PlotWidth,
		height:   cfg.PlotHeight,
		decimals: cfg.RDecimals,
		log:      log,
	}, nil
}

// Options converts the textual reader settings of cfg into dataset options.
func Options(cfg *config.Global) (dataset.Options, error) {
	opt := dataset.Options{Sheet: cfg.Sheet}
	switch d := cfg.Delimiter; strings.ToLower(d) {
	case "":
	case `\t`, "tab", "\t":
		opt.Delimiter = '\t'
	default:
		r, err := singleRune("delimiter", d)
		if err != nil {
			return opt, err
		}
		opt.Delimiter = r
	}
	switch d := cfg.DecimalSeparator; strings.ToLower(d) {
	case "":
	case "auto":
		opt.AutoLocale = true
	case ".", ",":
		opt.DecimalSeparator = rune(d[0])
	default:
		return opt, fmt.Errorf("invalid decimal_separator: %q (use '.', ',' or 'auto')", d)
	}
	switch t := cfg.ThousandsSeparator; strings.ToLower(t) {
	case "":
	case "space":
		opt.ThousandsSeparator = ' '
	default:
		r, err := singleRune("thousands_separator", t)
		if err != nil {
			return opt, err
		}
		opt.ThousandsSeparator = r
	}
	if opt.ThousandsSeparator != 0 && opt.ThousandsSeparator == opt.DecimalSeparator {
		return opt, fmt.Errorf("thousands_separator and decimal_separator must differ")
	}
	return opt, nil
}

func singleRune(key, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("invalid %s: %q (must be a single character)", key, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// DataPath is the dataset location every call reads.
func (p *Pipeline) DataPath() string { return p.path }

// Pairs lists the supported metric pairs.
func (p *Pipeline) Pairs() []analysis.Pair {
	return append([]analysis.Pair(nil), p.pairs...)
}

// Lookup resolves a selector or legacy route slug.
func (p *Pipeline) Lookup(key string) (analysis.Pair, error) {
	return analysis.LookupPair(p.pairs, key)
}

// FitOutcome is a computed fit together with the sample it was computed on.
type FitOutcome struct {
	Pair    analysis.Pair
	Sample  analysis.Sample
	Fit     analysis.FitResult
	Source  int
	Dropped int
}

// MarshalJSON flattens the outcome for API responses; the sample is omitted.
func (o *FitOutcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Selector  string  `json:"selector"`
		XColumn   string  `json:"x_column"`
		YColumn   string  `json:"y_column"`
		Slope     float64 `json:"slope"`
		Intercept float64 `json:"intercept"`
		R         float64 `json:"r"`
		N         int     `json:"n"`
		Dropped   int     `json:"dropped"`
	}{
		Selector:  o.Pair.Selector,
		XColumn:   o.Pair.X,
		YColumn:   o.Pair.Y,
		Slope:     o.Fit.Slope,
		Intercept: o.Fit.Intercept,
		R:         o.Fit.R,
		N:         o.Fit.N,
		Dropped:   o.Dropped,
	})
}

// Fit loads the pair's columns and fits PPG against the metric.
func (p *Pipeline) Fit(key string) (*FitOutcome, error) {
	pair, err := p.Lookup(key)
	if err != nil {
		return nil, err
	}
	frame, err := dataset.Load(p.path, []string{pair.X, pair.Y}, p.opt)
	if err != nil {
		return nil, err
	}
	if frame.Dropped > 0 {
		p.log.Debug("dropped incomplete rows",
			zap.String("pair", pair.Selector),
			zap.Int("dropped", frame.Dropped),
			zap.Int("source", frame.Source))
	}
	s := analysis.Sample{
		XName: pair.X,
		YName: pair.Y,
		X:     frame.Column(pair.X),
		Y:     frame.Column(pair.Y),
	}
	res, err := analysis.Fit(s)
	if err != nil {
		return nil, err
	}
	return &FitOutcome{Pair: pair, Sample: s, Fit: res, Source: frame.Source, Dropped: frame.Dropped}, nil
}

// Plot fits the pair and renders its scatter plot as PNG.
func (p *Pipeline) Plot(key string) ([]byte, *FitOutcome, error) {
	out, err := p.Fit(key)
	if err != nil {
		return nil, nil, err
	}
	img, err := plot.Scatter(plot.Figure{
		Title:    out.Pair.Title(),
		XLabel:   out.Pair.Label,
		YLabel:   "Points Per Game",
		Sample:   out.Sample,
		Fit:      out.Fit,
		Width:    p.width,
		Height:   p.height,
		Decimals: p.decimals,
	})
	if err != nil {
		return nil, nil, err
	}
	return img, out, nil
}

// Stats describes every numeric column of the dataset. Each column is
// summarised over its own numeric values.
func (p *Pipeline) Stats() (*analysis.Summary, error) {
	tbl, err := dataset.Read(p.path, p.opt)
	if err != nil {
		return nil, err
	}
	s := &analysis.Summary{
		DatasetPath: p.path,
		Rows:        len(tbl.Rows),
		Columns:     append([]string(nil), tbl.Header...),
	}
	for _, col := range tbl.NumericColumns() {
		vals, missing, err := tbl.Numeric(col)
		if err != nil {
			return nil, err
		}
		s.Numeric = append(s.Numeric, analysis.Describe(col, vals))
		if missing > 0 {
			s.Warnings = append(s.Warnings, fmt.Sprintf("column %q: %d missing value(s) ignored", col, missing))
		}
	}
	for _, col := range []string{p.cols.PPG, p.cols.PassTouchdowns, p.cols.RushTouchdowns, p.cols.TotalYards, p.cols.Turnovers} {
		if col != "" && !tbl.Has(col) {
			s.Warnings = append(s.Warnings, fmt.Sprintf("configured column %q not found", col))
		}
	}
	return s, nil
}
