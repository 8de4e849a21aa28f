package analysis

import (
	"fmt"
	"math"
)

// Sample is a cleaned pair of numeric sequences with index correspondence.
// X is the independent metric and Y the dependent one (points per game).
type Sample struct {
	XName string
	YName string
	X     []float64
	Y     []float64
}

// Len returns the number of observations.
func (s Sample) Len() int { return len(s.X) }

// Bounds returns the observed minimum and maximum of xs.
func Bounds(xs []float64) (lo, hi float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	lo, hi = xs[0], xs[0]
	for _, v := range xs[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// FitResult is a first-degree least-squares fit with its Pearson coefficient.
type FitResult struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	R         float64 `json:"r"`
	N         int     `json:"n"`
}

// Predict evaluates the fitted line at x.
func (f FitResult) Predict(x float64) float64 { return f.Slope*x + f.Intercept }

// RLabel formats r with the given number of decimals, e.g. "r = 0.87".
func (f FitResult) RLabel(decimals int) string {
	return fmt.Sprintf("r = %.*f", decimals, f.R)
}

// Fit computes the least-squares line Y ≈ mX + b and Pearson's r over s.
func Fit(s Sample) (FitResult, error) {
	if len(s.X) != len(s.Y) {
		return FitResult{}, fmt.Errorf("sample length mismatch: %d x values, %d y values", len(s.X), len(s.Y))
	}
	n := len(s.X)
	if n < 2 {
		return FitResult{}, &InsufficientDataError{N: n, Need: 2}
	}
	// Decide on the observations themselves: a rounded mean leaves a tiny
	// non-zero spread for constants such as 0.1.
	if constant(s.X) {
		return FitResult{}, &InsufficientVarianceError{Axis: "x", Column: s.XName}
	}
	if constant(s.Y) {
		return FitResult{}, &InsufficientVarianceError{Axis: "y", Column: s.YName}
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += s.X[i]
		sumY += s.Y[i]
	}
	nf := float64(n)
	xbar, ybar := sumX/nf, sumY/nf

	var sxx, syy, sxy float64
	for i := 0; i < n; i++ {
		dx := s.X[i] - xbar
		dy := s.Y[i] - ybar
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}
	if !finite(sxx) || !finite(syy) || !finite(sxy) {
		return FitResult{}, fmt.Errorf("fit overflowed for %d observations", n)
	}
	// Distinct but tiny values can still underflow to zero.
	if sxx == 0 {
		return FitResult{}, &InsufficientVarianceError{Axis: "x", Column: s.XName}
	}
	if syy == 0 {
		return FitResult{}, &InsufficientVarianceError{Axis: "y", Column: s.YName}
	}

	slope := sxy / sxx
	r := sxy / (math.Sqrt(sxx) * math.Sqrt(syy))
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	res := FitResult{Slope: slope, Intercept: ybar - slope*xbar, R: r, N: n}
	if !finite(res.Slope) || !finite(res.Intercept) || !finite(res.R) {
		return FitResult{}, fmt.Errorf("fit overflowed for %d observations", n)
	}
	return res, nil
}

func constant(vs []float64) bool {
	for _, v := range vs[1:] {
		if v != vs[0] {
			return false
		}
	}
	return true
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
