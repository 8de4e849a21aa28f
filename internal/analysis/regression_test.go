package analysis

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return diff <= tol*scale
}

func TestFitPerfectlyLinear(t *testing.T) {
	// teams A, B, C: (pass_td, ppg) = (2, 30), (1, 20), (3, 40)
	s := Sample{XName: "pass_td", YName: "ppg", X: []float64{2, 1, 3}, Y: []float64{30, 20, 40}}
	got, err := Fit(s)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if !almostEqual(got.Slope, 10, 1e-12) || !almostEqual(got.Intercept, 10, 1e-12) || !almostEqual(got.R, 1, 1e-12) {
		t.Fatalf("fit = %+v, want slope 10, intercept 10, r 1", got)
	}
	if got.N != 3 {
		t.Fatalf("n = %d", got.N)
	}
	if got.RLabel(2) != "r = 1.00" {
		t.Fatalf("label = %q", got.RLabel(2))
	}
	if got.Predict(4) != 50 {
		t.Fatalf("predict(4) = %v", got.Predict(4))
	}
}

func TestFitNegativeCorrelation(t *testing.T) {
	s := Sample{X: []float64{-1, 0, 1, 2}, Y: []float64{35, 30, 26, 20}}
	got, err := Fit(s)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if got.Slope >= 0 || got.R >= 0 || got.R < -1 {
		t.Fatalf("fit = %+v, want negative slope and r", got)
	}
	// reference values from the closed form
	if !almostEqual(got.Slope, -4.9, 1e-12) || !almostEqual(got.Intercept, 30.2, 1e-12) {
		t.Fatalf("fit = %+v", got)
	}
}

func TestFitIsDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := Sample{}
	for i := 0; i < 200; i++ {
		x := rng.Float64() * 500
		s.X = append(s.X, x)
		s.Y = append(s.Y, 0.05*x+rng.NormFloat64()*3)
	}
	a, err := Fit(s)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	b, err := Fit(s)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if !almostEqual(a.Slope, b.Slope, 1e-9) || !almostEqual(a.Intercept, b.Intercept, 1e-9) || !almostEqual(a.R, b.R, 1e-9) {
		t.Fatalf("fits differ: %+v vs %+v", a, b)
	}
}

func TestFitZeroVarianceX(t *testing.T) {
	_, err := Fit(Sample{XName: "pass_td", X: []float64{2, 2}, Y: []float64{20, 30}})
	var ve *InsufficientVarianceError
	if !errors.As(err, &ve) {
		t.Fatalf("expected InsufficientVarianceError, got %v", err)
	}
	if ve.Axis != "x" || ve.Column != "pass_td" {
		t.Fatalf("error = %+v", ve)
	}
}

func TestFitZeroVarianceY(t *testing.T) {
	_, err := Fit(Sample{X: []float64{1, 2, 3}, Y: []float64{20, 20, 20}})
	var ve *InsufficientVarianceError
	if !errors.As(err, &ve) || ve.Axis != "y" {
		t.Fatalf("expected y-axis InsufficientVarianceError, got %v", err)
	}
}

func TestFitInsufficientData(t *testing.T) {
	for _, n := range []int{0, 1} {
		s := Sample{X: make([]float64, n), Y: make([]float64, n)}
		_, err := Fit(s)
		var de *InsufficientDataError
		if !errors.As(err, &de) {
			t.Fatalf("n=%d: expected InsufficientDataError, got %v", n, err)
		}
		if de.N != n || de.Need != 2 {
			t.Fatalf("error = %+v", de)
		}
	}
}

func TestFitLengthMismatch(t *testing.T) {
	if _, err := Fit(Sample{X: []float64{1, 2}, Y: []float64{1}}); err == nil {
		t.Fatalf("expected error for mismatched lengths")
	}
}

func TestPearsonWithinUnitInterval(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 2000; iter++ {
		n := 2 + rng.Intn(60)
		s := Sample{X: make([]float64, n), Y: make([]float64, n)}
		for i := 0; i < n; i++ {
			s.X[i] = (rng.Float64() - 0.5) * math.Pow(10, float64(rng.Intn(7)))
			s.Y[i] = (rng.Float64() - 0.5) * math.Pow(10, float64(rng.Intn(7)))
		}
		res, err := Fit(s)
		if err != nil {
			var ve *InsufficientVarianceError
			if errors.As(err, &ve) {
				continue
			}
			t.Fatalf("iter %d: %v", iter, err)
		}
		if res.R < -1 || res.R > 1 || math.IsNaN(res.R) {
			t.Fatalf("iter %d: r = %v out of range", iter, res.R)
		}
	}
}

func TestBounds(t *testing.T) {
	lo, hi := Bounds([]float64{3, -1, 7, 2})
	if lo != -1 || hi != 7 {
		t.Fatalf("bounds = %v, %v", lo, hi)
	}
	if lo, hi := Bounds(nil); lo != 0 || hi != 0 {
		t.Fatalf("empty bounds = %v, %v", lo, hi)
	}
}

func TestFitIdenticalNonRepresentableX(t *testing.T) {
	seven := []float64{0.7, 0.7, 0.7, 0.7, 0.7, 0.7, 0.7}
	tests := []struct {
		name string
		x, y []float64
	}{
		{"three tenths", []float64{0.1, 0.1, 0.1}, []float64{20, 27, 34}},
		{"seven sevens", seven, []float64{10, 14, 21, 25, 30, 33, 41}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fit(Sample{X: tt.x, Y: tt.y, XName: "metric"})
			var ve *InsufficientVarianceError
			if !errors.As(err, &ve) || ve.Axis != "x" || ve.Column != "metric" {
				t.Fatalf("expected x-axis InsufficientVarianceError, got %v", err)
			}
		})
	}
}

func TestFitIdenticalNonRepresentableY(t *testing.T) {
	_, err := Fit(Sample{X: []float64{1, 2, 3}, Y: []float64{0.1, 0.1, 0.1}, YName: "ppg"})
	var ve *InsufficientVarianceError
	if !errors.As(err, &ve) || ve.Axis != "y" {
		t.Fatalf("expected y-axis InsufficientVarianceError, got %v", err)
	}
}

func TestFitOverflow(t *testing.T) {
	_, err := Fit(Sample{X: []float64{1e300, -1e300}, Y: []float64{1e300, -1e300}})
	if err == nil {
		t.Fatalf("expected overflow error")
	}
	var ve *InsufficientVarianceError
	var de *InsufficientDataError
	if errors.As(err, &ve) || errors.As(err, &de) {
		t.Fatalf("overflow reported as %T", err)
	}
}
