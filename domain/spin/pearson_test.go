package spin

import (
	"errors"
	"math"
	"testing"

	"brainmaps/domain/core"
)

// referencePearson is a plain textbook implementation used to check the
// masked statistic against hand-selected pairs.
func referencePearson(x, y []float64) float64 {
	n := float64(len(x))
	var sumX, sumY, sumXY, sumX2, sumY2 float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
		sumY2 += y[i] * y[i]
	}
	num := n*sumXY - sumX*sumY
	den := math.Sqrt((n*sumX2 - sumX*sumX) * (n*sumY2 - sumY*sumY))
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

func TestPearsonIgnoreZero_Symmetry(t *testing.T) {
	a := []float64{0.3, -1.2, 4.5, 2.2, -0.7, 1.9, 3.3, -2.4}
	b := []float64{1.1, 0.4, 3.9, -1.5, 2.8, -0.2, 0.9, 1.7}

	rab, err := PearsonIgnoreZero(a, b)
	if err != nil {
		t.Fatalf("PearsonIgnoreZero(a, b): %v", err)
	}
	rba, err := PearsonIgnoreZero(b, a)
	if err != nil {
		t.Fatalf("PearsonIgnoreZero(b, a): %v", err)
	}
	if rab != rba {
		t.Errorf("statistic is not symmetric: %v vs %v", rab, rba)
	}
}

func TestPearsonIgnoreZero_MasksZerosAndNonFinite(t *testing.T) {
	// Indices 2 and 5 drop out: a NaN in one vector and an Inf in the
	// other-vector position both mask the pair; zeros mask too.
	a := []float64{1, 2, math.NaN(), 4, 5, math.Inf(1), 7, 8}
	b := []float64{2, 1, 3, 3, 6, 2, 8, 9}

	got, err := PearsonIgnoreZero(a, b)
	if err != nil {
		t.Fatalf("PearsonIgnoreZero: %v", err)
	}

	// Only the 6 pairs valid in both vectors contribute.
	want := referencePearson(
		[]float64{1, 2, 4, 5, 7, 8},
		[]float64{2, 1, 3, 6, 8, 9},
	)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("masked correlation = %v, want %v", got, want)
	}

	// An explicit zero masks the same way as a NaN.
	withZero := []float64{1, 2, 0, 4, 5, 0, 7, 8}
	gotZero, err := PearsonIgnoreZero(withZero, b)
	if err != nil {
		t.Fatalf("PearsonIgnoreZero with zeros: %v", err)
	}
	if gotZero != got {
		t.Errorf("zero masking differs from NaN masking: %v vs %v", gotZero, got)
	}
}

func TestPearsonIgnoreZero_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
	}{
		{"all zeros", []float64{0, 0, 0}, []float64{1, 2, 3}},
		{"single valid pair", []float64{1, 0, 0}, []float64{1, 2, 3}},
		{"constant after masking", []float64{2, 2, 2, 0}, []float64{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := PearsonIgnoreZero(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !math.IsNaN(r) {
				t.Errorf("expected NaN for degenerate input, got %v", r)
			}
		})
	}
}

func TestPearsonIgnoreZero_LengthMismatch(t *testing.T) {
	_, err := PearsonIgnoreZero([]float64{1, 2}, []float64{1, 2, 3})
	if !errors.Is(err, core.ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestRound6(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.1234564, 0.123456},
		{0.1234565, 0.123457},
		{-0.9999996, -1.0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round6(tt.in); got != tt.want {
			t.Errorf("Round6(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if !math.IsNaN(Round6(math.NaN())) {
		t.Error("Round6 should pass NaN through")
	}
}
