package surface

import (
	"math"
	"testing"
)

func TestVerticesPerHemi(t *testing.T) {
	tests := []struct {
		space Space
		den   Density
		want  int
	}{
		{SpaceFsLR, Den32k, 32492},
		{SpaceFsLR, Den164k, 163842},
		{SpaceFsaverage, Den10k, 10242},
		{SpaceCivet, Den41k, 40962},
	}
	for _, tt := range tests {
		got, err := VerticesPerHemi(tt.space, tt.den)
		if err != nil {
			t.Fatalf("VerticesPerHemi(%s, %s): %v", tt.space, tt.den, err)
		}
		if got != tt.want {
			t.Errorf("VerticesPerHemi(%s, %s) = %d, want %d", tt.space, tt.den, got, tt.want)
		}

		space, den := InferSpace(tt.want)
		if space != tt.space || den != tt.den {
			t.Errorf("InferSpace(%d) = (%s, %s), want (%s, %s)", tt.want, space, den, tt.space, tt.den)
		}
	}

	if _, err := VerticesPerHemi(SpaceCivet, Den32k); err == nil {
		t.Error("expected error for unsupported space/density pair")
	}

	// Unknown counts fall back to the working space.
	if space, den := InferSpace(123); space != SpaceFsLR || den != Den32k {
		t.Errorf("InferSpace fallback = (%s, %s), want (fsLR, 32k)", space, den)
	}
}

func TestPadSingleHemi(t *testing.T) {
	values := []float64{1, 2, 3}

	left, right := PadSingleHemi(values, HemiRight, 4, 3)
	if len(left) != 4 || len(right) != 3 {
		t.Fatalf("pad lengths = (%d, %d), want (4, 3)", len(left), len(right))
	}
	for i, v := range left {
		if !math.IsNaN(v) {
			t.Errorf("left[%d] = %v, want NaN padding", i, v)
		}
	}

	full := ConcatHemis(left, right)
	if len(full) != 7 {
		t.Fatalf("concatenated length = %d, want 7", len(full))
	}
	if full[4] != 1 || full[6] != 3 {
		t.Errorf("right hemisphere not in LH||RH order: %v", full)
	}
}

func TestSanitizeNonFinite(t *testing.T) {
	in := []float64{1, math.Inf(1), math.Inf(-1), math.NaN(), 0}
	out := SanitizeNonFinite(in)

	if !math.IsInf(in[1], 1) {
		t.Error("input mutated")
	}
	if out[0] != 1 || out[4] != 0 {
		t.Error("finite values changed")
	}
	for _, i := range []int{1, 2, 3} {
		if !math.IsNaN(out[i]) {
			t.Errorf("out[%d] = %v, want NaN", i, out[i])
		}
	}
}
