package render

import (
	"bytes"
	"image/png"
	"math"
	"math/rand"
	"testing"

	"brainmaps/domain/core"
	"brainmaps/domain/spin"
)

func syntheticNull(seed int64, n int, spread float64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64() * spread
	}
	return out
}

func TestRenderNullBoxplotProducesPNG(t *testing.T) {
	r := NewBoxplotRenderer()
	rows := []spin.Result{
		{Map: "myelin", R: 0.55, PSpin: 0.002},
		{Map: "genepc1", R: -0.12, PSpin: 0.41},
	}
	nulls := map[core.MapKey][]float64{
		"myelin":  syntheticNull(1, 500, 0.15),
		"genepc1": syntheticNull(2, 500, 0.2),
	}

	var buf bytes.Buffer
	if err := r.RenderNullBoxplot(&buf, rows, nulls); err != nil {
		t.Fatalf("RenderNullBoxplot: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		t.Fatalf("empty image bounds %v", b)
	}
}

func TestRenderNullBoxplotMissingNull(t *testing.T) {
	r := NewBoxplotRenderer()
	rows := []spin.Result{{Map: "cbf", R: 0.1, PSpin: 0.5}}

	var buf bytes.Buffer
	err := r.RenderNullBoxplot(&buf, rows, map[core.MapKey][]float64{})
	if err == nil {
		t.Fatal("expected error for missing null distribution")
	}
}

func TestRenderNullBoxplotEmptyRows(t *testing.T) {
	var buf bytes.Buffer
	if err := NewBoxplotRenderer().RenderNullBoxplot(&buf, nil, nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestSummarizeSkipsNonFinite(t *testing.T) {
	null := syntheticNull(3, 200, 0.1)
	null = append(null, math.NaN(), math.Inf(1), math.Inf(-1))

	bs, err := summarize(spin.Result{Map: "isv", R: 0.9, PSpin: 0.01}, null, 0.05)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if bs.q1 > bs.median || bs.median > bs.q3 {
		t.Errorf("quartiles out of order: %v %v %v", bs.q1, bs.median, bs.q3)
	}
	if bs.whiskerLo > bs.q1 || bs.whiskerHi < bs.q3 {
		t.Errorf("whiskers inside box: [%v,%v] vs [%v,%v]", bs.whiskerLo, bs.whiskerHi, bs.q1, bs.q3)
	}
	if !bs.significant {
		t.Error("p=0.01 should mark the dot significant at alpha=0.05")
	}
}

func TestSummarizeRejectsTinySample(t *testing.T) {
	_, err := summarize(spin.Result{Map: "cbv"}, []float64{0.1, math.NaN(), 0.2}, 0.05)
	if err == nil {
		t.Fatal("expected error for too few finite values")
	}
}
