// Package render draws the null-distribution summary figure as a PNG.
// The figure is pure geometry; map labels and numbers live in the HTML
// report instead of being rasterized here.
package render

import (
	"fmt"
	"image/color"
	"image/png"
	"io"
	"math"
	"sort"

	montstats "github.com/montanaflynn/stats"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"brainmaps/domain/core"
	"brainmaps/domain/spin"
)

var (
	boxFill       = color.RGBA{229, 229, 229, 255}
	boxStroke     = color.RGBA{80, 80, 80, 255}
	sigMarker     = color.RGBA{204, 37, 41, 255}
	nonSigMarker  = color.RGBA{213, 143, 108, 255}
	axisStroke    = color.RGBA{40, 40, 40, 255}
	zeroLineColor = color.RGBA{170, 170, 170, 255}
)

// BoxplotRenderer draws one box per map summarizing its null correlation
// distribution, with the observed correlation overlaid as a dot. Dots are
// highlighted when the spin test is significant at MarkerAlpha.
type BoxplotRenderer struct {
	Width       float64 // canvas width in mm
	Height      float64 // canvas height in mm
	Resolution  canvas.Resolution
	YMin, YMax  float64
	MarkerAlpha float64
}

// NewBoxplotRenderer returns a renderer with the default figure geometry.
func NewBoxplotRenderer() *BoxplotRenderer {
	return &BoxplotRenderer{
		Width:       240,
		Height:      120,
		Resolution:  canvas.DPI(300),
		YMin:        -0.8,
		YMax:        0.8,
		MarkerAlpha: 0.05,
	}
}

// RenderNullBoxplot writes the figure as a PNG. Rows are drawn left to
// right in the order given; each row must have a null vector in nulls.
func (br *BoxplotRenderer) RenderNullBoxplot(w io.Writer, rows []spin.Result, nulls map[core.MapKey][]float64) error {
	if len(rows) == 0 {
		return fmt.Errorf("no rows to plot")
	}

	boxes := make([]boxStats, 0, len(rows))
	yMin, yMax := br.YMin, br.YMax
	for _, row := range rows {
		null, ok := nulls[row.Map]
		if !ok {
			return fmt.Errorf("no null distribution for %s", row.Map)
		}
		bs, err := summarize(row, null, br.MarkerAlpha)
		if err != nil {
			return fmt.Errorf("summarize %s: %w", row.Map, err)
		}
		boxes = append(boxes, bs)
		yMin = math.Min(yMin, bs.lo())
		yMax = math.Max(yMax, bs.hi())
	}
	// Breathing room so whiskers never touch the frame.
	pad := 0.05 * (yMax - yMin)
	yMin -= pad
	yMax += pad

	rast := rasterizer.New(br.Width, br.Height, br.Resolution, canvas.DefaultColorSpace)

	bg := canvas.DefaultStyle
	bg.Fill = canvas.Paint{Color: canvas.White}
	rast.RenderPath(canvas.Rectangle(br.Width, br.Height), bg, canvas.Identity)

	const marginX, marginY = 12.0, 10.0
	plotW := br.Width - 2*marginX
	plotH := br.Height - 2*marginY
	toY := func(v float64) float64 {
		return marginY + (v-yMin)/(yMax-yMin)*plotH
	}
	slot := plotW / float64(len(boxes))
	boxW := 0.5 * slot

	// Zero reference line behind everything else.
	zero := canvas.DefaultStyle
	zero.Fill = canvas.Paint{Color: canvas.Transparent}
	zero.Stroke = canvas.Paint{Color: zeroLineColor}
	zero.StrokeWidth = 0.3
	zero.Dashes = []float64{1.5, 1.5}
	rast.RenderPath(hline(marginX, marginX+plotW, toY(0)), zero, canvas.Identity)

	for i, bs := range boxes {
		cx := marginX + (float64(i)+0.5)*slot
		br.drawBox(rast, bs, cx, boxW, toY)
	}

	frame := canvas.DefaultStyle
	frame.Fill = canvas.Paint{Color: canvas.Transparent}
	frame.Stroke = canvas.Paint{Color: axisStroke}
	frame.StrokeWidth = 0.4
	framePath := &canvas.Path{}
	framePath.MoveTo(marginX, marginY)
	framePath.LineTo(marginX, marginY+plotH)
	framePath.MoveTo(marginX, marginY)
	framePath.LineTo(marginX+plotW, marginY)
	rast.RenderPath(framePath, frame, canvas.Identity)

	return png.Encode(w, rast)
}

func (br *BoxplotRenderer) drawBox(rast *rasterizer.Rasterizer, bs boxStats, cx, boxW float64, toY func(float64) float64) {
	half := boxW / 2

	fill := canvas.DefaultStyle
	fill.Fill = canvas.Paint{Color: boxFill}
	fill.Stroke = canvas.Paint{Color: boxStroke}
	fill.StrokeWidth = 0.3

	box := &canvas.Path{}
	box.MoveTo(cx-half, toY(bs.q1))
	box.LineTo(cx+half, toY(bs.q1))
	box.LineTo(cx+half, toY(bs.q3))
	box.LineTo(cx-half, toY(bs.q3))
	box.Close()
	rast.RenderPath(box, fill, canvas.Identity)

	line := canvas.DefaultStyle
	line.Fill = canvas.Paint{Color: canvas.Transparent}
	line.Stroke = canvas.Paint{Color: boxStroke}
	line.StrokeWidth = 0.3
	rast.RenderPath(hline(cx-half, cx+half, toY(bs.median)), line, canvas.Identity)
	rast.RenderPath(vline(cx, toY(bs.q3), toY(bs.whiskerHi)), line, canvas.Identity)
	rast.RenderPath(vline(cx, toY(bs.whiskerLo), toY(bs.q1)), line, canvas.Identity)
	rast.RenderPath(hline(cx-half/2, cx+half/2, toY(bs.whiskerHi)), line, canvas.Identity)
	rast.RenderPath(hline(cx-half/2, cx+half/2, toY(bs.whiskerLo)), line, canvas.Identity)

	flier := canvas.DefaultStyle
	flier.Fill = canvas.Paint{Color: canvas.Transparent}
	flier.Stroke = canvas.Paint{Color: boxStroke}
	flier.StrokeWidth = 0.2
	for _, v := range bs.fliers {
		rast.RenderPath(canvas.Circle(0.5).Translate(cx, toY(v)), flier, canvas.Identity)
	}

	dot := canvas.DefaultStyle
	dot.Stroke = canvas.Paint{Color: canvas.Transparent}
	if bs.significant {
		dot.Fill = canvas.Paint{Color: sigMarker}
	} else {
		dot.Fill = canvas.Paint{Color: nonSigMarker}
	}
	rast.RenderPath(canvas.Circle(1.2).Translate(cx, toY(bs.observed)), dot, canvas.Identity)
}

type boxStats struct {
	q1, median, q3       float64
	whiskerLo, whiskerHi float64
	fliers               []float64
	observed             float64
	significant          bool
}

func (b boxStats) lo() float64 {
	lo := math.Min(b.whiskerLo, b.observed)
	for _, v := range b.fliers {
		lo = math.Min(lo, v)
	}
	return lo
}

func (b boxStats) hi() float64 {
	hi := math.Max(b.whiskerHi, b.observed)
	for _, v := range b.fliers {
		hi = math.Max(hi, v)
	}
	return hi
}

func summarize(row spin.Result, null []float64, alpha float64) (boxStats, error) {
	finite := make([]float64, 0, len(null))
	for _, v := range null {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) < 4 {
		return boxStats{}, fmt.Errorf("only %d finite null values", len(finite))
	}

	q, err := montstats.Quartile(finite)
	if err != nil {
		return boxStats{}, err
	}

	iqr := q.Q3 - q.Q1
	loFence := q.Q1 - 1.5*iqr
	hiFence := q.Q3 + 1.5*iqr

	sort.Float64s(finite)
	bs := boxStats{
		q1:          q.Q1,
		median:      q.Q2,
		q3:          q.Q3,
		whiskerLo:   q.Q1,
		whiskerHi:   q.Q3,
		observed:    row.R,
		significant: row.PSpin < alpha,
	}
	// Whiskers reach the most extreme values inside the fences; anything
	// outside is a flier.
	for _, v := range finite {
		if v < loFence || v > hiFence {
			bs.fliers = append(bs.fliers, v)
			continue
		}
		if v < bs.whiskerLo {
			bs.whiskerLo = v
		}
		if v > bs.whiskerHi {
			bs.whiskerHi = v
		}
	}
	return bs, nil
}

func hline(x0, x1, y float64) *canvas.Path {
	p := &canvas.Path{}
	p.MoveTo(x0, y)
	p.LineTo(x1, y)
	return p
}

func vline(x, y0, y1 float64) *canvas.Path {
	p := &canvas.Path{}
	p.MoveTo(x, y0)
	p.LineTo(x, y1)
	return p
}
