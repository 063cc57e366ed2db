package ports

import (
	"io"

	"brainmaps/domain/core"
	"brainmaps/domain/spin"
)

// NullStore persists the raw per-target null correlation vectors between
// the stats step and the figure step.
type NullStore interface {
	Save(name core.MapKey, nulls []float64) error
	Load(name core.MapKey) ([]float64, error)
	Path(name core.MapKey) string
}

// ResultStore persists the correspondence tables.
type ResultStore interface {
	WriteCorrelations(rows []spin.Result) error
	WriteCorrelationsFDR(rows []spin.Result) error
	ReadCorrelations() ([]spin.Result, error)
	ReadCorrelationsFDR() ([]spin.Result, error)
	ExportWorkbook(raw, corrected []spin.Result) error
}

// FigureRenderer draws the summary comparison figure: one null
// distribution box per target with the empirical correlation overlaid.
type FigureRenderer interface {
	RenderNullBoxplot(w io.Writer, rows []spin.Result, nulls map[core.MapKey][]float64) error
}
