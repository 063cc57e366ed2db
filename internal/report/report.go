// Package report renders a human-readable HTML summary of a pipeline run.
// The summary is composed as Markdown and converted to a standalone HTML
// page.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"brainmaps/domain/catalog"
	"brainmaps/domain/spin"
)

const fileName = "report.html"

// RunInfo carries the run metadata shown in the report header.
type RunInfo struct {
	RunID        string
	Timestamp    string
	Permutations int
	Alpha        float64
	NullModel    string
	Space        string
}

// Write composes the summary for corrected results and writes it to
// <outDir>/report.html. Rows are listed in the order given.
func Write(outDir string, info RunInfo, rows []spin.Result) (string, error) {
	md := Compose(info, rows)

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: "Spin test report",
	})
	page := markdown.Render(doc, renderer)

	path := filepath.Join(outDir, fileName)
	if err := os.WriteFile(path, page, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// Compose builds the Markdown source of the report.
func Compose(info RunInfo, rows []spin.Result) string {
	var b strings.Builder

	b.WriteString("# Cortical map spin test\n\n")
	fmt.Fprintf(&b, "Run `%s` at %s.\n\n", info.RunID, info.Timestamp)
	fmt.Fprintf(&b, "- Null model: %s (%d permutations)\n", info.NullModel, info.Permutations)
	fmt.Fprintf(&b, "- Surface space: %s\n", info.Space)
	fmt.Fprintf(&b, "- FDR level: %g\n\n", info.Alpha)

	nSig := 0
	for _, r := range rows {
		if r.SigFDR {
			nSig++
		}
	}
	fmt.Fprintf(&b, "%d of %d maps remain significant after correction.\n\n", nSig, len(rows))

	b.WriteString("| Map | r | p (spin) | p (FDR) | Significant |\n")
	b.WriteString("| --- | ---: | ---: | ---: | :---: |\n")
	for _, r := range rows {
		mark := ""
		if r.SigFDR {
			mark = "yes"
		}
		fmt.Fprintf(&b, "| %s | %.6g | %.6g | %.6g | %s |\n",
			catalog.DisplayLabel(r.Map), r.R, r.PSpin, r.PFDR, mark)
	}
	b.WriteString("\n![Null distributions](figs/boxplots.png)\n")

	return b.String()
}
