package report

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"brainmaps/domain/spin"
)

func testRows() []spin.Result {
	return []spin.Result{
		{Map: "myelin", R: 0.52, PSpin: 0.001998, PFDR: 0.005994, SigFDR: true},
		{Map: "genepc1", R: -0.31, PSpin: 0.043956, PFDR: 0.065934, SigFDR: false},
	}
}

func testInfo() RunInfo {
	return RunInfo{
		RunID:        "0198f1f2-demo",
		Timestamp:    "2026-08-30T10:00:00Z",
		Permutations: 1000,
		Alpha:        0.05,
		NullModel:    "spins",
		Space:        "fsLR-32k",
	}
}

func TestComposeIncludesLabelsAndCounts(t *testing.T) {
	md := Compose(testInfo(), testRows())

	require.Contains(t, md, "T1w/T2w Ratio")
	require.Contains(t, md, "PC1 Gene Expression")
	require.Contains(t, md, "1 of 2 maps remain significant")
	require.Contains(t, md, "1000 permutations")
	require.Contains(t, md, "figs/boxplots.png")
}

func TestWriteProducesHTMLPage(t *testing.T) {
	dir := t.TempDir()

	path, err := Write(dir, testInfo(), testRows())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(data)

	require.True(t, strings.Contains(page, "<table>"), "tables extension should render a table")
	require.Contains(t, page, "<html>")
	require.Contains(t, page, "T1w/T2w Ratio")
}

func TestComposeEmptyRun(t *testing.T) {
	md := Compose(testInfo(), nil)
	require.Contains(t, md, "0 of 0 maps")
}
