// Package tabular persists the correspondence tables as CSV files and an
// Excel workbook under the output directory.
package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"brainmaps/domain/core"
	"brainmaps/domain/spin"
)

const (
	correlationsFile    = "correlations.csv"
	correlationsFDRFile = "correlations_fdr.csv"
	workbookFile        = "correlations.xlsx"
)

// Store writes and reads result tables under outDir.
type Store struct {
	outDir string
}

// NewStore creates a result store rooted at outDir.
func NewStore(outDir string) *Store {
	return &Store{outDir: outDir}
}

// CorrelationsPath is the raw results table.
func (s *Store) CorrelationsPath() string { return filepath.Join(s.outDir, correlationsFile) }

// CorrelationsFDRPath is the corrected results table.
func (s *Store) CorrelationsFDRPath() string { return filepath.Join(s.outDir, correlationsFDRFile) }

// WorkbookPath is the Excel export.
func (s *Store) WorkbookPath() string { return filepath.Join(s.outDir, workbookFile) }

// WriteCorrelations persists the raw table, sorted by ascending p_spin.
func (s *Store) WriteCorrelations(rows []spin.Result) error {
	sorted := append([]spin.Result(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].PSpin < sorted[j].PSpin })

	records := [][]string{{"map", "r", "p_spin"}}
	for _, r := range sorted {
		records = append(records, []string{string(r.Map), formatFloat(r.R), formatFloat(r.PSpin)})
	}
	return s.writeCSV(s.CorrelationsPath(), records)
}

// WriteCorrelationsFDR persists the corrected table, sorted by ascending
// adjusted p-value.
func (s *Store) WriteCorrelationsFDR(rows []spin.Result) error {
	sorted := append([]spin.Result(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].PFDR < sorted[j].PFDR })

	records := [][]string{{"map", "r", "p_spin", "p_fdr", "sig_fdr"}}
	for _, r := range sorted {
		records = append(records, []string{
			string(r.Map), formatFloat(r.R), formatFloat(r.PSpin),
			formatFloat(r.PFDR), strconv.FormatBool(r.SigFDR),
		})
	}
	return s.writeCSV(s.CorrelationsFDRPath(), records)
}

// ReadCorrelations loads the raw table.
func (s *Store) ReadCorrelations() ([]spin.Result, error) {
	records, err := s.readCSV(s.CorrelationsPath(), "stats", 3)
	if err != nil {
		return nil, err
	}
	rows := make([]spin.Result, 0, len(records))
	for _, rec := range records {
		r, err := parseRow(rec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// ReadCorrelationsFDR loads the corrected table.
func (s *Store) ReadCorrelationsFDR() ([]spin.Result, error) {
	records, err := s.readCSV(s.CorrelationsFDRPath(), "fdr", 5)
	if err != nil {
		return nil, err
	}
	rows := make([]spin.Result, 0, len(records))
	for _, rec := range records {
		r, err := parseRow(rec)
		if err != nil {
			return nil, err
		}
		if r.PFDR, err = strconv.ParseFloat(rec[3], 64); err != nil {
			return nil, fmt.Errorf("parse p_fdr for %q: %w", rec[0], err)
		}
		if r.SigFDR, err = strconv.ParseBool(rec[4]); err != nil {
			return nil, fmt.Errorf("parse sig_fdr for %q: %w", rec[0], err)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func parseRow(rec []string) (spin.Result, error) {
	r := spin.Result{Map: core.MapKey(rec[0])}
	var err error
	if r.R, err = strconv.ParseFloat(rec[1], 64); err != nil {
		return spin.Result{}, fmt.Errorf("parse r for %q: %w", rec[0], err)
	}
	if r.PSpin, err = strconv.ParseFloat(rec[2], 64); err != nil {
		return spin.Result{}, fmt.Errorf("parse p_spin for %q: %w", rec[0], err)
	}
	return r, nil
}

func (s *Store) writeCSV(path string, records [][]string) error {
	if err := os.MkdirAll(s.outDir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return w.Error()
}

func (s *Store) readCSV(path, stage string, wantCols int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.NewMissingArtifactError(path, stage)
		}
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}
	for i, rec := range records {
		if len(rec) != wantCols {
			return nil, fmt.Errorf("%s row %d has %d columns, expected %d", path, i, len(rec), wantCols)
		}
	}
	return records[1:], nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
