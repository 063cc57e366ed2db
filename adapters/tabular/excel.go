package tabular

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/xuri/excelize/v2"

	"brainmaps/domain/spin"
)

// ExportWorkbook writes both result tables to a two-sheet Excel workbook,
// each sheet mirroring the ordering of its CSV counterpart.
func (s *Store) ExportWorkbook(raw, corrected []spin.Result) error {
	if err := os.MkdirAll(s.outDir, 0o755); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, "Correlations", []string{"map", "r", "p_spin"}, raw,
		func(r spin.Result) []interface{} { return []interface{}{string(r.Map), r.R, r.PSpin} },
		func(a, b spin.Result) bool { return a.PSpin < b.PSpin }); err != nil {
		return err
	}
	if err := writeSheet(f, "FDR", []string{"map", "r", "p_spin", "p_fdr", "sig_fdr"}, corrected,
		func(r spin.Result) []interface{} {
			return []interface{}{string(r.Map), r.R, r.PSpin, r.PFDR, strconv.FormatBool(r.SigFDR)}
		},
		func(a, b spin.Result) bool { return a.PFDR < b.PFDR }); err != nil {
		return err
	}

	// excelize always starts with a default sheet; replace it with ours.
	idx, err := f.GetSheetIndex("Correlations")
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	if err := f.SaveAs(s.WorkbookPath()); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, header []string, rows []spin.Result,
	cells func(spin.Result) []interface{}, less func(a, b spin.Result) bool) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	sorted := append([]spin.Result(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := setRow(f, name, 1, headerRow); err != nil {
		return err
	}
	for i, r := range sorted {
		if err := setRow(f, name, i+2, cells(r)); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
