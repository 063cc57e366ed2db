// Package catalog registers the source map and the target maps of the
// correspondence analysis: where each annotation comes from, which surface
// space it ships in, and how it is labeled in figures and reports.
package catalog

import (
	"strings"

	"brainmaps/domain/core"
	"brainmaps/domain/surface"
)

// SpaceDensity pairs a surface template with its resolution.
type SpaceDensity struct {
	Space   surface.Space
	Density surface.Density
}

// Working is the common analysis space all maps are brought into before
// any statistics are computed.
var Working = SpaceDensity{surface.SpaceFsLR, surface.Den32k}

// Entry describes one annotation in the catalog.
type Entry struct {
	Name    core.MapKey
	Dataset string // upstream dataset identifier, e.g. "hcps1200"
	Desc    string // annotation descriptor within the dataset
	Space   surface.Space
	Density surface.Density
	Hemi    surface.Hemisphere // set when only one hemisphere exists
	Label   string             // publication-style display label
}

// SingleHemi reports whether the annotation covers one hemisphere only.
func (e Entry) SingleHemi() bool { return e.Hemi != "" }

// SourceEntry is the reference map every target is correlated against.
func SourceEntry() Entry {
	return Entry{
		Name:    "source_thickness",
		Dataset: "hcps1200",
		Desc:    "thickness",
		Space:   surface.SpaceFsLR,
		Density: surface.Den32k,
		Label:   "Cortical Thickness",
	}
}

// Targets returns the target maps in canonical order.
func Targets() []Entry {
	return []Entry{
		{Name: "genepc1", Dataset: "abagen", Desc: "genepc1", Space: surface.SpaceFsaverage, Density: surface.Den10k, Label: "PC1 Gene Expression"},
		{Name: "myelin", Dataset: "hcps1200", Desc: "myelinmap", Space: surface.SpaceFsLR, Density: surface.Den32k, Label: "T1w/T2w Ratio"},
		{Name: "devexp", Dataset: "hill2010", Desc: "devexp", Space: surface.SpaceFsLR, Density: surface.Den164k, Hemi: surface.HemiRight, Label: "Developmental Expansion"},
		{Name: "evoexp", Dataset: "hill2010", Desc: "evoexp", Space: surface.SpaceFsLR, Density: surface.Den164k, Hemi: surface.HemiRight, Label: "Evolutionary Expansion"},
		{Name: "gradient_pc1", Dataset: "margulies2016", Desc: "fcgradient01", Space: surface.SpaceFsLR, Density: surface.Den32k, Label: "Functional Gradient"},
		{Name: "isv", Dataset: "mueller2013", Desc: "intersubjvar", Space: surface.SpaceFsLR, Density: surface.Den164k, Label: "Intersubject Variability"},
		{Name: "cbf", Dataset: "raichle", Desc: "cbf", Space: surface.SpaceFsLR, Density: surface.Den164k, Label: "Cerebral Blood Flow"},
		{Name: "cbv", Dataset: "raichle", Desc: "cbv", Space: surface.SpaceFsLR, Density: surface.Den164k, Label: "Cerebral Blood Volume"},
		{Name: "cmro2", Dataset: "raichle", Desc: "cmr02", Space: surface.SpaceFsLR, Density: surface.Den164k, Label: "Oxygen Metabolism"},
		{Name: "cmrglc", Dataset: "raichle", Desc: "cmrglc", Space: surface.SpaceFsLR, Density: surface.Den164k, Label: "Glucose Metabolism"},
		{Name: "scalingnih", Dataset: "reardon2018", Desc: "scalingnih", Space: surface.SpaceCivet, Density: surface.Den41k, Label: "Allometric Scaling (NIH)"},
		{Name: "scalingpnc", Dataset: "reardon2018", Desc: "scalingpnc", Space: surface.SpaceCivet, Density: surface.Den41k, Label: "Allometric Scaling (PNC)"},
	}
}

// Lookup finds a catalog entry by map name.
func Lookup(name core.MapKey) (Entry, bool) {
	if SourceEntry().Name == name {
		return SourceEntry(), true
	}
	for _, e := range Targets() {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// DisplayLabel resolves a map name to its figure label, tolerating the
// "_fsLR32k" suffix of transformed artifacts. Unknown names pass through.
func DisplayLabel(name core.MapKey) string {
	base := core.MapKey(strings.TrimSuffix(string(name), "_fsLR32k"))
	if e, ok := Lookup(base); ok {
		return e.Label
	}
	return string(name)
}
