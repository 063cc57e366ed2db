package catalog

import (
	"testing"

	"brainmaps/domain/surface"
)

func TestTargets_WellFormed(t *testing.T) {
	targets := Targets()
	if len(targets) != 12 {
		t.Fatalf("expected 12 targets, got %d", len(targets))
	}

	seen := map[string]bool{}
	for _, e := range targets {
		if seen[string(e.Name)] {
			t.Errorf("duplicate target %q", e.Name)
		}
		seen[string(e.Name)] = true

		if e.Label == "" || e.Dataset == "" || e.Desc == "" {
			t.Errorf("target %q is missing metadata", e.Name)
		}
		if _, err := surface.VerticesPerHemi(e.Space, e.Density); err != nil {
			t.Errorf("target %q: %v", e.Name, err)
		}
	}
}

func TestLookupAndLabels(t *testing.T) {
	if _, ok := Lookup("source_thickness"); !ok {
		t.Error("source entry not found by name")
	}
	if _, ok := Lookup("no_such_map"); ok {
		t.Error("unexpected hit for unknown name")
	}

	if got := DisplayLabel("myelin"); got != "T1w/T2w Ratio" {
		t.Errorf("DisplayLabel(myelin) = %q", got)
	}
	if got := DisplayLabel("myelin_fsLR32k"); got != "T1w/T2w Ratio" {
		t.Errorf("DisplayLabel with transform suffix = %q", got)
	}
	if got := DisplayLabel("custom"); got != "custom" {
		t.Errorf("unknown names should pass through, got %q", got)
	}
}

func TestSingleHemiTargets(t *testing.T) {
	for _, e := range Targets() {
		switch e.Name {
		case "devexp", "evoexp":
			if !e.SingleHemi() || e.Hemi != surface.HemiRight {
				t.Errorf("%q should be right-hemisphere only", e.Name)
			}
		default:
			if e.SingleHemi() {
				t.Errorf("%q unexpectedly single-hemisphere", e.Name)
			}
		}
	}
}
