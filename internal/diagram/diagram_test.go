package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func sampleData() UtilizationData {
	return UtilizationData{
		Title: "Utilization",
		Bars: []Bar{
			{Label: "Screws", Utilization: 32.8, Compliant: true},
			{Label: "Nails", Utilization: 134, Compliant: false},
			{Label: "Bolts", Failed: true, Note: "bolts.class: unknown grade"},
		},
	}
}

func TestDrawUtilizationBars(t *testing.T) {
	out := DrawUtilizationBars(sampleData())

	for _, want := range []string{"UTILIZATION", "32.8% ✓", "134.0% ✗", "cannot compute: bolts.class", "100%"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}

	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Screws") {
			if n := strings.Count(line, "█"); n != 13 {
				t.Errorf("screws bar has %d cells, want 13", n)
			}
		}
		if strings.Contains(line, "Nails") && !strings.Contains(line, "▓") {
			t.Errorf("overloaded bar should cross the limit: %q", line)
		}
	}
}

func TestDrawUtilizationBarsClampsOverflow(t *testing.T) {
	out := DrawUtilizationBars(UtilizationData{Bars: []Bar{{Label: "X", Utilization: 900}}})
	if !strings.Contains(out, "»") {
		t.Errorf("clamped bar should end with »:\n%s", out)
	}
}

func TestDrawSummaryBoxIsAligned(t *testing.T) {
	body := []string{"Fv,Rd = 2292 N", "η = 32.8 %"}
	box := DrawSummaryBox("RESULT", body)
	lines := strings.Split(strings.TrimRight(box, "\n"), "\n")
	// Top, title, separator, body, bottom
	if want := len(body) + 4; len(lines) != want {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), want, box)
	}
	width := utf8.RuneCountInString(lines[0])
	for _, l := range lines[1:] {
		if n := utf8.RuneCountInString(l); n != width {
			t.Errorf("line %q has width %d, want %d", l, n, width)
		}
	}
}

func TestDrawSweepGraph(t *testing.T) {
	out := DrawSweepGraph(SweepData{
		Caption:   "Fv,Rd",
		Diameters: []float64{6, 8, 10},
		Values:    []float64{1500, 2292, 3100},
	})
	if !strings.Contains(out, "Fv,Rd (d = 6 … 10 mm)") {
		t.Errorf("caption missing:\n%s", out)
	}
	if DrawSweepGraph(SweepData{}) != "" {
		t.Error("empty sweep should draw nothing")
	}
}

func TestExportUtilizationChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts", "util.png")
	written, err := ExportUtilizationChart(sampleData(), path)
	if err != nil {
		t.Fatalf("ExportUtilizationChart: %v", err)
	}
	if written != path {
		t.Errorf("written to %q, want %q", written, path)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Fatalf("chart not written: %v", err)
	}

	if _, err := ExportUtilizationChart(UtilizationData{}, path); err == nil {
		t.Error("expected an error for an empty chart")
	}
}

func TestExportSweepChart(t *testing.T) {
	dir := t.TempDir()
	data := SweepData{Caption: "Bolts", Diameters: []float64{8, 10, 12}, Values: []float64{4000, 5000, 6000}}

	if _, err := ExportSweepChart(data, 12, filepath.Join(dir, "sweep.svg")); err != nil {
		t.Fatalf("ExportSweepChart: %v", err)
	}
	// Unknown extensions fall back to PNG
	written, err := ExportSweepChart(data, 0, filepath.Join(dir, "sweep"))
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "sweep.png"); written != want {
		t.Errorf("written to %q, want %q", written, want)
	}
	if _, err := os.Stat(written); err != nil {
		t.Errorf("fallback PNG missing: %v", err)
	}

	data.Values = data.Values[:2]
	if _, err := ExportSweepChart(data, 0, filepath.Join(dir, "bad.png")); err == nil {
		t.Error("expected an error for mismatched sweep lengths")
	}
}
