package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexiusacademia/gotimber/internal/connection"
	"github.com/alexiusacademia/gotimber/internal/ec5"
)

func TestWriteProducesPDF(t *testing.T) {
	in := connection.DefaultInput()
	s := connection.EvaluateAll(in)

	var buf bytes.Buffer
	meta := Meta{Project: "Barn roof", Author: "Ingénieur", Company: "Bois & Co", Notes: "Checked for the ridge joint.", Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	if err := Write(&buf, meta, in, s); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestWriteWithFailedFamily(t *testing.T) {
	in := connection.DefaultInput()
	in.Bolt.Grade = "unknown"
	in.Nail.Count = 0
	s := connection.EvaluateAll(in)

	path := filepath.Join(t.TempDir(), "out", "report.pdf")
	if err := WriteFile(path, Meta{}, in, s); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Fatalf("report not written: %v", err)
	}
}

func TestVerdict(t *testing.T) {
	s := connection.EvaluateAll(connection.DefaultInput())
	if v := Verdict(s.Screw); v != "CONFORME" {
		t.Errorf("screws verdict = %q", v)
	}

	in := connection.DefaultInput()
	in.Forces.ELUShear = 50000
	s = connection.EvaluateAll(in)
	if v := Verdict(s.Nail); v != "NON CONFORME" {
		t.Errorf("overloaded nails verdict = %q", v)
	}
	if v := Verdict(connection.Outcome{Family: ec5.Bolts, Err: ec5.ErrUnknownGrade}); v != "CANNOT COMPUTE" {
		t.Errorf("failed verdict = %q", v)
	}
	if FamilyName(ec5.Screws) != "Tirefonds/Screws" {
		t.Errorf("FamilyName(screws) = %q", FamilyName(ec5.Screws))
	}
}
