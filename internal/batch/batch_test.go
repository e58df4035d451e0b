package batch

import (
	"bytes"
	"errors"
	"testing"

	"github.com/alexiusacademia/gotimber/internal/connection"
	"github.com/alexiusacademia/gotimber/internal/ec5"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestReadInputs(t *testing.T) {
	buf := workbook(t,
		[]any{"wood_grade", "service_class", "load_duration", "t1", "t2", "elu_shear", "screw_count", "bolt_grade"},
		[]any{"C24", 1, "medium_term", 40, 60, 3000, 4, "8.8"},
		[]any{"GL24h", "SC2", "short term", 50, 80, 6000, 6, "10.9"},
		[]any{"C30", 3, "long_term", 45, 45, 1000, 2, "4.6"},
	)

	rows, err := ReadInputs(buf)
	if err != nil {
		t.Fatalf("ReadInputs: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	first := rows[0]
	if first.Line != 2 {
		t.Errorf("first line = %d, want 2", first.Line)
	}
	want := connection.DefaultInput()
	if first.Input != want {
		t.Errorf("row equal to the defaults parsed as %+v", first.Input)
	}

	second := rows[1].Input
	if second.WoodGrade != "GL24h" || second.ServiceClass != ec5.ServiceClass2 || second.Duration != ec5.ShortTerm {
		t.Errorf("second row = %+v", second)
	}
	if second.Members.T2 != 80 || second.Screw.Count != 6 || second.Bolt.Grade != "10.9" {
		t.Errorf("second row values = %+v", second)
	}
	// Columns absent from the sheet keep their defaults
	if second.Nail != want.Nail {
		t.Errorf("nails = %+v, want defaults", second.Nail)
	}

	// An unknown grade is a valid cell; it fails at evaluation, not parsing
	if rows[2].Line != 4 || rows[2].Input.WoodGrade != "C30" {
		t.Errorf("third row = %+v", rows[2])
	}
}

func TestReadInputsSkipsBadRows(t *testing.T) {
	buf := workbook(t,
		[]any{"wood_grade", "t1", "screw_count"},
		[]any{"C24", "forty", 4},
		[]any{"C24", 40, 4},
		[]any{"C24", 40, "4.5"},
		[]any{"C24", "40,5", 4},
	)

	rows, err := ReadInputs(buf)
	if len(rows) != 1 || rows[0].Line != 3 {
		t.Fatalf("rows = %+v, want only line 3", rows)
	}

	var rowErr *RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("error %v does not carry a RowError", err)
	}
	if rowErr.Line != 2 || rowErr.Column != "t1" {
		t.Errorf("first row error = %v", rowErr)
	}
	if got := err.Error(); got != "row 2, t1: \"forty\" is not a number\nrow 4, screw_count: \"4.5\" is not an integer\nrow 5, t1: \"40,5\" is not a number" {
		t.Errorf("joined error = %q", got)
	}
}

func TestReadInputsIgnoresNumberFormats(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetRow("Sheet1", "A1", &[]any{"wood_grade", "elu_shear", "screw_count", "t1"}); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSheetRow("Sheet1", "A2", &[]any{"C24", 15000, 4, 40.5}); err != nil {
		t.Fatal(err)
	}
	// #,##0 on the force, 0.00 on the count and the thickness
	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		t.Fatal(err)
	}
	fixed, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellStyle("Sheet1", "B2", "B2", thousands); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellStyle("Sheet1", "C2", "D2", fixed); err != nil {
		t.Fatal(err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	rows, err := ReadInputs(buf)
	if err != nil {
		t.Fatalf("ReadInputs: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	in := rows[0].Input
	if in.Forces.ELUShear != 15000 {
		t.Errorf("elu_shear = %g, want 15000", in.Forces.ELUShear)
	}
	if in.Screw.Count != 4 {
		t.Errorf("screw_count = %d, want 4", in.Screw.Count)
	}
	if in.Members.T1 != 40.5 {
		t.Errorf("t1 = %g, want 40.5", in.Members.T1)
	}
}

func TestReadInputsRejectsBadSheets(t *testing.T) {
	if _, err := ReadInputs(workbook(t, []any{"wood_grade"})); !errors.Is(err, ErrEmptySheet) {
		t.Errorf("header only: err = %v, want ErrEmptySheet", err)
	}
	if _, err := ReadInputs(workbook(t, []any{"wood_grade", "colour"}, []any{"C24", "red"})); err == nil {
		t.Error("expected an error for an unknown column")
	}
	if _, err := ReadInputs(bytes.NewBufferString("not a workbook")); err == nil {
		t.Error("expected an error for a non-xlsx input")
	}
}

func TestWriteSummaries(t *testing.T) {
	ok := connection.DefaultInput()
	bad := connection.DefaultInput()
	bad.Bolt.Grade = "12.9"

	rows := []Row{{Line: 2, Input: ok}, {Line: 3, Input: bad}}
	summaries := []connection.Summary{connection.EvaluateAll(ok), connection.EvaluateAll(bad)}

	var buf bytes.Buffer
	if err := WriteSummaries(&buf, rows, summaries); err != nil {
		t.Fatalf("WriteSummaries: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	got, err := f.GetRows("Summary")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1+2*3 {
		t.Fatalf("got %d lines, want 7", len(got))
	}
	if got[0][0] != "Row" || got[0][8] != "Verdict" {
		t.Errorf("header = %v", got[0])
	}
	if got[1][1] != "Tirefonds/Screws" || got[1][8] != "CONFORME" {
		t.Errorf("screw line = %v", got[1])
	}
	failed := got[6]
	if failed[0] != "3" || failed[8] != "CANNOT COMPUTE" || failed[9] == "" {
		t.Errorf("failed bolt line = %v", failed)
	}

	if err := WriteSummaries(&buf, rows, summaries[:1]); err == nil {
		t.Error("expected an error for mismatched lengths")
	}
}
