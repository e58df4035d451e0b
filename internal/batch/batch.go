package batch

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gotimber/internal/connection"
	"github.com/alexiusacademia/gotimber/internal/ec5"
	"github.com/alexiusacademia/gotimber/internal/report"
	"github.com/xuri/excelize/v2"
)

// Row is one connection read from a workbook
type Row struct {
	Line  int // 1-based sheet row
	Input connection.Input
}

// RowError reports a cell that could not be parsed. The row is skipped.
type RowError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, %s: %v", e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ErrEmptySheet is returned when the first sheet has no data rows
var ErrEmptySheet = errors.New("sheet has no data rows")

type setter func(in *connection.Input, v string) error

// columns maps header names to the input field they fill. Missing columns
// and empty cells keep the default parameter set.
var columns = map[string]setter{
	"wood_grade": func(in *connection.Input, v string) error {
		in.WoodGrade = v
		return nil
	},
	"service_class": func(in *connection.Input, v string) (err error) {
		in.ServiceClass, err = ec5.ParseServiceClass(v)
		return err
	},
	"load_duration": func(in *connection.Input, v string) (err error) {
		in.Duration, err = ec5.ParseLoadDuration(v)
		return err
	},
	"t1":           float(func(in *connection.Input) *float64 { return &in.Members.T1 }),
	"t2":           float(func(in *connection.Input) *float64 { return &in.Members.T2 }),
	"elu_tension":  float(func(in *connection.Input) *float64 { return &in.Forces.ELUTension }),
	"elu_shear":    float(func(in *connection.Input) *float64 { return &in.Forces.ELUShear }),
	"els_tension":  float(func(in *connection.Input) *float64 { return &in.Forces.ELSTension }),
	"els_shear":    float(func(in *connection.Input) *float64 { return &in.Forces.ELSShear }),
	"screw_d":      float(func(in *connection.Input) *float64 { return &in.Screw.Diameter }),
	"screw_length": float(func(in *connection.Input) *float64 { return &in.Screw.Length }),
	"screw_fuk":    float(func(in *connection.Input) *float64 { return &in.Screw.Fuk }),
	"screw_angle":  float(func(in *connection.Input) *float64 { return &in.Screw.Angle1 }),
	"screw_count":  integer(func(in *connection.Input) *int { return &in.Screw.Count }),
	"nail_d":       float(func(in *connection.Input) *float64 { return &in.Nail.Diameter }),
	"nail_length":  float(func(in *connection.Input) *float64 { return &in.Nail.Length }),
	"nail_count":   integer(func(in *connection.Input) *int { return &in.Nail.Count }),
	"bolt_d":       float(func(in *connection.Input) *float64 { return &in.Bolt.Diameter }),
	"bolt_grade": func(in *connection.Input, v string) error {
		in.Bolt.Grade = v
		return nil
	},
	"bolt_count": integer(func(in *connection.Input) *int { return &in.Bolt.Count }),
}

func float(field func(*connection.Input) *float64) setter {
	return func(in *connection.Input, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", v)
		}
		*field(in) = f
		return nil
	}
}

func integer(field func(*connection.Input) *int) setter {
	return func(in *connection.Input, v string) error {
		if n, err := strconv.Atoi(v); err == nil {
			*field(in) = n
			return nil
		}
		// Numeric cells may store whole counts as 4.0
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return fmt.Errorf("%q is not an integer", v)
		}
		*field(in) = int(f)
		return nil
	}
}

// Columns lists the recognized header names
func Columns() []string {
	return []string{
		"wood_grade", "service_class", "load_duration", "t1", "t2",
		"elu_tension", "elu_shear", "els_tension", "els_shear",
		"screw_d", "screw_length", "screw_fuk", "screw_angle", "screw_count",
		"nail_d", "nail_length", "nail_count",
		"bolt_d", "bolt_grade", "bolt_count",
	}
}

// ReadInputs reads one connection per row from the first sheet of an xlsx
// workbook. The first row names the columns. Numeric cells are read as
// stored, whatever their display format. Rows with unparsable cells are
// skipped; their errors are joined into the returned error alongside the
// rows that did parse.
func ReadInputs(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	// Raw cell values ignore display formats such as #,##0
	cells, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(cells) < 2 {
		return nil, ErrEmptySheet
	}

	header := make([]setter, len(cells[0]))
	names := make([]string, len(cells[0]))
	for i, h := range cells[0] {
		name := strings.ToLower(strings.TrimSpace(h))
		if name == "" {
			continue
		}
		set, ok := columns[name]
		if !ok {
			return nil, fmt.Errorf("unknown column %q", h)
		}
		header[i], names[i] = set, name
	}

	var rows []Row
	var errs []error
	for i, line := range cells[1:] {
		if blank(line) {
			continue
		}
		row := Row{Line: i + 2, Input: connection.DefaultInput()}
		var rowErr error
		for j, v := range line {
			v = strings.TrimSpace(v)
			if j >= len(header) || header[j] == nil || v == "" {
				continue
			}
			if err := header[j](&row.Input, v); err != nil {
				rowErr = &RowError{Line: row.Line, Column: names[j], Err: err}
				break
			}
		}
		if rowErr != nil {
			errs = append(errs, rowErr)
			continue
		}
		rows = append(rows, row)
	}
	return rows, errors.Join(errs...)
}

func blank(line []string) bool {
	for _, v := range line {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// SummaryHeader is the first row of a summary workbook
var SummaryHeader = []string{
	"Row", "Family", "Wood", "Count", "Capacity (N)", "Applied (N)",
	"Utilization (%)", "Mode", "Verdict", "Error",
}

// WriteSummaries writes one line per row and family into a new workbook
func WriteSummaries(w io.Writer, rows []Row, summaries []connection.Summary) error {
	if len(rows) != len(summaries) {
		return fmt.Errorf("%d rows but %d summaries", len(rows), len(summaries))
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &SummaryHeader); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "J", 16); err != nil {
		return err
	}

	line := 2
	for i, s := range summaries {
		for _, o := range s.Outcomes() {
			values := []any{rows[i].Line, report.FamilyName(o.Family), rows[i].Input.WoodGrade}
			if o.OK() {
				r := o.Result
				values = append(values, r.Count, round(r.Capacity, 0), r.Applied,
					round(r.Utilization, 2), string(r.Details.Mode), report.Verdict(o), "")
			} else {
				values = append(values, "", "", s.Applied, "", "", report.Verdict(o), o.Err.Error())
			}
			cell, err := excelize.CoordinatesToCellName(1, line)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return err
			}
			line++
		}
	}
	return f.Write(w)
}

func round(v float64, places int) float64 {
	p, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	return p
}
