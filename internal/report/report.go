package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alexiusacademia/gotimber/internal/connection"
	"github.com/alexiusacademia/gotimber/internal/ec5"
	"github.com/alexiusacademia/gotimber/internal/version"
	"github.com/phpdave11/gofpdf"
)

// Meta is the header information of a report
type Meta struct {
	Title   string    `json:"title"`
	Project string    `json:"project"`
	Author  string    `json:"author"`
	Company string    `json:"company"`
	Notes   string    `json:"notes"`
	Date    time.Time `json:"date"`
}

// Verdict is the compliance label of a family outcome
func Verdict(o connection.Outcome) string {
	if !o.OK() {
		return "CANNOT COMPUTE"
	}
	return label(o.Result.Compliant)
}

func label(compliant bool) string {
	if compliant {
		return "CONFORME"
	}
	return "NON CONFORME"
}

// FamilyName is the display name of a fastener family
func FamilyName(f ec5.Family) string {
	switch f {
	case ec5.Screws:
		return "Tirefonds/Screws"
	case ec5.Nails:
		return "Nails"
	case ec5.Bolts:
		return "Bolts"
	}
	return string(f)
}

// Write renders the connection report as PDF
func Write(w io.Writer, meta Meta, in connection.Input, s connection.Summary) error {
	if meta.Title == "" {
		meta.Title = "Eurocode 5 Wood Connection Report"
	}
	if meta.Date.IsZero() {
		meta.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetCreator("gotimber v"+version.Version, true)
	pdf.AddPage()

	// Header
	if meta.Company != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 5, tr(meta.Company), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(meta.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated on %s - %s", meta.Date.Format("2006-01-02"), version.Code), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if meta.Project != "" || meta.Author != "" {
		pdf.SetFont("Helvetica", "", 11)
		if meta.Project != "" {
			pdf.Cell(0, 6, tr("Project: "+meta.Project))
			pdf.Ln(6)
		}
		if meta.Author != "" {
			pdf.Cell(0, 6, tr("Author: "+meta.Author))
			pdf.Ln(6)
		}
		pdf.Ln(2)
	}

	section(pdf, "Summary")
	summaryTable(pdf, tr, s)

	section(pdf, "Input Parameters")
	inputs := [][2]string{
		{"Wood class", in.WoodGrade},
		{"Service class", fmt.Sprintf("%d", in.ServiceClass)},
		{"Load duration", string(in.Duration)},
		{"Member thicknesses t1 / t2", fmt.Sprintf("%g / %g mm", in.Members.T1, in.Members.T2)},
		{"Applied forces (ELU)", fmt.Sprintf("Tension: %gN, Shear: %gN", in.Forces.ELUTension, in.Forces.ELUShear)},
		{"Applied forces (ELS)", fmt.Sprintf("Tension: %gN, Shear: %gN", in.Forces.ELSTension, in.Forces.ELSShear)},
		{"Screws", fmt.Sprintf("%d x d%g x %g mm, fu,k %g N/mm², angles %g° / %g°",
			in.Screw.Count, in.Screw.Diameter, in.Screw.Length, in.Screw.Fuk, in.Screw.Angle1, in.Screw.Angle2)},
		{"Nails", fmt.Sprintf("%d x d%g x %g mm %s", in.Nail.Count, in.Nail.Diameter, in.Nail.Length, in.Nail.Type)},
		{"Bolts", fmt.Sprintf("%d x M%g grade %s, washer %s", in.Bolt.Count, in.Bolt.Diameter, in.Bolt.Grade, in.Bolt.WasherSize)},
	}
	keyValues(pdf, tr, inputs)

	section(pdf, "Intermediate Values")
	for _, o := range s.Outcomes() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 6, FamilyName(o.Family))
		pdf.Ln(6)
		if !o.OK() {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.Cell(0, 6, tr("cannot compute: "+o.Err.Error()))
			pdf.Ln(8)
			continue
		}
		keyValues(pdf, tr, detailRows(o.Result))
	}

	section(pdf, "Minimum Spacings")
	spacingTable(pdf, in)

	if meta.Notes != "" {
		section(pdf, "Notes")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(meta.Notes), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

// WriteFile renders the report into path, creating the directory if needed
func WriteFile(path string, meta Meta, in connection.Input, s connection.Summary) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, meta, in, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
}

func keyValues(pdf *gofpdf.Fpdf, tr func(string) string, rows [][2]string) {
	for _, r := range rows {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(65, 6, tr(r[0]+":"), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, tr(r[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
}

func summaryTable(pdf *gofpdf.Fpdf, tr func(string) string, s connection.Summary) {
	widths := []float64{45, 35, 35, 30, 45}
	header := []string{"Fastener Type", "Capacity (N)", "Applied (N)", "Utilization", "Compliance"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(242, 242, 242)
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, o := range s.Outcomes() {
		capacity, util := "-", "-"
		if o.OK() {
			capacity = fmt.Sprintf("%.0f", o.Result.Capacity)
			util = fmt.Sprintf("%.1f%%", o.Result.Utilization)
		}
		pdf.CellFormat(widths[0], 7, FamilyName(o.Family), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, capacity, "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 7, fmt.Sprintf("%g", s.Applied), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, util, "1", 0, "R", false, 0, "")

		switch {
		case !o.OK():
			pdf.SetTextColor(128, 128, 128)
		case o.Result.Compliant:
			pdf.SetTextColor(0, 128, 0)
		default:
			pdf.SetTextColor(200, 0, 0)
		}
		pdf.CellFormat(widths[4], 7, tr(Verdict(o)), "1", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(2)
}

func detailRows(r *connection.Result) [][2]string {
	d := r.Details
	rows := [][2]string{
		{"kmod / rho,k", fmt.Sprintf("%.2f / %.0f kg/m³", d.Kmod, d.RhoK)},
		{"fh,k / fh,d", fmt.Sprintf("%.2f / %.2f N/mm²", d.FhK, d.FhD)},
	}
	if d.MyK > 0 {
		rows = append(rows, [2]string{"My,k", fmt.Sprintf("%.0f Nmm", d.MyK)})
	}
	rows = append(rows,
		[2]string{"Fv,Rk / Fv,Rd", fmt.Sprintf("%.0f / %.0f N (%s)", d.FvRk, d.FvRd, d.Mode)},
	)
	if r.Family == ec5.Screws {
		rows = append(rows,
			[2]string{"fax,k", fmt.Sprintf("%.2f N/mm²", d.FaxK)},
			[2]string{"Fax,Rd x rope", fmt.Sprintf("%.0f x %.3f = %.0f N", d.FaxRd, d.RopeFactor, d.FaxRdEff)},
		)
	}
	if r.Family == ec5.Nails {
		rows = append(rows, [2]string{"Penetration / min", fmt.Sprintf("%.1f / %.1f mm", d.Penetration, d.MinPenetration)})
	}
	rows = append(rows, [2]string{"Utilization", fmt.Sprintf("%.1f%% (%s)", r.Utilization, label(r.Compliant))})
	return rows
}

func spacingTable(pdf *gofpdf.Fpdf, in connection.Input) {
	widths := []float64{45, 25, 30, 30, 30, 30}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(242, 242, 242)
	for i, h := range []string{"Fastener Type", "d (mm)", "a1 (mm)", "a2 (mm)", "a3,t (mm)", "a4,t (mm)"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, f := range []struct {
		family ec5.Family
		d      float64
	}{
		{ec5.Screws, in.Screw.Diameter},
		{ec5.Nails, in.Nail.Diameter},
		{ec5.Bolts, in.Bolt.Diameter},
	} {
		req, err := ec5.SpacingFor(f.family)
		if err != nil {
			continue
		}
		m := req.Minimums(f.d)
		cells := []string{
			FamilyName(f.family),
			fmt.Sprintf("%g", f.d),
			fmt.Sprintf("%.0f", m.A1),
			fmt.Sprintf("%.0f", m.A2),
			fmt.Sprintf("%.0f", m.A3t),
			fmt.Sprintf("%.0f", m.A4t),
		}
		for i, c := range cells {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 7, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}
