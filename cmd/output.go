package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gotimber/internal/connection"
	"github.com/alexiusacademia/gotimber/internal/diagram"
	"github.com/alexiusacademia/gotimber/internal/ec5"
	"github.com/alexiusacademia/gotimber/internal/report"
)

const (
	doubleRule = "═══════════════════════════════════════════════════════════════"
	singleRule = "───────────────────────────────────────────────────────────────"
)

func printTitle(title string) {
	fmt.Println()
	fmt.Println(doubleRule)
	fmt.Printf("     %s\n", title)
	fmt.Println(doubleRule)
	fmt.Println()
}

func printSection(name string) {
	fmt.Println(name + ":")
	fmt.Println(singleRule)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

func printInput(in connection.Input) {
	printSection("INPUT DATA")
	w := newTable()
	fmt.Fprintf(w, "  Timber class:\t%s\n", in.WoodGrade)
	fmt.Fprintf(w, "  Service class:\t%s\n", in.ServiceClass)
	fmt.Fprintf(w, "  Load duration:\t%s\n", in.Duration)
	fmt.Fprintf(w, "  Member thicknesses (t1 / t2):\t%g / %g mm\n", in.Members.T1, in.Members.T2)
	fmt.Fprintf(w, "  ULS forces (tension / shear):\t%g / %g N\n", in.Forces.ELUTension, in.Forces.ELUShear)
	fmt.Fprintf(w, "  SLS forces (tension / shear):\t%g / %g N\n", in.Forces.ELSTension, in.Forces.ELSShear)
	w.Flush()
	fmt.Println()
}

// printSummary prints one line per family, failed families included
func printSummary(out io.Writer, s connection.Summary) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Fastener\tCapacity (N)\tApplied (N)\tUtilization\tMode\tStatus\n")
	fmt.Fprintf(w, "  ────────\t────────────\t───────────\t───────────\t────\t──────\n")
	for _, o := range s.Outcomes() {
		if !o.OK() {
			fmt.Fprintf(w, "  %s\t-\t%.0f\t-\t-\t✗ %s\n", report.FamilyName(o.Family), s.Applied, o.Err)
			continue
		}
		r := o.Result
		fmt.Fprintf(w, "  %s\t%.0f\t%.0f\t%.1f%%\t%s\t%s %s\n",
			report.FamilyName(o.Family), r.Capacity, r.Applied, r.Utilization, r.Details.Mode, mark(r.Compliant), report.Verdict(o))
	}
	w.Flush()
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

// utilizationData converts a summary into bars for the diagrams
func utilizationData(title string, s connection.Summary) diagram.UtilizationData {
	data := diagram.UtilizationData{Title: title}
	for _, o := range s.Outcomes() {
		b := diagram.Bar{Label: report.FamilyName(o.Family)}
		if o.OK() {
			b.Utilization = o.Result.Utilization
			b.Compliant = o.Result.Compliant
		} else {
			b.Failed = true
			b.Note = o.Err.Error()
		}
		data.Bars = append(data.Bars, b)
	}
	return data
}

// printDetails prints the intermediate values of one family
func printDetails(r *connection.Result) {
	d := r.Details

	printSection("MATERIAL")
	w := newTable()
	fmt.Fprintf(w, "  kmod:\t%.2f\n", d.Kmod)
	fmt.Fprintf(w, "  γM:\t%.2f\n", ec5.GammaM)
	fmt.Fprintf(w, "  ρk:\t%.0f kg/m³\n", d.RhoK)
	fmt.Fprintf(w, "  fh,k / fh,d:\t%.3f / %.3f N/mm²\n", d.FhK, d.FhD)
	if d.MyK > 0 {
		fmt.Fprintf(w, "  My,k:\t%.0f Nmm\n", d.MyK)
	}
	w.Flush()
	fmt.Println()

	printSection("LATERAL RESISTANCE (PER FASTENER)")
	w = newTable()
	fmt.Fprintf(w, "  Fv,Rk:\t%.1f N\n", d.FvRk)
	fmt.Fprintf(w, "  Fv,Rd:\t%.1f N\n", d.FvRd)
	fmt.Fprintf(w, "  Governing mode:\t%s\n", d.Mode)
	w.Flush()
	fmt.Println()

	switch r.Family {
	case ec5.Screws:
		printSection("AXIAL RESISTANCE (PER SCREW)")
		w = newTable()
		fmt.Fprintf(w, "  fax,k:\t%.3f N/mm²\n", d.FaxK)
		fmt.Fprintf(w, "  Fax,Rd:\t%.1f N\n", d.FaxRd)
		fmt.Fprintf(w, "  Rope effect factor:\t%.3f\n", d.RopeFactor)
		fmt.Fprintf(w, "  Fax,Rd,eff:\t%.1f N\n", d.FaxRdEff)
		fmt.Fprintf(w, "  Force per screw (T / V):\t%.1f / %.1f N\n", d.TensionPerUnit, d.ShearPerUnit)
		w.Flush()
		fmt.Println()
	case ec5.Nails:
		printSection("PENETRATION")
		w = newTable()
		fmt.Fprintf(w, "  Point-side penetration:\t%.1f mm\n", d.Penetration)
		fmt.Fprintf(w, "  Minimum (8d):\t%.1f mm %s\n", d.MinPenetration, mark(d.Penetration >= d.MinPenetration))
		w.Flush()
		fmt.Println()
	}

	lines := []string{
		fmt.Sprintf("Capacity %d × %.0f N = %.0f N", r.Count, d.FvRd, r.Capacity),
		fmt.Sprintf("Applied shear     = %.0f N", r.Applied),
		fmt.Sprintf("Utilization       = %.1f %% %s", r.Utilization, mark(r.Compliant)),
	}
	fmt.Print(diagram.DrawSummaryBox(report.Verdict(connection.Outcome{Family: r.Family, Result: r}), lines))
	fmt.Println()
}
