package cmd

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gotimber/internal/connection"
	"github.com/alexiusacademia/gotimber/internal/diagram"
	"github.com/alexiusacademia/gotimber/internal/ec5"
	"github.com/alexiusacademia/gotimber/internal/report"
	"github.com/spf13/cobra"
)

var (
	sweepFamily string
	sweepFrom   float64
	sweepTo     float64
	sweepStep   float64
	sweepOutput string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Plot the design shear resistance of a fastener against its diameter",
	Long: `Evaluate one fastener family over a range of diameters and plot the
design lateral resistance Fv,Rd of a single fastener. All other
parameters come from the defaults and the connection flags.

Examples:
  gotimber sweep --family screws --from 4 --to 16 --step 1
  gotimber sweep --family bolts --from 8 --to 24 --step 2 --wood GL24h -o bolts.png`,
	Run: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().StringVar(&sweepFamily, "family", "screws", "Fastener family: screws, nails or bolts")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 4, "First diameter (mm)")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 16, "Last diameter (mm)")
	sweepCmd.Flags().Float64Var(&sweepStep, "step", 1, "Diameter step (mm)")
	sweepCmd.Flags().StringVarP(&sweepOutput, "output", "o", "", "Export the curve to file (png, svg, pdf)")
	connFlags.registerAll(sweepCmd.Flags())
}

// diameterSweep evaluates family at every diameter of the range. Diameters
// the family rejects are returned separately.
func diameterSweep(in connection.Input, family ec5.Family, from, to, step float64) (diagram.SweepData, []error, error) {
	if step <= 0 || to < from {
		return diagram.SweepData{}, nil, fmt.Errorf("invalid range %g … %g step %g", from, to, step)
	}

	data := diagram.SweepData{Caption: fmt.Sprintf("%s Fv,Rd (N)", report.FamilyName(family))}
	var skipped []error
	n := int(math.Floor((to-from)/step + 1e-9))
	for i := 0; i <= n; i++ {
		d := math.Round((from+float64(i)*step)*1e6) / 1e6

		switch family {
		case ec5.Screws:
			in.Screw.Diameter = d
		case ec5.Nails:
			in.Nail.Diameter = d
		case ec5.Bolts:
			in.Bolt.Diameter = d
		}
		r, err := connection.Evaluate(in, fastenerOf(in, family))
		if err != nil {
			skipped = append(skipped, fmt.Errorf("d = %g mm: %w", d, err))
			continue
		}
		data.Diameters = append(data.Diameters, d)
		data.Values = append(data.Values, r.Details.FvRd)
	}
	if len(data.Values) == 0 {
		return data, skipped, fmt.Errorf("no diameter of the range could be evaluated")
	}
	return data, skipped, nil
}

func runSweep(cmd *cobra.Command, args []string) {
	family, err := ec5.ParseFamily(sweepFamily)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	in, err := connFlags.input(cmd.Flags())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	data, skipped, err := diameterSweep(in, family, sweepFrom, sweepTo, sweepStep)
	for _, e := range skipped {
		fmt.Printf("Skipped %v\n", e)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	printTitle(fmt.Sprintf("DIAMETER SWEEP - %s", report.FamilyName(family)))
	fmt.Println(diagram.DrawSweepGraph(data))
	fmt.Println()

	w := newTable()
	fmt.Fprintf(w, "  d (mm)\tFv,Rd (N)\n")
	fmt.Fprintf(w, "  ──────\t─────────\n")
	for i, d := range data.Diameters {
		fmt.Fprintf(w, "  %g\t%.0f\n", d, data.Values[i])
	}
	w.Flush()
	fmt.Println()

	if sweepOutput != "" {
		current := map[ec5.Family]float64{
			ec5.Screws: in.Screw.Diameter,
			ec5.Nails:  in.Nail.Diameter,
			ec5.Bolts:  in.Bolt.Diameter,
		}[family]
		written, err := diagram.ExportSweepChart(data, current, sweepOutput)
		if err != nil {
			fmt.Printf("Error exporting chart: %v\n", err)
			return
		}
		fmt.Printf("  Chart exported to: %s\n", written)
	}
}
