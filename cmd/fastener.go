package cmd

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gotimber/internal/connection"
	"github.com/alexiusacademia/gotimber/internal/ec5"
	"github.com/alexiusacademia/gotimber/internal/report"
	"github.com/spf13/cobra"
)

var screwCmd = &cobra.Command{
	Use:     "screw",
	Aliases: []string{"tirefond"},
	Short:   "Check the screws (tirefonds) of a connection",
	Long: `Check a screwed timber-to-timber connection under combined tension
and shear (EN 1995-1-1 Section 8.7).

The lateral resistance uses the Johansen yield model, the withdrawal
resistance is increased by the rope effect 1 + 0.35·sin(α), and the
utilization is the quadratic interaction of both.

Examples:
  gotimber screw
  gotimber screw --screw-d 10 --screw-length 120 --screws 6 --shear 4500
  gotimber screw --wood GL24h --screw-angle 30 --tension 2500`,
	Run: func(cmd *cobra.Command, args []string) { runFamily(cmd, ec5.Screws) },
}

var nailCmd = &cobra.Command{
	Use:   "nail",
	Short: "Check the nails of a connection",
	Long: `Check a nailed timber-to-timber connection in shear
(EN 1995-1-1 Section 8.3).

The resistance per nail is 0.8·fh,k·t1·d and the nail must penetrate the
point-side member by at least 8d.

Examples:
  gotimber nail
  gotimber nail --nail-d 3.1 --nail-length 90 --nails 20`,
	Run: func(cmd *cobra.Command, args []string) { runFamily(cmd, ec5.Nails) },
}

var boltCmd = &cobra.Command{
	Use:   "bolt",
	Short: "Check the bolts of a connection",
	Long: `Check a bolted timber-to-timber connection in shear
(EN 1995-1-1 Section 8.5) with the full Johansen yield model using the
ultimate strength of the bolt property class.

Examples:
  gotimber bolt
  gotimber bolt --bolt-d 16 --bolt-grade 4.6 --bolts 2`,
	Run: func(cmd *cobra.Command, args []string) { runFamily(cmd, ec5.Bolts) },
}

func init() {
	rootCmd.AddCommand(screwCmd, nailCmd, boltCmd)

	connFlags.registerCommon(screwCmd.Flags())
	connFlags.registerScrew(screwCmd.Flags())

	connFlags.registerCommon(nailCmd.Flags())
	connFlags.registerNail(nailCmd.Flags())

	connFlags.registerCommon(boltCmd.Flags())
	connFlags.registerBolt(boltCmd.Flags())
}

func fastenerOf(in connection.Input, family ec5.Family) connection.Fastener {
	for _, f := range in.Fasteners() {
		if f.Family() == family {
			return f
		}
	}
	return nil
}

func runFamily(cmd *cobra.Command, family ec5.Family) {
	in, err := connFlags.input(cmd.Flags())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	printTitle(fmt.Sprintf("%s CHECK - EUROCODE 5", strings.ToUpper(report.FamilyName(family))))
	printInput(in)
	printFastener(in, family)

	result, err := connection.Evaluate(in, fastenerOf(in, family))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	printModes(result)
	printDetails(result)
	printSpacing(in, family)
}

func printFastener(in connection.Input, family ec5.Family) {
	printSection(strings.ToUpper(report.FamilyName(family)))
	w := newTable()
	switch family {
	case ec5.Screws:
		fmt.Fprintf(w, "  Diameter × length:\t%g × %g mm\n", in.Screw.Diameter, in.Screw.Length)
		fmt.Fprintf(w, "  fu,k:\t%g N/mm²\n", in.Screw.Fuk)
		fmt.Fprintf(w, "  Angles (α1 / α2):\t%g° / %g°\n", in.Screw.Angle1, in.Screw.Angle2)
		fmt.Fprintf(w, "  Quantity:\t%d\n", in.Screw.Count)
	case ec5.Nails:
		fmt.Fprintf(w, "  Diameter × length:\t%g × %g mm\n", in.Nail.Diameter, in.Nail.Length)
		if in.Nail.Type != "" {
			fmt.Fprintf(w, "  Type:\t%s\n", in.Nail.Type)
		}
		fmt.Fprintf(w, "  Quantity:\t%d\n", in.Nail.Count)
	case ec5.Bolts:
		fmt.Fprintf(w, "  Diameter:\t%g mm\n", in.Bolt.Diameter)
		fmt.Fprintf(w, "  Property class:\t%s\n", in.Bolt.Grade)
		if in.Bolt.WasherSize != "" {
			fmt.Fprintf(w, "  Washer:\t%s\n", in.Bolt.WasherSize)
		}
		fmt.Fprintf(w, "  Quantity:\t%d\n", in.Bolt.Count)
	}
	w.Flush()
	fmt.Println()
}

// printModes lists the four Johansen failure modes behind Fv,Rk
func printModes(r *connection.Result) {
	modes := r.Details.Modes
	if modes == nil {
		return
	}

	printSection("JOHANSEN FAILURE MODES (CHARACTERISTIC)")
	w := newTable()
	for _, m := range []struct {
		mode  ec5.FailureMode
		value float64
	}{
		{ec5.ModeEmbedment1, modes.Embedment1},
		{ec5.ModeEmbedment2, modes.Embedment2},
		{ec5.ModeSingleHinge, modes.SingleHinge},
		{ec5.ModeDoubleHinge, modes.DoubleHinge},
	} {
		gov := ""
		if m.mode == r.Details.Mode {
			gov = "◄ governs"
		}
		fmt.Fprintf(w, "  %s:\t%.1f N\t%s\n", m.mode, m.value, gov)
	}
	w.Flush()
	fmt.Println()
}

func printSpacing(in connection.Input, family ec5.Family) {
	req, err := ec5.SpacingFor(family)
	if err != nil {
		return
	}
	d := map[ec5.Family]float64{
		ec5.Screws: in.Screw.Diameter,
		ec5.Nails:  in.Nail.Diameter,
		ec5.Bolts:  in.Bolt.Diameter,
	}[family]
	m := req.Minimums(d)

	printSection("MINIMUM SPACINGS")
	w := newTable()
	fmt.Fprintf(w, "  a1 / a2:\t%.0f / %.0f mm\n", m.A1, m.A2)
	fmt.Fprintf(w, "  a3,t / a4,t:\t%.0f / %.0f mm\n", m.A3t, m.A4t)
	w.Flush()
	fmt.Println()
}
