package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gotimber/internal/ec5"
	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables [wood|bolts|kmod|spacing]",
	Short: "Print the Eurocode 5 reference tables",
	Long: `Print the reference data used by the connection checks.

Tables:
  wood     - Timber strength classes (EN 338, EN 14080)
  bolts    - Bolt property classes (EN 1993-1-8)
  kmod     - Modification factors (EN 1995-1-1 Table 3.1)
  spacing  - Minimum spacing rules (EN 1995-1-1 Tables 8.2, 8.4, 8.6)

Without an argument every table is printed.

Examples:
  gotimber tables
  gotimber tables kmod`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"wood", "bolts", "kmod", "spacing"},
	Run:       runTables,
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}

func runTables(cmd *cobra.Command, args []string) {
	which := "all"
	if len(args) == 1 {
		which = args[0]
	}
	show := func(name string) bool { return which == "all" || which == name }

	if show("wood") {
		printWoodTable()
	}
	if show("bolts") {
		printBoltTable()
	}
	if show("kmod") {
		printKmodTable()
	}
	if show("spacing") {
		printSpacingRules()
	}
}

func printWoodTable() {
	printTitle("TIMBER STRENGTH CLASSES")
	w := newTable()
	fmt.Fprintf(w, "  Class\tfm,k\tft,0,k\tfc,0,k\tfv,k\tρk\tρmean\n")
	fmt.Fprintf(w, "  ─────\t────\t──────\t──────\t────\t──\t─────\n")
	for _, g := range ec5.WoodGrades() {
		fmt.Fprintf(w, "  %s\t%g\t%g\t%g\t%g\t%g\t%g\n", g.ID, g.Fmk, g.Ft0k, g.Fc0k, g.Fvk, g.RhoK, g.RhoMean)
	}
	w.Flush()
	fmt.Println()
	fmt.Println("  Strengths in N/mm², densities in kg/m³")
	fmt.Println()
}

func printBoltTable() {
	printTitle("BOLT PROPERTY CLASSES")
	w := newTable()
	fmt.Fprintf(w, "  Class\tfyb (N/mm²)\tfub (N/mm²)\tαv\n")
	fmt.Fprintf(w, "  ─────\t───────────\t───────────\t──\n")
	for _, g := range ec5.BoltGrades() {
		fmt.Fprintf(w, "  %s\t%g\t%g\t%g\n", g.ID, g.Fyb, g.Fub, g.AlphaV)
	}
	w.Flush()
	fmt.Println()
}

func printKmodTable() {
	printTitle("MODIFICATION FACTOR kmod")
	w := newTable()
	fmt.Fprintf(w, "  Duration")
	for _, sc := range ec5.ServiceClasses() {
		fmt.Fprintf(w, "\t%s", sc)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  ────────\t───\t───\t───\n")
	for _, d := range ec5.LoadDurations() {
		fmt.Fprintf(w, "  %s", d)
		for _, sc := range ec5.ServiceClasses() {
			k, err := ec5.LookupModificationFactor(sc, d)
			if err != nil {
				fmt.Fprintf(w, "\t-")
				continue
			}
			fmt.Fprintf(w, "\t%.2f", k)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	fmt.Println()
}

func printSpacingRules() {
	printTitle("MINIMUM SPACING RULES")
	w := newTable()
	fmt.Fprintf(w, "  Family\ta1\ta2\ta3,t\ta4,t\n")
	fmt.Fprintf(w, "  ──────\t──\t──\t────\t────\n")
	for _, f := range []ec5.Family{ec5.Screws, ec5.Nails, ec5.Bolts} {
		r, err := ec5.SpacingFor(f)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n", f, rule(r.A1), rule(r.A2), rule(r.A3t), rule(r.A4t))
	}
	w.Flush()
	fmt.Println()
}

func rule(s ec5.Spacing) string {
	if s.Base == 0 {
		return fmt.Sprintf("%gd", s.Factor)
	}
	return fmt.Sprintf("%g + %gd", s.Base, s.Factor)
}
