package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gotimber/internal/ec5"
	"github.com/spf13/cobra"
)

var (
	spacingFamily   string
	spacingDiameter float64
)

var spacingCmd = &cobra.Command{
	Use:   "spacing",
	Short: "Minimum spacings and distances of a fastener",
	Long: `Calculate the minimum spacing and loaded end and edge distances
of a fastener family for a given diameter (EN 1995-1-1 Section 8).

Examples:
  gotimber spacing --family nails -d 4
  gotimber spacing --family bolts -d 12`,
	Run: runSpacing,
}

func init() {
	rootCmd.AddCommand(spacingCmd)

	spacingCmd.Flags().StringVar(&spacingFamily, "family", "", "Fastener family: screws, nails or bolts [required]")
	spacingCmd.Flags().Float64VarP(&spacingDiameter, "diameter", "d", 0, "Fastener diameter (mm) [required]")

	spacingCmd.MarkFlagRequired("family")
	spacingCmd.MarkFlagRequired("diameter")
}

func runSpacing(cmd *cobra.Command, args []string) {
	family, err := ec5.ParseFamily(spacingFamily)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if spacingDiameter <= 0 {
		fmt.Printf("Error: %v\n", ec5.Errorf(ec5.ErrInvalidParameter, "diameter", "%g, must be positive", spacingDiameter))
		return
	}
	req, err := ec5.SpacingFor(family)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	m := req.Minimums(spacingDiameter)

	printTitle(fmt.Sprintf("MINIMUM SPACINGS - %s, d = %g mm", family, spacingDiameter))
	w := newTable()
	fmt.Fprintf(w, "  a1 (parallel to grain):\t%s\t= %.0f mm\n", rule(req.A1), m.A1)
	fmt.Fprintf(w, "  a2 (perpendicular to grain):\t%s\t= %.0f mm\n", rule(req.A2), m.A2)
	fmt.Fprintf(w, "  a3,t (loaded end):\t%s\t= %.0f mm\n", rule(req.A3t), m.A3t)
	fmt.Fprintf(w, "  a4,t (loaded edge):\t%s\t= %.0f mm\n", rule(req.A4t), m.A4t)
	w.Flush()
	fmt.Println()
}
