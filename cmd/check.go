package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/alexiusacademia/gotimber/internal/connection"
	"github.com/alexiusacademia/gotimber/internal/diagram"
	"github.com/alexiusacademia/gotimber/internal/project"
	"github.com/alexiusacademia/gotimber/internal/report"
	"github.com/spf13/cobra"
)

var (
	checkFile    string
	checkBars    bool
	checkChart   string
	checkReport  string
	checkAuthor  string
	checkCompany string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check screws, nails and bolts of a connection",
	Long: `Evaluate the three fastener families of a connection independently
and print the summary table. A family that cannot be computed is reported
and never stops the others.

The connection comes from a project file (--file) or the defaults; any
connection flag set on the command line overrides it.

Examples:
  gotimber check
  gotimber check --file barn.json --bars
  gotimber check --wood GL24h --shear 4500 --chart util.png --report check.pdf`,
	Run: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "Path to project JSON file")
	connFlags.registerAll(checkCmd.Flags())

	// Output options
	checkCmd.Flags().BoolVar(&checkBars, "bars", false, "Show ASCII utilization bars")
	checkCmd.Flags().StringVar(&checkChart, "chart", "", "Export utilization chart to file (png, svg, pdf)")
	checkCmd.Flags().StringVar(&checkReport, "report", "", "Write PDF report to file")
	checkCmd.Flags().StringVar(&checkAuthor, "author", "", "Report author (default from GOTIMBER_AUTHOR)")
	checkCmd.Flags().StringVar(&checkCompany, "company", "", "Report company (default from GOTIMBER_COMPANY)")
}

func runCheck(cmd *cobra.Command, args []string) {
	in := connection.DefaultInput()
	var proj *project.Project
	if checkFile != "" {
		p, err := project.LoadFromFile(checkFile)
		if err != nil {
			fmt.Printf("Error loading project: %v\n", err)
			return
		}
		proj, in = p, p.Connection
	}
	if err := connFlags.apply(cmd.Flags(), &in); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	summary := connection.EvaluateAll(in)

	printTitle("TIMBER CONNECTION CHECK - EUROCODE 5")
	if proj != nil {
		if proj.Name != "" {
			fmt.Printf("  Project: %s\n", proj.Name)
		}
		if proj.Description != "" {
			fmt.Printf("  Description: %s\n", proj.Description)
		}
		fmt.Println()
	}
	printInput(in)

	printSection("SUMMARY")
	printSummary(os.Stdout, summary)
	fmt.Println()

	for _, o := range summary.Outcomes() {
		if !o.OK() {
			fmt.Printf("Error: %v\n", o.Err)
		}
	}

	if checkBars {
		fmt.Print(diagram.DrawUtilizationBars(utilizationData("Utilization", summary)))
		fmt.Println()
	}

	status := "✓ All fastener families comply"
	if !summary.Compliant() {
		status = "✗ At least one fastener family does not comply or cannot be computed"
	}
	fmt.Printf("  %s\n", status)
	fmt.Println()

	if checkChart != "" {
		if written, err := diagram.ExportUtilizationChart(utilizationData("Connection Utilization", summary), checkChart); err != nil {
			fmt.Printf("Error exporting chart: %v\n", err)
		} else {
			fmt.Printf("  Chart exported to: %s\n", written)
		}
	}

	if checkReport != "" {
		meta, err := reportMeta(proj)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := report.WriteFile(checkReport, meta, in, summary); err != nil {
			fmt.Printf("Error writing report: %v\n", err)
			return
		}
		fmt.Printf("  Report written to: %s\n", checkReport)
	}
}

// reportMeta fills the report header from the flags, the project file and
// the env configuration, in that order of precedence
func reportMeta(proj *project.Project) (report.Meta, error) {
	cfg, err := loadConfig()
	if err != nil {
		return report.Meta{}, err
	}
	meta := report.Meta{
		Author:  firstNonEmpty(checkAuthor, cfg.Author),
		Company: firstNonEmpty(checkCompany, cfg.Company),
		Date:    time.Now(),
	}
	if proj != nil {
		meta.Project = proj.Name
		meta.Notes = proj.Description
		meta.Author = firstNonEmpty(checkAuthor, proj.Author, cfg.Author)
	}
	return meta, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
