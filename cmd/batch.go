package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alexiusacademia/gotimber/internal/batch"
	"github.com/alexiusacademia/gotimber/internal/connection"
	"github.com/spf13/cobra"
)

var (
	batchFile   string
	batchOutput string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Check one connection per row of an xlsx workbook",
	Long: `Read connections from the first sheet of an xlsx workbook, check
each one and print the results. The first row names the columns;
missing columns and empty cells keep the default values.

Columns:
  ` + strings.Join(batch.Columns(), ", ") + `

Rows with unreadable cells are reported and skipped.

Examples:
  gotimber batch -f connections.xlsx
  gotimber batch -f connections.xlsx -o results.xlsx`,
	Run: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "Path to input xlsx workbook [required]")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "Write a summary workbook to file")
	batchCmd.MarkFlagRequired("file")
}

func runBatch(cmd *cobra.Command, args []string) {
	f, err := os.Open(batchFile)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer f.Close()

	rows, err := batch.ReadInputs(f)
	if err != nil {
		var rowErr *batch.RowError
		if !errors.As(err, &rowErr) {
			fmt.Printf("Error reading workbook: %v\n", err)
			return
		}
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Printf("Skipped %s\n", line)
		}
	}

	printTitle(fmt.Sprintf("BATCH CHECK - %d CONNECTIONS", len(rows)))

	summaries := make([]connection.Summary, len(rows))
	compliant := 0
	for i, row := range rows {
		s := connection.EvaluateAll(row.Input)
		summaries[i] = s
		if s.Compliant() {
			compliant++
		}

		printSection(fmt.Sprintf("ROW %d - %s, t1/t2 %g/%g mm, V = %g N",
			row.Line, row.Input.WoodGrade, row.Input.Members.T1, row.Input.Members.T2, row.Input.Forces.ELUShear))
		printSummary(os.Stdout, s)
		fmt.Println()
	}

	w := newTable()
	fmt.Fprintf(w, "  Connections checked:\t%d\n", len(rows))
	fmt.Fprintf(w, "  Fully compliant:\t%d\n", compliant)
	w.Flush()
	fmt.Println()

	if batchOutput == "" {
		return
	}
	out, err := os.Create(batchOutput)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if err := batch.WriteSummaries(out, rows, summaries); err != nil {
		out.Close()
		fmt.Printf("Error writing summary: %v\n", err)
		return
	}
	if err := out.Close(); err != nil {
		fmt.Printf("Error writing summary: %v\n", err)
		return
	}
	fmt.Printf("  Summary written to: %s\n", batchOutput)
}
