package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gotimber/internal/config"
	"github.com/alexiusacademia/gotimber/internal/version"
	"github.com/spf13/cobra"
)

// envFile is the optional env file holding the defaults of config.Config
var envFile string

var rootCmd = &cobra.Command{
	Use:   "gotimber",
	Short: "Eurocode 5 Timber Connection Design Tool",
	Long: `gotimber - Go Timber Connection Checker

A CLI tool for the capacity check of timber-to-timber connections
based on Eurocode 5 (EN 1995-1-1).

This tool helps structural engineers perform:
  - Lateral (Johansen) resistance of screws, nails and bolts
  - Combined axial and shear check of screws with the rope effect
  - Minimum spacing and edge distances
  - PDF reports, spreadsheet batches and an HTTP API

All design values use γM = 1.3 and the kmod table of EN 1995-1-1.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gotimber v%-46s║\n", version.Version)
		fmt.Println("  ║   Go Timber Connection Checker                            ║")
		fmt.Printf("  ║   %-56s║\n", version.Author+" ©  "+version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for the capacity check of timber connections")
		fmt.Println("  based on Eurocode 5 (EN 1995-1-1).")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Screws (tirefonds) with combined tension and shear")
		fmt.Println("    • Nails with the minimum penetration check")
		fmt.Println("    • Bolts with the full Johansen yield model")
		fmt.Println("    • Project files, PDF reports and xlsx batches")
		fmt.Println()
		fmt.Println("  Use 'gotimber --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "Env file with author, company and server defaults (default .env)")
}

// loadConfig reads the env file given by --env, or the optional .env
func loadConfig() (config.Config, error) {
	if envFile != "" {
		return config.Load(envFile)
	}
	return config.Load()
}
