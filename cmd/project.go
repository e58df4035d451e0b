package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gotimber/internal/ec5"
	"github.com/alexiusacademia/gotimber/internal/project"
	"github.com/spf13/cobra"
)

var (
	projectOutput      string
	projectName        string
	projectAuthor      string
	projectDescription string
	projectForce       bool
	projectShowFile    string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Create and inspect connection project files",
	Long: `A project file is a JSON snapshot of one connection parameter set.
It restores every field verbatim, so a check of a saved project gives
the same results every time.

Subcommands:
  init  - Write a project file from the defaults and flags
  show  - Print the parameters of a project file`,
}

var projectInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a project file from the defaults and flags",
	Long: `Write a new project file. Every connection flag set on the command
line replaces the default value.

Examples:
  gotimber project init -o barn.json --name "Barn ridge" --wood GL24h
  gotimber project init -o shed.json --shear 4500 --bolt-grade 4.6`,
	Run: runProjectInit,
}

var projectShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the parameters of a project file",
	Long: `Print the connection parameters stored in a project file.

Examples:
  gotimber project show -f barn.json`,
	Run: runProjectShow,
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectInitCmd, projectShowCmd)

	projectInitCmd.Flags().StringVarP(&projectOutput, "output", "o", "", "Path of the project file to write [required]")
	projectInitCmd.Flags().StringVar(&projectName, "name", "", "Project name")
	projectInitCmd.Flags().StringVar(&projectAuthor, "author", "", "Project author (default from GOTIMBER_AUTHOR)")
	projectInitCmd.Flags().StringVar(&projectDescription, "description", "", "Project description")
	projectInitCmd.Flags().BoolVar(&projectForce, "force", false, "Overwrite an existing file")
	connFlags.registerAll(projectInitCmd.Flags())
	projectInitCmd.MarkFlagRequired("output")

	projectShowCmd.Flags().StringVarP(&projectShowFile, "file", "f", "", "Path to project JSON file [required]")
	projectShowCmd.MarkFlagRequired("file")
}

func runProjectInit(cmd *cobra.Command, args []string) {
	if _, err := os.Stat(projectOutput); err == nil && !projectForce {
		fmt.Printf("Error: %s already exists, use --force to overwrite\n", projectOutput)
		return
	}

	in, err := connFlags.input(cmd.Flags())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	p := project.New(projectName, in)
	p.Description = projectDescription
	p.Author = projectAuthor
	if p.Author == "" {
		if cfg, err := loadConfig(); err == nil {
			p.Author = cfg.Author
		}
	}

	if err := p.Save(projectOutput); err != nil {
		fmt.Printf("Error saving project: %v\n", err)
		return
	}
	fmt.Printf("  Project written to: %s\n", projectOutput)
}

func runProjectShow(cmd *cobra.Command, args []string) {
	p, err := project.LoadFromFile(projectShowFile)
	if err != nil {
		fmt.Printf("Error loading project: %v\n", err)
		return
	}

	printTitle("CONNECTION PROJECT")
	w := newTable()
	fmt.Fprintf(w, "  File:\t%s\n", projectShowFile)
	fmt.Fprintf(w, "  Format version:\t%d\n", p.Version)
	if p.Name != "" {
		fmt.Fprintf(w, "  Name:\t%s\n", p.Name)
	}
	if p.Author != "" {
		fmt.Fprintf(w, "  Author:\t%s\n", p.Author)
	}
	if p.Description != "" {
		fmt.Fprintf(w, "  Description:\t%s\n", p.Description)
	}
	w.Flush()
	fmt.Println()

	in := p.Connection
	printInput(in)
	for _, f := range []ec5.Family{ec5.Screws, ec5.Nails, ec5.Bolts} {
		printFastener(in, f)
	}
}
