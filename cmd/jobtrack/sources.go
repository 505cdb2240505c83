package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List all configured sources",
	Long:  "Reads the config and prints a table of all configured sources.",
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath, setupLogger(debug))
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-20s %-12s %s\n", "Source", "Kind", "Board")
	fmt.Println(strings.Repeat("─", 50))

	for _, s := range cfg.Sources {
		fmt.Printf("%-20s %-12s %s\n", s.Name, s.Kind.String(), s.Board)
	}

	fmt.Printf("\nTotal: %d sources\n", len(cfg.Sources))
	return nil
}
