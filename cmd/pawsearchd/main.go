package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pawnest/pawsearch/internal/cli"
	"github.com/pawnest/pawsearch/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pawsearchd",
		Short: "Pawsearch daemon",
		Long:  "Pawsearch daemon for running the search API server and managing demo data",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())
	rootCmd.AddCommand(admin.SeedCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
