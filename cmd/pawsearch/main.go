package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pawnest/pawsearch/internal/cli"
	"github.com/pawnest/pawsearch/internal/cli/client"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "pawsearch",
		Short: "Pawsearch CLI - search across the pet care platform",
		Long: `Pawsearch CLI provides commands to query the search API.

Environment variables:
  PAWSEARCH_API_URL   API base URL (default: http://localhost:8080)
  PAWSEARCH_USER_ID   User ID sent with requests (enables health log search)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env and config)")
	rootCmd.PersistentFlags().String("user", "", "User ID (overrides env and config)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.InitCmd())
	rootCmd.AddCommand(client.SearchCmd())
	rootCmd.AddCommand(client.SuggestCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
