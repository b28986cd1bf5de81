package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

// SuggestionsResponse represents the suggestions API response.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// SuggestCmd creates the suggest command.
func SuggestCmd() *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "suggest <prefix>",
		Short: "Get query suggestions",
		Long:  "Returns suggested queries for a partial search input.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runSuggest(cmd, args[0], language, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Query language (default: en)")

	return cmd
}

func runSuggest(cmd *cobra.Command, prefix, language string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	params := url.Values{}
	params.Set("q", prefix)
	if language != "" {
		params.Set("language", language)
	}

	resp, err := api.Get("/search/suggestions?" + params.Encode())
	if err != nil {
		return fmt.Errorf("suggest failed: %w", err)
	}

	var suggestResp SuggestionsResponse
	if err := json.Unmarshal(resp.Data, &suggestResp); err != nil {
		return fmt.Errorf("failed to parse suggestions: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(suggestResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(suggestResp.Suggestions) == 0 {
		fmt.Println("No suggestions.")
		return nil
	}

	for _, s := range suggestResp.Suggestions {
		fmt.Println(s)
	}

	return nil
}
