package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// SearchRequest represents the search API request.
type SearchRequest struct {
	Query       string `json:"query"`
	Type        string `json:"type,omitempty"`
	Language    string `json:"language,omitempty"`
	Sort        string `json:"sort,omitempty"`
	Page        int    `json:"page,omitempty"`
	Limit       int    `json:"limit,omitempty"`
	Category    string `json:"category,omitempty"`
	PartnerType string `json:"partner_type,omitempty"`
	Location    string `json:"location,omitempty"`
}

// SearchResult represents a single ranked hit.
type SearchResult struct {
	ID      string  `json:"id"`
	Type    string  `json:"type"`
	Title   string  `json:"title"`
	Excerpt string  `json:"excerpt"`
	Score   float64 `json:"relevance_score"`
}

// FacetBucket represents one aggregation bucket.
type FacetBucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// SearchResponse represents the search API response.
type SearchResponse struct {
	Results      []SearchResult           `json:"results"`
	Total        int                      `json:"total"`
	Page         int                      `json:"page"`
	Limit        int                      `json:"limit"`
	TookMs       float64                  `json:"took"`
	Aggregations map[string][]FacetBucket `json:"aggregations"`
	Suggestions  []string                 `json:"suggestions"`
}

// SearchCmd creates the search command.
func SearchCmd() *cobra.Command {
	var req SearchRequest

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search questions, partners and health logs",
		Long:  "Runs a relevance-ranked search across the platform content.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			req.Query = args[0]
			return runSearch(cmd, req, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&req.Type, "type", "t", "", "Result type: all, questions, partners, health, content")
	cmd.Flags().StringVarP(&req.Language, "language", "l", "", "Query language (default: en)")
	cmd.Flags().StringVar(&req.Sort, "sort", "", "Sort order: relevance, date, popularity, rating")
	cmd.Flags().IntVar(&req.Page, "page", 1, "Result page")
	cmd.Flags().IntVarP(&req.Limit, "limit", "n", 20, "Maximum number of results per page")
	cmd.Flags().StringVar(&req.Category, "category", "", "Filter questions by category")
	cmd.Flags().StringVar(&req.PartnerType, "partner-type", "", "Filter partners by type")
	cmd.Flags().StringVar(&req.Location, "location", "", "Filter partners by location")

	return cmd
}

func runSearch(cmd *cobra.Command, req SearchRequest, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Post("/search", req)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	var searchResp SearchResponse
	if err := json.Unmarshal(resp.Data, &searchResp); err != nil {
		return fmt.Errorf("failed to parse search results: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(searchResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(searchResp.Results) == 0 {
		fmt.Println("No results found.")
		if len(searchResp.Suggestions) > 0 {
			fmt.Printf("Try: %s\n", strings.Join(searchResp.Suggestions, ", "))
		}
		return nil
	}

	fmt.Printf("Found %d results (%.1fms):\n\n", searchResp.Total, searchResp.TookMs)
	for i, result := range searchResp.Results {
		fmt.Printf("%d. [%s] %s (%.1f)\n", i+1, result.Type, result.Title, result.Score)
		if result.Excerpt != "" {
			fmt.Printf("   %s\n", result.Excerpt)
		}
		fmt.Printf("   ID: %s\n", result.ID)
		if i < len(searchResp.Results)-1 {
			fmt.Println(strings.Repeat("-", 40))
		}
	}

	if buckets, ok := searchResp.Aggregations["types"]; ok && len(buckets) > 1 {
		parts := make([]string, 0, len(buckets))
		for _, b := range buckets {
			parts = append(parts, fmt.Sprintf("%s: %d", b.Key, b.Count))
		}
		fmt.Printf("\nBy type: %s\n", strings.Join(parts, ", "))
	}

	return nil
}
