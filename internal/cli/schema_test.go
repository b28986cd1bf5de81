package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema(t *testing.T) {
	root := &cobra.Command{Use: "pawsearch", Short: "Search the platform"}
	sub := &cobra.Command{Use: "search [query]", Short: "Run a search"}
	sub.Flags().StringP("language", "l", "en", "Query language")
	sub.Flags().String("sort", "relevance", "Sort order")
	require.NoError(t, sub.MarkFlagRequired("sort"))
	root.AddCommand(sub)
	AddHelpJSONFlag(root)

	schema := GenerateSchema(root)

	assert.Equal(t, "pawsearch", schema.Name)
	require.Len(t, schema.Subcommands, 1)

	flags := schema.Subcommands[0].Flags
	require.Len(t, flags, 2)

	byName := make(map[string]FlagSchema)
	for _, f := range flags {
		byName[f.Name] = f
	}
	assert.Equal(t, "l", byName["language"].Shorthand)
	assert.Equal(t, "en", byName["language"].Default)
	assert.False(t, byName["language"].Required)
	assert.True(t, byName["sort"].Required)
}

func TestGenerateSchema_SkipsHelpFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "pawsearchd"}
	AddHelpJSONFlag(cmd)
	cmd.InitDefaultHelpFlag()

	schema := GenerateSchema(cmd)
	assert.Empty(t, schema.Flags)
}
