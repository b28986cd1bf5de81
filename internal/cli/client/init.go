package client

import (
	"fmt"

	"github.com/spf13/cobra"
)

// InitCmd creates the init command.
func InitCmd() *cobra.Command {
	var (
		apiURL string
		userID string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Save client configuration",
		Long:  "Writes the API URL and user ID to the global config file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiURL == "" {
				apiURL = defaultAPIURL
			}

			config := &GlobalConfig{
				APIURL: apiURL,
				UserID: userID,
			}
			if err := SaveGlobalConfig(config); err != nil {
				return err
			}

			configPath, err := GetConfigPath()
			if err != nil {
				return err
			}

			fmt.Printf("Configuration saved to %s\n", configPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&apiURL, "url", "", "API base URL (default: http://localhost:8080)")
	cmd.Flags().StringVar(&userID, "user-id", "", "User ID sent with requests (enables health log search)")

	return cmd
}
