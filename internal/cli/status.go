package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check server availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := apiClient.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("server unreachable: %w", err)
			}

			return printOutput(health, func() {
				fmt.Printf("Status:   %s\n", health.Status)
				fmt.Printf("Database: %s\n", health.Database)
				fmt.Printf("Version:  %s\n", health.Version)
			})
		},
	}
}
