package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pagecraft/pagecraft/pkg/client"
)

func newGenerateCmd() *cobra.Command {
	var (
		businessType string
		description  string
		primaryColor string
		sections     []string
		projectID    int64
	)

	cmd := &cobra.Command{
		Use:   "generate <business-name>",
		Short: "Generate a website with AI",
		Long: `Generate a complete website from a business description. The result
can be saved into an existing project with --project, or exported with
'pagecraft projects export' afterwards.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apiClient.AI().GenerateSite(cmd.Context(), client.GenerateSiteRequest{
				BusinessName: args[0],
				BusinessType: businessType,
				Description:  description,
				PrimaryColor: primaryColor,
				Sections:     sections,
			})
			if err != nil {
				return generationError(err)
			}

			if projectID > 0 {
				html := result.Result.HTML
				css := result.Result.CSS
				if _, err := apiClient.Projects().Update(cmd.Context(), projectID, client.UpdateProjectRequest{
					HTML: &html,
					CSS:  &css,
				}); err != nil {
					return fmt.Errorf("generation succeeded but saving to project %d failed: %w", projectID, err)
				}
				fmt.Printf("Generated site saved to project %d (%d tokens)\n", projectID, result.TokensUsed)
			} else {
				fmt.Printf("Generated %d bytes of HTML and %d bytes of CSS (%d tokens)\n",
					len(result.Result.HTML), len(result.Result.CSS), result.TokensUsed)
				fmt.Println("Use --project to save the result into a project.")
			}

			fmt.Printf("Generations used: %d/%d\n",
				result.Usage.AIGenerationsUsed, result.Usage.AIGenerationsLimit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&businessType, "type", "t", "", "business type, e.g. restaurant")
	cmd.Flags().StringVarP(&description, "description", "d", "", "what the business does")
	cmd.Flags().StringVar(&primaryColor, "color", "", "primary brand color, e.g. #2563eb")
	cmd.Flags().StringSliceVarP(&sections, "sections", "s", nil, "sections to include, e.g. hero,about,contact")
	cmd.Flags().Int64VarP(&projectID, "project", "p", 0, "save the result into this project")

	return cmd
}

func newUsageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show AI generation quota",
		RunE: func(cmd *cobra.Command, args []string) error {
			usage, err := apiClient.AI().Usage(cmd.Context())
			if err != nil {
				return err
			}

			return printOutput(usage, func() {
				sub := usage.Subscription
				fmt.Printf("Plan:        %s\n", sub.PlanType)
				fmt.Printf("Status:      %s\n", sub.SubscriptionStatus)
				fmt.Printf("Generations: %d/%d\n", sub.AIGenerationsUsed, sub.AIGenerationsLimit)
				fmt.Printf("Can use AI:  %t\n", usage.CanUseAI)
				if usage.IsBlocked {
					fmt.Fprintln(os.Stderr, "\nYour subscription is blocked. Update your billing details to continue.")
				}
			})
		},
	}
}

// generationError turns billing failures into actionable messages
func generationError(err error) error {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	switch {
	case apiErr.IsPaymentRequired():
		return fmt.Errorf("%s\nYour subscription needs attention before you can generate sites", apiErr.Message)
	case apiErr.IsQuotaExceeded():
		return fmt.Errorf("%s\nUpgrade your plan to get unlimited generations", apiErr.Message)
	default:
		return err
	}
}
