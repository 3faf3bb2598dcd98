package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pagecraft/pagecraft/pkg/client"
)

func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"template"},
		Short:   "Browse the template catalog",
	}

	cmd.AddCommand(newTemplateListCmd())
	cmd.AddCommand(newTemplateGetCmd())

	return cmd
}

func newTemplateListCmd() *cobra.Command {
	var category string
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := apiClient.Templates().List(cmd.Context(), category, client.ListOptions{
				Limit:  limit,
				Offset: offset,
			})
			if err != nil {
				return err
			}

			return printOutput(page, func() {
				rows := make([][]string, 0, len(page.Items))
				for _, t := range page.Items {
					rows = append(rows, []string{
						strconv.FormatInt(t.ID, 10),
						truncate(t.Name, 40),
						t.Category,
						boolLabel(t.IsPremium, "premium", "free"),
					})
				}
				Table([]string{"ID", "NAME", "CATEGORY", "TIER"}, rows)
				fmt.Printf("\nTotal: %d\n", page.Total)
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum results")
	cmd.Flags().IntVar(&offset, "offset", 0, "results offset")
	return cmd
}

func newTemplateGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show template details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid template id: %s", args[0])
			}

			t, err := apiClient.Templates().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			return printOutput(t, func() {
				fmt.Printf("ID:          %d\n", t.ID)
				fmt.Printf("Name:        %s\n", t.Name)
				fmt.Printf("Category:    %s\n", t.Category)
				fmt.Printf("Description: %s\n", t.Description)
				fmt.Printf("Premium:     %t\n", t.IsPremium)
				if t.PreviewURL != "" {
					fmt.Printf("Preview:     %s\n", t.PreviewURL)
				}
			})
		},
	}
}
