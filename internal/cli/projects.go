package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pagecraft/pagecraft/pkg/client"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage website projects",
	}

	cmd.AddCommand(newProjectListCmd())
	cmd.AddCommand(newProjectGetCmd())
	cmd.AddCommand(newProjectCreateCmd())
	cmd.AddCommand(newProjectDeleteCmd())
	cmd.AddCommand(newProjectPublishCmd())
	cmd.AddCommand(newProjectExportCmd())

	return cmd
}

func newProjectListCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := apiClient.Projects().List(cmd.Context(), client.ListOptions{
				Limit:  limit,
				Offset: offset,
			})
			if err != nil {
				return err
			}

			return printOutput(page, func() {
				rows := make([][]string, 0, len(page.Items))
				for _, p := range page.Items {
					subdomain := "-"
					if p.Subdomain != nil {
						subdomain = *p.Subdomain
					}
					rows = append(rows, []string{
						strconv.FormatInt(p.ID, 10),
						truncate(p.Name, 40),
						boolLabel(p.Published, "published", "draft"),
						subdomain,
						p.UpdatedAt.Format("2006-01-02 15:04"),
					})
				}
				Table([]string{"ID", "NAME", "STATUS", "SUBDOMAIN", "UPDATED"}, rows)
				fmt.Printf("\nTotal: %d\n", page.Total)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum results")
	cmd.Flags().IntVar(&offset, "offset", 0, "results offset")
	return cmd
}

func newProjectGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id: %s", args[0])
			}

			p, err := apiClient.Projects().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			return printOutput(p, func() {
				fmt.Printf("ID:          %d\n", p.ID)
				fmt.Printf("Name:        %s\n", p.Name)
				fmt.Printf("Description: %s\n", p.Description)
				fmt.Printf("Published:   %t\n", p.Published)
				if p.Subdomain != nil {
					fmt.Printf("Subdomain:   %s\n", *p.Subdomain)
				}
				fmt.Printf("HTML:        %d bytes\n", len(p.HTML))
				fmt.Printf("CSS:         %d bytes\n", len(p.CSS))
				fmt.Printf("Updated:     %s\n", p.UpdatedAt.Format("2006-01-02 15:04:05"))
			})
		},
	}
}

func newProjectCreateCmd() *cobra.Command {
	var description string
	var templateID int64

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := client.CreateProjectRequest{
				Name:        args[0],
				Description: description,
			}
			if templateID > 0 {
				req.TemplateID = &templateID
			}

			p, err := apiClient.Projects().Create(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Printf("Created project %d: %s\n", p.ID, p.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "project description")
	cmd.Flags().Int64VarP(&templateID, "template", "t", 0, "template to start from")
	return cmd
}

func newProjectDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id: %s", args[0])
			}

			if !force {
				answer, err := promptInput(fmt.Sprintf("Delete project %d? [y/N] ", id))
				if err != nil {
					return err
				}
				if answer != "y" && answer != "Y" {
					fmt.Println("Aborted")
					return nil
				}
			}

			if err := apiClient.Projects().Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Deleted project %d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")
	return cmd
}

func newProjectPublishCmd() *cobra.Command {
	var unpublish bool

	cmd := &cobra.Command{
		Use:   "publish <id>",
		Short: "Publish or unpublish a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id: %s", args[0])
			}

			p, err := apiClient.Projects().SetPublished(cmd.Context(), id, !unpublish)
			if err != nil {
				return err
			}

			if p.Published {
				if p.Subdomain != nil {
					fmt.Printf("Project %d published at %s\n", p.ID, *p.Subdomain)
				} else {
					fmt.Printf("Project %d published\n", p.ID)
				}
			} else {
				fmt.Printf("Project %d unpublished\n", p.ID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&unpublish, "unpublish", false, "take the project offline")
	return cmd
}

func newProjectExportCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Write a project's HTML and CSS to disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id: %s", args[0])
			}

			p, err := apiClient.Projects().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0755); err != nil {
				return err
			}
			if err := os.WriteFile(outDir+"/index.html", []byte(p.HTML), 0644); err != nil {
				return err
			}
			if err := os.WriteFile(outDir+"/styles.css", []byte(p.CSS), 0644); err != nil {
				return err
			}

			fmt.Printf("Exported project %d to %s/\n", p.ID, outDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "O", ".", "output directory")
	return cmd
}
