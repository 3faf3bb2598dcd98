package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/pagecraft/pagecraft/pkg/client"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
	}

	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newRegisterCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newWhoamiCmd())

	return cmd
}

func newLoginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to PageCraft",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				var err error
				email, err = promptInput("Email: ")
				if err != nil {
					return err
				}
			}

			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			resp, err := apiClient.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			viper.Set("auth.token", resp.Token)
			if err := writeConfig(); err != nil {
				return fmt.Errorf("failed to save credentials: %w", err)
			}

			if resp.User != nil {
				fmt.Printf("Logged in as %s (%s)\n", resp.User.Name, resp.User.Email)
			} else {
				fmt.Println("Logged in")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var email, name string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new PageCraft account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email == "" {
				if email, err = promptInput("Email: "); err != nil {
					return err
				}
			}
			if name == "" {
				if name, err = promptInput("Name: "); err != nil {
					return err
				}
			}

			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}
			confirm, err := promptPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}

			resp, err := apiClient.Register(cmd.Context(), client.RegisterRequest{
				Email:    email,
				Name:     name,
				Password: password,
			})
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			viper.Set("auth.token", resp.Token)
			if err := writeConfig(); err != nil {
				return fmt.Errorf("failed to save credentials: %w", err)
			}

			fmt.Printf("Account created for %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and discard the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set("auth.token", "")
			if err := writeConfig(); err != nil {
				return fmt.Errorf("failed to update config: %w", err)
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently authenticated account",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := apiClient.GetCurrentUser(cmd.Context())
			if err != nil {
				return err
			}

			return printOutput(u, func() {
				fmt.Printf("ID:     %d\n", u.ID)
				fmt.Printf("Email:  %s\n", u.Email)
				fmt.Printf("Name:   %s\n", u.Name)
				fmt.Printf("Role:   %s\n", u.Role)
				fmt.Printf("Plan:   %s (%s)\n", u.PlanType, u.SubscriptionStatus)
			})
		},
	}
}

func promptInput(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func promptPassword(label string) (string, error) {
	fmt.Print(label)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(password), nil
}
