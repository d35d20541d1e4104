package auth

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/solarops/soltrack/cmd/cli/client"
	"github.com/solarops/soltrack/cmd/cli/config"
)

// InitAuth registers login/register/logout on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(loginCmd(), registerCmd(), logoutCmd())
}

func loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store a token for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("username and password are required")
			}

			var out struct {
				Token string `json:"token"`
			}
			err := client.Do(http.MethodPost, "/v1/auth/login",
				map[string]string{"username": username, "password": password}, false, &out)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if out.Token == "" {
				return fmt.Errorf("login succeeded but no token returned")
			}

			if err := config.SaveToken(out.Token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			fmt.Println("Login successful. Token stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username to authenticate as")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func registerCmd() *cobra.Command {
	var username, email, password, company string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || email == "" || password == "" {
				return fmt.Errorf("username, email and password are required")
			}

			err := client.Do(http.MethodPost, "/v1/auth/register", map[string]string{
				"username": username,
				"email":    email,
				"password": password,
				"company":  company,
			}, false, nil)
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}
			fmt.Println("Registration successful. Run 'soltrack login' to authenticate.")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (min 8 characters)")
	cmd.Flags().StringVar(&company, "company", "", "company name")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the locally stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ClearToken(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}
