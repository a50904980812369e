package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		endpoint string
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to the platform",
		Long:  "Authenticate against the platform login endpoint and persist the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if endpoint == "" {
				endpoint = viper.GetString("endpoint")
			}

			if username == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Username: ")
				username, _ = reader.ReadString('\n')
				username = strings.TrimSpace(username)
			}

			if password == "" {
				fmt.Print("Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)

				fmt.Println()
			}

			viper.Set("endpoint", endpoint)
			viper.Set("username", username)
			viper.Set("password", password)

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			token, err := client.GetToken(ctx)
			if err != nil {
				return fmt.Errorf("failed to log in: %w", err)
			}

			profile, err := client.Accounts().GetProfile(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch profile: %w", err)
			}

			// Persist the session token, never the password.
			viper.Set("token", token)
			viper.Set("password", "")

			if err := saveConfig(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("Successfully logged in as %s (organization %s)\n",
				profile.User.Username, profile.User.OrganizationID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&endpoint, "endpoint", "e", "", "platform endpoint URL")
	cmd.Flags().StringVarP(&username, "username", "u", "", "username for authentication")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password for authentication")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from the platform",
		Long:  "Clear the persisted session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set("token", "")
			viper.Set("username", "")
			viper.Set("password", "")

			if err := saveConfig(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Println("Successfully logged out")

			return nil
		},
	}
}
