package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/anypoint-ops/anypoint-client/pkg/anypoint"
)

// NewAppsCommand creates the client applications command group.
func NewAppsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "apps",
		Aliases: []string{"applications", "app"},
		Short:   "Manage client applications",
		Long:    "List, create, and delete client applications in the organization",
	}

	cmd.AddCommand(newAppsListCommand())
	cmd.AddCommand(newAppsCreateCommand())
	cmd.AddCommand(newAppsDeleteCommand())
	cmd.AddCommand(newAppsExistsCommand())

	return cmd
}

func newAppsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List client applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			list, err := client.Applications().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list applications: %w", err)
			}

			return outputApplications(list.Applications)
		},
	}
}

func newAppsCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create APP_NAME",
		Short: "Create a client application",
		Long:  "Register a client application with the standard provisioning body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			app, err := client.Applications().Create(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to create application: %w", err)
			}

			fmt.Printf("Successfully created application '%s' with id %s\n", app.Name, app.ID)

			return nil
		},
	}
}

func newAppsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete APP_NAME",
		Short: "Delete a client application",
		Long:  "Delete the client application resolved by name (last match wins on duplicates)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if !force {
				fmt.Printf("Really delete application '%s'? (y/N): ", name)

				var response string

				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					_, _ = os.Stdout.WriteString("Cancelled\n")

					return nil
				}
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			appID, err := client.Resolve().ApplicationIDByName(ctx, name)
			if err != nil {
				return err
			}

			if err := client.Applications().Delete(ctx, appID); err != nil {
				return fmt.Errorf("failed to delete application: %w", err)
			}

			fmt.Printf("Successfully deleted application '%s'\n", name)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "force deletion without confirmation")

	return cmd
}

func newAppsExistsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exists APP_NAME",
		Short: "Check whether a client application exists",
		Long:  "Exit 0 when an application with the name exists, exit 1 otherwise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			exists, err := client.Resolve().ApplicationExists(context.Background(), args[0])
			if err != nil {
				return err
			}

			if !exists {
				fmt.Printf("Application '%s' not found\n", args[0])
				os.Exit(1)
			}

			fmt.Printf("Application '%s' exists\n", args[0])

			return nil
		},
	}
}

func outputApplications(apps []anypoint.Application) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(apps)
	case OutputFormatYAML:
		return StandardYAMLRenderer(apps)
	default:
		return renderApplicationTable(apps)
	}
}

func renderApplicationTable(apps []anypoint.Application) error {
	if len(apps) == 0 {
		_, _ = os.Stdout.WriteString("No applications found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "ID", "URL")

	for _, app := range apps {
		_ = table.Append(app.Name, app.ID, app.URL)
	}

	_ = table.Render()

	return nil
}
