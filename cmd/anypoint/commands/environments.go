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

// NewEnvironmentsCommand creates the environments command group.
func NewEnvironmentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "environments",
		Aliases: []string{"envs", "env"},
		Short:   "Manage environments",
		Long:    "List the organization's environments and resolve them by name",
	}

	cmd.AddCommand(newEnvironmentsListCommand())
	cmd.AddCommand(newEnvironmentsDefaultCommand())
	cmd.AddCommand(newEnvironmentsResolveCommand())

	return cmd
}

func newEnvironmentsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List environments",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			environments, err := client.Environments().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list environments: %w", err)
			}

			return outputEnvironments(environments)
		},
	}
}

func newEnvironmentsDefaultCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "default",
		Short: "Show the default environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			environment, err := client.Environments().GetDefault(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get default environment: %w", err)
			}

			return outputEnvironments([]anypoint.Environment{*environment})
		},
	}
}

func newEnvironmentsResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve ENVIRONMENT_NAME",
		Short: "Resolve an environment name to its id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			envID, err := client.Resolve().EnvironmentIDByName(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Println(envID)

			return nil
		},
	}
}

func outputEnvironments(environments []anypoint.Environment) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(environments)
	case OutputFormatYAML:
		return StandardYAMLRenderer(environments)
	default:
		return renderEnvironmentTable(environments)
	}
}

func renderEnvironmentTable(environments []anypoint.Environment) error {
	if len(environments) == 0 {
		_, _ = os.Stdout.WriteString("No environments found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "ID", "Production")

	for _, env := range environments {
		production := "no"
		if env.IsProduction {
			production = "yes"
		}

		_ = table.Append(env.Name, env.ID, production)
	}

	_ = table.Render()

	return nil
}
