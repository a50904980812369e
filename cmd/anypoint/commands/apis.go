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

// NewAPIsCommand creates the APIs command group.
func NewAPIsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "apis",
		Aliases: []string{"api"},
		Short:   "Inspect API assets",
		Long:    "List API assets, their versions, and per-environment instances",
	}

	cmd.AddCommand(newAPIsListCommand())
	cmd.AddCommand(newAPIsVersionsCommand())
	cmd.AddCommand(newAPIsListEnvCommand())

	return cmd
}

func newAPIsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List API assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			list, err := client.APIs().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list APIs: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(list.APIs)
			case OutputFormatYAML:
				return StandardYAMLRenderer(list.APIs)
			default:
				return renderAPITable(list.APIs)
			}
		},
	}
}

func newAPIsVersionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "versions API_NAME",
		Short: "List the versions of an API asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			apiID, err := client.Resolve().APIIDByName(ctx, args[0])
			if err != nil {
				return err
			}

			api, err := client.APIs().Get(ctx, apiID)
			if err != nil {
				return fmt.Errorf("failed to get API: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(api.Versions)
			case OutputFormatYAML:
				return StandardYAMLRenderer(api.Versions)
			default:
				return renderVersionTable(api.Versions)
			}
		},
	}
}

func newAPIsListEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "instances ENVIRONMENT_NAME",
		Short: "List managed API instances in an environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			envID, err := client.Resolve().EnvironmentIDByName(ctx, args[0])
			if err != nil {
				return err
			}

			list, err := client.APIs().ListInEnvironment(ctx, envID)
			if err != nil {
				return fmt.Errorf("failed to list environment APIs: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(list.Assets)
			case OutputFormatYAML:
				return StandardYAMLRenderer(list.Assets)
			default:
				return renderEnvironmentAPITable(list.Assets)
			}
		},
	}
}

func renderAPITable(apis []anypoint.API) error {
	if len(apis) == 0 {
		_, _ = os.Stdout.WriteString("No APIs found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "ID", "Versions")

	for _, api := range apis {
		_ = table.Append(api.Name, api.ID, fmt.Sprintf("%d", len(api.Versions)))
	}

	_ = table.Render()

	return nil
}

func renderVersionTable(versions []anypoint.APIVersion) error {
	if len(versions) == 0 {
		_, _ = os.Stdout.WriteString("No versions found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Product Version", "ID", "Name")

	for _, version := range versions {
		_ = table.Append(version.ProductVersion, version.ID, version.Name)
	}

	_ = table.Render()

	return nil
}

func renderEnvironmentAPITable(assets []anypoint.EnvironmentAPI) error {
	if len(assets) == 0 {
		_, _ = os.Stdout.WriteString("No API instances found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Asset", "ID", "Version", "Label")

	for _, asset := range assets {
		_ = table.Append(asset.AssetID, asset.ID, asset.AssetVersion, asset.InstanceLabel)
	}

	_ = table.Render()

	return nil
}
