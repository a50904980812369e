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

// NewExchangeCommand creates the Exchange command group.
func NewExchangeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "Browse Exchange assets and groups",
	}

	cmd.AddCommand(newExchangeAssetsCommand())
	cmd.AddCommand(newExchangeGetCommand())
	cmd.AddCommand(newExchangeGroupsCommand())

	return cmd
}

func newExchangeAssetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "assets",
		Short: "List the organization's Exchange assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			assets, err := client.Exchange().ListAssets(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list exchange assets: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(assets)
			case OutputFormatYAML:
				return StandardYAMLRenderer(assets)
			default:
				return renderAssetTable(assets)
			}
		},
	}
}

func newExchangeGetCommand() *cobra.Command {
	var groupID string

	cmd := &cobra.Command{
		Use:   "get ASSET_ID",
		Short: "Show one Exchange asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			// Default the group to the caller's organization.
			if groupID == "" {
				groupID, err = client.Accounts().OrganizationID(ctx)
				if err != nil {
					return err
				}
			}

			asset, err := client.Exchange().GetAsset(ctx, groupID, args[0])
			if err != nil {
				return fmt.Errorf("failed to get exchange asset: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatYAML:
				return StandardYAMLRenderer(asset)
			default:
				return StandardJSONRenderer(asset)
			}
		},
	}

	cmd.Flags().StringVarP(&groupID, "group", "g", "", "business group id (defaults to the organization)")

	return cmd
}

func newExchangeGroupsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List business groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			groups, err := client.Exchange().ListGroups(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list exchange groups: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(groups)
			case OutputFormatYAML:
				return StandardYAMLRenderer(groups)
			default:
				return renderGroupTable(groups)
			}
		},
	}
}

func renderAssetTable(assets []anypoint.ExchangeAsset) error {
	if len(assets) == 0 {
		_, _ = os.Stdout.WriteString("No assets found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Asset", "Group", "Version", "Type")

	for _, asset := range assets {
		_ = table.Append(asset.AssetID, asset.GroupID, asset.Version, asset.Type)
	}

	_ = table.Render()

	return nil
}

func renderGroupTable(groups []anypoint.ExchangeGroup) error {
	if len(groups) == 0 {
		_, _ = os.Stdout.WriteString("No groups found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Group ID")

	for _, group := range groups {
		_ = table.Append(group.Name, group.GroupID)
	}

	_ = table.Render()

	return nil
}
