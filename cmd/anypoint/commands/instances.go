package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anypoint-ops/anypoint-client/pkg/anypoint"
)

// NewInstancesCommand creates the API Manager instances command group.
func NewInstancesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "instances",
		Aliases: []string{"instance"},
		Short:   "Manage API Manager instances",
		Long:    "Create and promote managed API instances across environments",
	}

	cmd.AddCommand(newInstancesDeployCommand())
	cmd.AddCommand(newInstancesPromoteCommand())

	return cmd
}

func newInstancesDeployCommand() *cobra.Command {
	var (
		assetID      string
		assetVersion string
		groupID      string
		environment  string
		label        string
		endpointURI  string
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Create an API instance from an Exchange asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			// The group defaults to the caller's organization, matching
			// how assets are published to Exchange.
			if groupID == "" {
				groupID, err = client.Accounts().OrganizationID(ctx)
				if err != nil {
					return err
				}
			}

			instance, err := client.Provision().DeployInstance(ctx, &anypoint.DeployRequest{
				AssetID:         assetID,
				AssetVersion:    assetVersion,
				GroupID:         groupID,
				EnvironmentName: environment,
				Label:           label,
				EndpointURI:     endpointURI,
			})
			if err != nil {
				return fmt.Errorf("failed to deploy instance: %w", err)
			}

			fmt.Printf("Successfully created instance %s in environment '%s'\n", instance.ID, environment)

			return nil
		},
	}

	cmd.Flags().StringVar(&assetID, "asset", "", "Exchange asset id (required)")
	cmd.Flags().StringVar(&assetVersion, "asset-version", "", "Exchange asset version (required)")
	cmd.Flags().StringVar(&groupID, "group", "", "business group id (defaults to the organization)")
	cmd.Flags().StringVar(&environment, "environment", "", "target environment name (required)")
	cmd.Flags().StringVar(&label, "label", "", "instance label (defaults to the asset id)")
	cmd.Flags().StringVar(&endpointURI, "endpoint-uri", "", "implementation URI (default "+anypoint.DefaultInstanceEndpointURI+")")
	_ = cmd.MarkFlagRequired("asset")
	_ = cmd.MarkFlagRequired("asset-version")
	_ = cmd.MarkFlagRequired("environment")

	return cmd
}

func newInstancesPromoteCommand() *cobra.Command {
	var (
		originID    string
		environment string
		label       string
	)

	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Promote an API instance into another environment",
		Long:  "Copy an existing instance, with its policies, tiers, and alerts, into the target environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			instance, err := client.Provision().Promote(context.Background(), &anypoint.PromoteRequest{
				EnvironmentName: environment,
				OriginAPIID:     originID,
				Label:           label,
			})
			if err != nil {
				return fmt.Errorf("failed to promote instance: %w", err)
			}

			fmt.Printf("Successfully promoted instance %s into environment '%s' (new instance %s)\n",
				originID, environment, instance.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&originID, "origin", "", "origin API instance id (required)")
	cmd.Flags().StringVar(&environment, "environment", "", "target environment name (required)")
	cmd.Flags().StringVar(&label, "label", "", "instance label in the target environment")
	_ = cmd.MarkFlagRequired("origin")
	_ = cmd.MarkFlagRequired("environment")

	return cmd
}
