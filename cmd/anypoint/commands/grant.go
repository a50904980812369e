package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/anypoint-ops/anypoint-client/pkg/anypoint"
)

// ErrApplicationExists is returned by grant --ensure-new when the
// application name is already taken.
var ErrApplicationExists = errors.New("application already exists")

// NewGrantCommand creates the grant command: the end-to-end access
// provisioning workflow used from pipelines.
func NewGrantCommand() *cobra.Command {
	var (
		appName    string
		apiName    string
		apiVersion string
		ensureNew  bool
	)

	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Grant an application access to an API",
		Long: `Create a client application, resolve the API and version by name, and
request a contract. Prints the minted client credentials.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			if ensureNew {
				exists, err := client.Resolve().ApplicationExists(ctx, appName)
				if err != nil {
					return err
				}

				if exists {
					return fmt.Errorf("%w: %q", ErrApplicationExists, appName)
				}
			}

			credentials, err := client.Provision().GrantAccess(ctx, &anypoint.GrantRequest{
				ApplicationName: appName,
				APIName:         apiName,
				APIVersion:      apiVersion,
			})
			if err != nil {
				return fmt.Errorf("failed to grant access: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatYAML:
				return StandardYAMLRenderer(credentials)
			default:
				return StandardJSONRenderer(credentials)
			}
		},
	}

	cmd.Flags().StringVar(&appName, "app", "", "client application name (required)")
	cmd.Flags().StringVar(&apiName, "api-name", "", "API asset name (required)")
	cmd.Flags().StringVar(&apiVersion, "api-version", "", "API product version label (default "+anypoint.DefaultVersionLabel+")")
	cmd.Flags().BoolVar(&ensureNew, "ensure-new", false, "fail when the application name already exists")
	_ = cmd.MarkFlagRequired("app")
	_ = cmd.MarkFlagRequired("api-name")

	return cmd
}
