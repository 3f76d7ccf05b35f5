package cli

import (
	"fmt"
	"os"

	"github.com/flowbaker/commerce-go/internal/initialization"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	container := initialization.NewClientContainer()

	rootCmd := &cobra.Command{
		Use:   "commerce",
		Short: "Commerce platform API CLI",
		Long: `commerce calls the commerce platform REST API with signed requests.
Credentials come from commerce.yaml or the COMMERCE_SHARED_KEY and COMMERCE_PRIVATE_KEY environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}

			configFile, _ := cmd.Flags().GetString("config")
			apiURL, _ := cmd.Flags().GetString("api-url")
			apiVersion, _ := cmd.Flags().GetInt("api-version")

			container.Configure(initialization.ClientContainerOptions{
				ConfigFile: configFile,
				BaseURL:    apiURL,
				APIVersion: apiVersion,
			})

			return nil
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default: commerce.yaml)")
	rootCmd.PersistentFlags().String("api-url", "", "Override API base URL")
	rootCmd.PersistentFlags().Int("api-version", 0, "Override API version")
	rootCmd.PersistentFlags().StringP("output", "o", string(formatJSON), "Output format: json, yaml or xml")

	rootCmd.AddCommand(NewGetCommand(container))
	rootCmd.AddCommand(NewListCommand(container))
	rootCmd.AddCommand(NewBuildCommand(container))
	rootCmd.AddCommand(NewUpdateCommand(container))
	rootCmd.AddCommand(NewDeleteCommand(container))
	rootCmd.AddCommand(NewSignCommand(container))
	rootCmd.AddCommand(NewSandboxCommand(container))
	rootCmd.AddCommand(NewResourcesCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
