package cli

import (
	"github.com/flowbaker/commerce-go/internal/initialization"
	"github.com/flowbaker/commerce-go/pkg/clients/commerce"
	"github.com/spf13/cobra"
)

func NewBuildCommand(container *initialization.ClientContainer) *cobra.Command {
	var data, file string

	cmd := &cobra.Command{
		Use:   "build <type>",
		Short: "Create a resource",
		Long: `Create a resource from a JSON document given inline or read from a file.

Example:
  commerce build order --data '{"items":[{"id":1}]}'
  commerce build product --file product.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, container, args[0], data, file)
		},
	}

	addBodyFlags(cmd, &data, &file)

	return cmd
}

func runBuild(cmd *cobra.Command, container *initialization.ClientContainer, resourceType, data, file string) error {
	body, err := readBody(data, file)
	if err != nil {
		return err
	}

	client, err := container.GetClient()
	if err != nil {
		return err
	}

	options := commerce.BuildOptions{Type: commerce.ResourceType(resourceType)}
	if body != nil {
		options.Data = body
	}

	resp, err := client.Build(cmd.Context(), options)
	return printResponse(cmd, resp, err)
}

func NewUpdateCommand(container *initialization.ClientContainer) *cobra.Command {
	var data, file string

	cmd := &cobra.Command{
		Use:   "update <type> <id>",
		Short: "Update a resource",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, container, args[0], args[1], data, file)
		},
	}

	addBodyFlags(cmd, &data, &file)

	return cmd
}

func runUpdate(cmd *cobra.Command, container *initialization.ClientContainer, resourceType, id, data, file string) error {
	body, err := readBody(data, file)
	if err != nil {
		return err
	}

	client, err := container.GetClient()
	if err != nil {
		return err
	}

	options := commerce.UpdateOptions{Type: commerce.ResourceType(resourceType), ID: id}
	if body != nil {
		options.Data = body
	}

	resp, err := client.Update(cmd.Context(), options)
	return printResponse(cmd, resp, err)
}

func addBodyFlags(cmd *cobra.Command, data, file *string) {
	cmd.Flags().StringVarP(data, "data", "d", "", "JSON request body")
	cmd.Flags().StringVarP(file, "file", "f", "", "Read the JSON request body from a file")
}
