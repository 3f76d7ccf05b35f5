package cli

import (
	"github.com/flowbaker/commerce-go/internal/initialization"
	"github.com/flowbaker/commerce-go/pkg/clients/commerce"
	"github.com/spf13/cobra"
)

func NewDeleteCommand(container *initialization.ClientContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <type> <id>",
		Short: "Delete a resource",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, container, args[0], args[1])
		},
	}

	return cmd
}

func runDelete(cmd *cobra.Command, container *initialization.ClientContainer, resourceType, id string) error {
	client, err := container.GetClient()
	if err != nil {
		return err
	}

	resp, err := client.Delete(cmd.Context(), commerce.DeleteOptions{
		Type: commerce.ResourceType(resourceType),
		ID:   id,
	})

	return printResponse(cmd, resp, err)
}
