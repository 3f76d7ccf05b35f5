package cli

import (
	"github.com/flowbaker/commerce-go/internal/initialization"
	"github.com/flowbaker/commerce-go/pkg/clients/commerce"
	"github.com/spf13/cobra"
)

func NewGetCommand(container *initialization.ClientContainer) *cobra.Command {
	var (
		nested   string
		nestedID string
		query    []string
	)

	cmd := &cobra.Command{
		Use:   "get <type> <id>",
		Short: "Fetch a single resource",
		Long: `Fetch a single resource by id, optionally a nested resource below it.

Example:
  commerce get order 14
  commerce get order 14 --nested shipment --nested-id 3`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, container, args[0], args[1], nested, nestedID, query)
		},
	}

	cmd.Flags().StringVar(&nested, "nested", "", "Nested resource type")
	cmd.Flags().StringVar(&nestedID, "nested-id", "", "Nested resource id")
	cmd.Flags().StringArrayVarP(&query, "query", "q", nil, "Query parameter as key=value (repeatable)")

	return cmd
}

func runGet(cmd *cobra.Command, container *initialization.ClientContainer, resourceType, id, nested, nestedID string, rawQuery []string) error {
	query, err := parseQuery(rawQuery)
	if err != nil {
		return err
	}

	client, err := container.GetClient()
	if err != nil {
		return err
	}

	resp, err := client.Get(cmd.Context(), commerce.GetOptions{
		Type:     commerce.ResourceType(resourceType),
		ID:       id,
		Nested:   commerce.ResourceType(nested),
		NestedID: nestedID,
		Query:    query,
	})

	return printResponse(cmd, resp, err)
}
