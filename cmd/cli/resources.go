package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/flowbaker/commerce-go/pkg/clients/commerce"
	"github.com/spf13/cobra"
)

func NewResourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List supported resource types and their URL segments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResources(cmd)
		},
	}
}

func runResources(cmd *cobra.Command) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tSEGMENT")

	for _, resource := range commerce.ResourceTypes() {
		segment, err := commerce.ResolveSegment(resource)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\n", resource, segment)
	}

	return w.Flush()
}
