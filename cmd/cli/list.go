package cli

import (
	"errors"
	"net/http"

	"github.com/flowbaker/commerce-go/internal/initialization"
	"github.com/flowbaker/commerce-go/pkg/clients/commerce"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errPageLimitReached = errors.New("page limit reached")

func NewListCommand(container *initialization.ClientContainer) *cobra.Command {
	var (
		query    []string
		all      bool
		maxPages int
	)

	cmd := &cobra.Command{
		Use:   "list <type>",
		Short: "List resources of a type",
		Long: `List resources of a type. With --all every page is fetched by following
the next page token returned in the pagination metadata.

Example:
  commerce list order -q limit=10
  commerce list product --all --max-pages 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, container, args[0], query, all, maxPages)
		},
	}

	cmd.Flags().StringArrayVarP(&query, "query", "q", nil, "Query parameter as key=value (repeatable)")
	cmd.Flags().BoolVar(&all, "all", false, "Follow next page tokens until the last page")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "Stop after this many pages when --all is set (0 means no limit)")

	return cmd
}

func runList(cmd *cobra.Command, container *initialization.ClientContainer, resourceType string, rawQuery []string, all bool, maxPages int) error {
	query, err := parseQuery(rawQuery)
	if err != nil {
		return err
	}

	client, err := container.GetClient()
	if err != nil {
		return err
	}

	options := commerce.ListOptions{
		Type:  commerce.ResourceType(resourceType),
		Query: query,
	}

	if !all {
		resp, err := client.List(cmd.Context(), options)
		return printResponse(cmd, resp, err)
	}

	if err := options.Validate(); err != nil {
		return err
	}

	segment, err := commerce.ResolveSegment(options.Type)
	if err != nil {
		return err
	}

	pages := 0
	err = client.EachPage(cmd.Context(), commerce.RequestSpec{
		Method: http.MethodGet,
		Path:   segment,
		Query:  query,
	}, func(resp *commerce.Response) error {
		pages++
		if err := printResponse(cmd, resp, nil); err != nil {
			return err
		}
		if maxPages > 0 && pages >= maxPages && resp.HasNextPage {
			return errPageLimitReached
		}
		return nil
	})

	if errors.Is(err, errPageLimitReached) {
		log.Info().Int("pages", pages).Msg("Stopped at page limit")
		return nil
	}

	var malformed *commerce.MalformedResponseError
	if errors.As(err, &malformed) {
		if resp := client.LastResponse(); resp != nil {
			return printResponse(cmd, resp, err)
		}
	}

	return err
}
