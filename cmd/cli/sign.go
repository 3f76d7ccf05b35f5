package cli

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/flowbaker/commerce-go/internal/auth"
	"github.com/flowbaker/commerce-go/internal/initialization"
	"github.com/flowbaker/commerce-go/pkg/clients/commerce"
	"github.com/spf13/cobra"
)

func NewSignCommand(container *initialization.ClientContainer) *cobra.Command {
	var (
		method string
		query  []string
		data   string
		file   string
		verify string
	)

	cmd := &cobra.Command{
		Use:   "sign <path>",
		Short: "Show the canonical request and hash for a request",
		Long: `Compute the canonical request bytes and the hash header the client would
send for a request, without sending it. Use --verify to compare a hash captured
elsewhere against the configured key pair.

Example:
  commerce sign orders/14
  commerce sign orders -q limit=10 --verify 3q2+7w==`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSign(cmd, container, args[0], method, query, data, file, verify)
		},
	}

	cmd.Flags().StringVarP(&method, "method", "X", http.MethodGet, "HTTP method")
	cmd.Flags().StringArrayVarP(&query, "query", "q", nil, "Query parameter as key=value (repeatable)")
	cmd.Flags().StringVar(&verify, "verify", "", "Hash header value to verify")
	addBodyFlags(cmd, &data, &file)

	return cmd
}

func runSign(cmd *cobra.Command, container *initialization.ClientContainer, path, method string, rawQuery []string, data, file, verify string) error {
	query, err := parseQuery(rawQuery)
	if err != nil {
		return err
	}

	body, err := readBody(data, file)
	if err != nil {
		return err
	}

	client, err := container.GetClient()
	if err != nil {
		return err
	}

	spec := commerce.RequestSpec{
		Method: strings.ToUpper(method),
		Query:  query,
	}
	if body != nil {
		spec.Body = body
	}

	if strings.Contains(path, "://") {
		spec.OverrideURL = path
	} else {
		spec.Path = path
	}

	signed, err := client.SignRequest(spec)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", spec.Method, signed.Endpoint)
	fmt.Fprintf(out, "signed path: %s\n", signed.SignedPath)
	fmt.Fprintf(out, "canonical:   %s\n", signed.Canonical)
	fmt.Fprintf(out, "hash:        %s\n", signed.Hash)

	if verify == "" {
		return nil
	}

	cfg, err := container.GetConfig()
	if err != nil {
		return err
	}

	verifier, err := auth.NewAPISignatureVerifier(cfg.SharedKey, cfg.PrivateKey, cfg.HashAlgorithm)
	if err != nil {
		return err
	}

	if err := verifier.VerifyRequest(signed.SignedPath, cfg.SharedKey, verify, signed.Body); err != nil {
		return fmt.Errorf("hash does not match: %w", err)
	}

	fmt.Fprintln(out, "verified:    ok")
	return nil
}
