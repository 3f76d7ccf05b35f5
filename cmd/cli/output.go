package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/clbanning/mxj/v2"
	"github.com/flowbaker/commerce-go/pkg/clients/commerce"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type outputFormat string

const (
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
	formatXML  outputFormat = "xml"
)

func outputFormatFlag(cmd *cobra.Command) (outputFormat, error) {
	value, _ := cmd.Flags().GetString("output")

	switch format := outputFormat(value); format {
	case formatJSON, formatYAML, formatXML:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", value)
	}
}

// renderPayload writes a response payload in the requested format
func renderPayload(w io.Writer, resp *commerce.Response, format outputFormat) error {
	if resp.Data == nil {
		_, err := fmt.Fprintln(w, resp.RawBody)
		return err
	}

	switch format {
	case formatYAML:
		out, err := yaml.Marshal(plainNumbers(resp.Data))
		if err != nil {
			return fmt.Errorf("failed to render yaml: %w", err)
		}
		_, err = w.Write(out)
		return err

	case formatXML:
		m, err := mxj.NewMapJson([]byte(`{"response":` + resp.RawBody + `}`))
		if err != nil {
			return fmt.Errorf("failed to convert response to xml: %w", err)
		}
		out, err := m.XmlIndent("", "  ")
		if err != nil {
			return fmt.Errorf("failed to render xml: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err

	default:
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(resp.RawBody), "", "  "); err != nil {
			return fmt.Errorf("failed to render json: %w", err)
		}
		_, err := fmt.Fprintln(w, buf.String())
		return err
	}
}

// plainNumbers replaces json.Number values with int64 or float64 so YAML
// renders them as numbers instead of quoted strings
func plainNumbers(value any) any {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case map[string]any:
		converted := make(map[string]any, len(v))
		for key, item := range v {
			converted[key] = plainNumbers(item)
		}
		return converted
	case []any:
		converted := make([]any, len(v))
		for i, item := range v {
			converted[i] = plainNumbers(item)
		}
		return converted
	default:
		return value
	}
}

// printResponse renders a response and turns API failures into command errors
func printResponse(cmd *cobra.Command, resp *commerce.Response, execErr error) error {
	if resp == nil {
		return execErr
	}

	format, err := outputFormatFlag(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%d %s\n", resp.StatusCode, resp.RequestedEndpoint)

	if err := renderPayload(cmd.OutOrStdout(), resp, format); err != nil {
		return err
	}

	if execErr != nil {
		return execErr
	}

	if resp.HasNextPage {
		fmt.Fprintf(cmd.ErrOrStderr(), "next page: %s\n", resp.NextPageToken)
	}

	return resp.Err()
}
