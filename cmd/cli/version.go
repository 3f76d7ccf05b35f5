package cli

import (
	"encoding/json"
	"fmt"

	"github.com/clbanning/mxj/v2"
	"github.com/flowbaker/commerce-go/internal/version"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd)
		},
	}
}

func runVersion(cmd *cobra.Command) error {
	format, err := outputFormatFlag(cmd)
	if err != nil {
		return err
	}

	info := version.Get()
	out := cmd.OutOrStdout()

	switch format {
	case formatYAML:
		encoded, err := yaml.Marshal(info)
		if err != nil {
			return err
		}
		_, err = out.Write(encoded)
		return err
	case formatJSON:
		encoded, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(encoded))
		return err
	default:
		raw, err := json.Marshal(info)
		if err != nil {
			return err
		}
		m, err := mxj.NewMapJson(raw)
		if err != nil {
			return err
		}
		encoded, err := m.XmlIndent("", "  ", "version")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(encoded))
		return err
	}
}
