package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (cli *commandLine) newExportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump the whole dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.export(format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "json or yaml")
	return cmd
}

func (cli *commandLine) export(format string) error {
	snap := cli.db.Snapshot()
	switch format {
	case "json":
		return cli.printJSON(snap)
	case "yaml":
		enc := yaml.NewEncoder(cli.out)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q: must be json or yaml", format)
	}
}
