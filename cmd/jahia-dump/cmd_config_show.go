/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Output current config",
	Long: `
Is something not working for you?  Have a look whether your config is as you expect.
`,
	Args: cobra.ExactArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		showConfig(cmd.OutOrStdout())
	},
}

func init() {
	configCmd.AddCommand(showCmd)
}

// Only persistent flags are known here, command-specific ones come from the parsed YAML.
func showConfig(w io.Writer) {
	fmt.Fprintf(w, "Config file: %s\n\n", Config)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Setting", "Value"})
	t.AppendRows([]table.Row{
		{"debug", Debug},
		{"jahia-protocol", JahiaProtocol},
		{"jahia-host", JahiaHost},
		{"auth-username", AuthUsername},
		{"auth-password-cmd", AuthPasswordCmd},
		{"zip-path", ZipPath},
		{"tracer-file", TracerFile},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"sites (yaml)", ParsedConfig.Sites},
		{"workers (yaml)", ParsedConfig.Workers},
		{"export-timeout (yaml)", ParsedConfig.ExportTimeout},
		{"manifest (yaml)", ParsedConfig.Manifest},
	})
	t.Render()
}
