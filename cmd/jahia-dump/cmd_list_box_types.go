/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/toothbrush/jahia-dump/box"
)

var listBoxTypesUsage = strings.TrimSpace(`
Print the Jahia box types we know how to turn into shortcodes.  Any other box type is kept as a
bare [type] placeholder for a human to look at.
`)

var listBoxTypesCmd = &cobra.Command{
	Use:   "box-types",
	Short: "Print list of known box types",
	Long:  listBoxTypesUsage,
	Args:  cobra.ExactArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		listBoxTypes(cmd.OutOrStdout())
	},
}

func init() {
	listCmd.AddCommand(listBoxTypesCmd)
}

func listBoxTypes(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Jahia type", "Kind"})
	for _, legacy := range box.LegacyTypes() {
		kind, _ := box.Classify(legacy)
		t.AppendRow(table.Row{legacy, kind})
	}
	t.Render()
}
