/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List what the migration knows about",
	Long: `
Find out which Jahia box types get a WordPress shortcode, before you run a migration.
`,
	Args: cobra.NoArgs,
}

func init() {
	rootCmd.AddCommand(listCmd)
}
