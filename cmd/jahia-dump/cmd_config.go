/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var configUsage = strings.TrimSpace(`
The config file is YAML, its keys are the long names of the flags:

  jahia-host: jahia.example.com
  auth-username: bob
  auth-password-cmd: [pass, show, jahia]
  zip-path: ~/jahia-exports
  sites: [dcsl, lcav]

It's read from ~/.config/jahia-dump.yaml unless --config or JAHIA_DUMP_CONFIG say otherwise.  Flags
given on the command line win over the file.
`)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the config jahia-dump runs with",
	Long:  configUsage,
	Args:  cobra.NoArgs,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
