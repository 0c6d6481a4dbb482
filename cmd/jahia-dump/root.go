/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"

	"github.com/fatih/structs"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

const defaultConfig = "~/.config/jahia-dump.yaml"

var (
	// Store the result of binding cobra flags
	Config string
	Debug  bool

	// Command to run to retrieve the Jahia password
	AuthPasswordCmd []string

	AuthUsername  string
	JahiaHost     string
	JahiaProtocol string
	ZipPath       string
	TracerFile    string

	// Where the config was really read from, if anywhere
	ConfigActual string

	ParsedConfig YamlConfig
)

// Build the cobra command that handles our command line tool.
var rootCmd = &cobra.Command{
	Use:   "jahia-dump",
	Short: "Export Jahia sites and migrate their boxes to WordPress shortcodes",
	Long: `
Moving a pile of sites off Jahia?  This tool asks Jahia to export each site as a zip and downloads it
(once: re-runs reuse what's already there), and turns the boxes found in exported pages into the
shortcodes WordPress understands.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(cmd); err != nil {
			return fmt.Errorf("jahia-dump: failed to initialise config: %w", err)
		}
		return nil
	},
}

func init() {
	// Define cobra flags, the default value has the lowest (least significant) precedence
	rootCmd.PersistentFlags().StringVar(&Config, "config", "", "config file location (default: ~/.config/jahia-dump.yaml, respects JAHIA_DUMP_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "display debug output")
	rootCmd.PersistentFlags().StringSliceVar(&AuthPasswordCmd, "auth-password-cmd", []string{}, "shell command to retrieve the Jahia password")
	rootCmd.PersistentFlags().StringVar(&AuthUsername, "auth-username", "", "your Jahia username")
	rootCmd.PersistentFlags().StringVar(&JahiaHost, "jahia-host", "", "Jahia host name, e.g. jahia.example.com")
	rootCmd.PersistentFlags().StringVar(&JahiaProtocol, "jahia-protocol", "https", "protocol to reach Jahia with")
	rootCmd.PersistentFlags().StringVar(&ZipPath, "zip-path", "", "directory to save export zips into")
	rootCmd.PersistentFlags().StringVar(&TracerFile, "tracer-file", "", "CSV file recording each site's migration steps")
}

func initializeConfig(cmd *cobra.Command) error {
	explicit := true
	if Config == "" {
		// Did the user provide an ENV?
		envConfig := os.Getenv("JAHIA_DUMP_CONFIG")
		if envConfig != "" {
			Config = envConfig
		} else {
			// As fallback, search for config in home XDG-ish directory
			Config = defaultConfig
			explicit = false
		}
	}
	config, err := homedir.Expand(Config)
	if err != nil {
		return fmt.Errorf("jahia-dump: unable to expand homedir: %w", err)
	}
	Config = config

	if _, err := os.Stat(Config); errors.Is(err, os.ErrNotExist) {
		if explicit {
			fmt.Fprintf(os.Stderr, "Couldn't read config file %s, does it exist?\n", Config)
			return fmt.Errorf("jahia-dump: specified config file does not exist: %w", err)
		}
		// no config at all is fine, flags will have to do
		return nil
	}

	yamlFile, err := os.ReadFile(Config)
	if err != nil {
		return fmt.Errorf("jahia-dump: error reading config file: %w", err)
	}
	ConfigActual = Config

	// I'd like to bark if a user sets a flag we don't recognise:
	if err := yaml.UnmarshalStrict(yamlFile, &ParsedConfig); err != nil {
		return fmt.Errorf("jahia-dump: issue parsing config file: %w", err)
	}

	if err := bindFlags(cmd, ParsedConfig); err != nil {
		return fmt.Errorf("jahia-dump: failed to bind flags: %w", err)
	}

	return nil
}

type YamlConfig struct {
	Force   *bool `yaml:"force"`
	WithVCR *bool `yaml:"with-vcr"`
	Workers int   `yaml:"workers"`

	JahiaHost     string `yaml:"jahia-host"`
	JahiaProtocol string `yaml:"jahia-protocol"`
	AuthUsername  string `yaml:"auth-username"`
	ZipPath       string `yaml:"zip-path"`
	TracerFile    string `yaml:"tracer-file"`
	ExportTimeout string `yaml:"export-timeout"`
	Manifest      string `yaml:"manifest"`

	AuthPasswordCmd []string `yaml:"auth-password-cmd"`
	Sites           []string `yaml:"sites"`
}

// Bind each config file value to its cobra flag, unless the flag was given on the command line.
func bindFlags(cmd *cobra.Command, v YamlConfig) error {
	for _, field := range structs.Fields(v) {
		key := field.Tag("yaml")
		if key == "" {
			return fmt.Errorf("jahia-dump: could not retrieve struct tag 'yaml'")
		}
		if flag := cmd.Flag(key); flag == nil {
			// the flag is unknown to this command: e.g. `parse` has no `workers` flag but your YAML
			// file may well define it.
			continue
		}
		if cmd.Flags().Changed(key) {
			continue
		}

		switch field.Kind() {
		case reflect.Ptr:
			// YamlConfig only uses pointers for bools
			b, ok := field.Value().(*bool)
			if !ok {
				return fmt.Errorf("jahia-dump: found unrecognised field: %+v", field)
			}
			if b != nil {
				if err := cmd.Flags().Set(key, strconv.FormatBool(*b)); err != nil {
					return fmt.Errorf("jahia-dump: bad value for %s: %w", key, err)
				}
			}

		case reflect.Int:
			i, ok := field.Value().(int)
			if !ok {
				return fmt.Errorf("jahia-dump: found unrecognised field: %+v", field)
			}
			if i != 0 {
				if err := cmd.Flags().Set(key, strconv.Itoa(i)); err != nil {
					return fmt.Errorf("jahia-dump: bad value for %s: %w", key, err)
				}
			}

		case reflect.String:
			s, ok := field.Value().(string)
			if !ok {
				return fmt.Errorf("jahia-dump: found unrecognised field: %+v", field)
			}
			if s != "" {
				if err := cmd.Flags().Set(key, s); err != nil {
					return fmt.Errorf("jahia-dump: bad value for %s: %w", key, err)
				}
			}

		case reflect.Slice:
			ss, ok := field.Value().([]string)
			if !ok {
				return fmt.Errorf("jahia-dump: found unrecognised field: %+v", field)
			}
			for _, s := range ss {
				// yes, repeatedly calling Set() appends to the slice...
				if err := cmd.Flags().Set(key, s); err != nil {
					return fmt.Errorf("jahia-dump: bad value for %s: %w", key, err)
				}
			}

		default:
			return fmt.Errorf("jahia-dump: found unrecognised field: %+v", field)
		}
	}

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("jahia-dump: execution error: %w", err)
	}

	return nil
}
