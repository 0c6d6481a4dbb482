/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/toothbrush/jahia-dump/box"
	"github.com/toothbrush/jahia-dump/render"
	"gopkg.in/yaml.v3"
)

var parseUsage = strings.TrimSpace(`
Read a page XML from an unpacked Jahia export and print the WordPress shortcode each box turns
into.  Use it to eyeball a migration before running it for real.
`)

var parseCmd = &cobra.Command{
	Use:   "parse FILE.xml...",
	Short: "Convert the boxes of exported pages to shortcodes",
	Long:  parseUsage,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runParse(cmd.OutOrStdout(), args)
	},
}

var (
	ParseSite     string
	ParsePage     string
	ParseMarkdown bool
	ParseOutput   string
)

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&ParseSite, "site", "", "site the page belongs to, used in log messages")
	parseCmd.Flags().StringVar(&ParsePage, "page", "", "page name (default: file name without extension)")
	parseCmd.Flags().BoolVar(&ParseMarkdown, "markdown", false, "add a Markdown preview of each box")
	parseCmd.Flags().StringVarP(&ParseOutput, "output", "o", "yaml", "output format: yaml or table")
}

type parsedBox struct {
	Site       string `yaml:"site,omitempty"`
	Page       string `yaml:"page"`
	LegacyType string `yaml:"type"`
	Kind       string `yaml:"kind"`
	Title      string `yaml:"title,omitempty"`
	Content    string `yaml:"content"`
	Question   string `yaml:"question,omitempty"`
	Answer     string `yaml:"answer,omitempty"`
	Opened     string `yaml:"opened,omitempty"`
	Markdown   string `yaml:"markdown,omitempty"`
}

func runParse(w io.Writer, files []string) error {
	if ParseOutput != "yaml" && ParseOutput != "table" {
		return fmt.Errorf("parse: unknown --output %q, want yaml or table", ParseOutput)
	}
	if ParsePage != "" && len(files) > 1 {
		return fmt.Errorf("parse: --page only makes sense with a single file")
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	parser := box.NewParser(log)

	var converter *render.Converter
	if ParseMarkdown {
		converter = render.NewConverter(jahiaBase())
	}

	var boxes []parsedBox
	for _, file := range files {
		parsed, err := parseFile(parser, converter, file)
		if err != nil {
			return err
		}
		boxes = append(boxes, parsed...)
	}
	log.Debugf("Found %d boxes in %d files.", len(boxes), len(files))

	if ParseOutput == "table" {
		printBoxes(w, boxes)
		return nil
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(boxes); err != nil {
		return fmt.Errorf("parse: couldn't encode YAML: %w", err)
	}
	return enc.Close()
}

func parseFile(parser *box.Parser, converter *render.Converter, file string) ([]parsedBox, error) {
	filePath, err := homedir.Expand(file)
	if err != nil {
		return nil, fmt.Errorf("parse: couldn't expand homedir: %w", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(filePath); err != nil {
		return nil, fmt.Errorf("parse: couldn't read %s: %w", filePath, err)
	}

	page := ParsePage
	if page == "" {
		page = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}

	origin := box.Origin{Site: ParseSite, Page: page}
	var out []parsedBox
	for _, b := range parser.ParseDocument(origin, doc) {
		p := parsedBox{
			Site:       origin.Site,
			Page:       origin.Page,
			LegacyType: b.LegacyType(),
			Kind:       string(b.Kind()),
			Title:      b.Title(),
			Content:    b.Content(),
		}
		if faq, ok := b.FAQ(); ok {
			p.Question, p.Answer = faq.Question, faq.Answer
		}
		if toggle, ok := b.Toggle(); ok {
			p.Opened = toggle.Opened
		}
		if converter != nil {
			md, err := converter.Markdown(b.Content())
			if err != nil {
				return nil, fmt.Errorf("parse: %s: %w", filePath, err)
			}
			p.Markdown = md
		}
		out = append(out, p)
	}

	return out, nil
}

// jahiaBase is where relative links in box content point to, if we know the host at all.
func jahiaBase() *url.URL {
	if JahiaHost == "" {
		return nil
	}
	return &url.URL{Scheme: JahiaProtocol, Host: JahiaHost}
}

func printBoxes(w io.Writer, boxes []parsedBox) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Page", "Kind", "Title", "Content"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Content", WidthMax: 80},
	})
	for _, b := range boxes {
		t.AppendRow(table.Row{b.Page, b.Kind, b.Title, b.Content})
	}
	t.Render()
}
