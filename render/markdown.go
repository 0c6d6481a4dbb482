// Package render gives reviewers a Markdown view of migrated box content, which is easier to eyeball
// than the raw HTML.
package render

import (
	"fmt"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	mdplugin "github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
)

// Converter renders HTML fragments as GitHub flavoured Markdown.  Relative links and images are
// made absolute against the Jahia site they came from.
type Converter struct {
	base      *url.URL
	converter *md.Converter
}

// NewConverter returns a Converter for content exported from base.  base may be nil, in which case
// links are left as they are.
func NewConverter(base *url.URL) *Converter {
	domain := ""
	if base != nil {
		domain = base.Host
	}

	c := &Converter{base: base}

	// md.NewConverter only takes a hostname, not a base URI, so the scheme has to be patched in by
	// hand.  See https://github.com/JohannesKaufmann/html-to-markdown/issues/44
	opt := &md.Options{
		GetAbsoluteURL: func(selec *goquery.Selection, rawURL string, domain string) string {
			return c.absoluteURL(rawURL, domain)
		},
	}

	c.converter = md.NewConverter(domain, true, opt)
	// Github flavoured Markdown knows about tables 👍
	c.converter.Use(mdplugin.GitHubFlavored())

	return c
}

func (c *Converter) absoluteURL(rawURL string, domain string) string {
	if domain == "" || c.base == nil {
		return rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		// we can't do anything with this url because it is invalid
		return rawURL
	}

	if u.Scheme == "data" || u.Scheme == "mailto" {
		return rawURL
	}

	if u.Scheme == "" {
		u.Scheme = c.base.Scheme
	}
	if u.Host == "" {
		u.Host = domain
	}

	return u.String()
}

// Markdown converts one HTML fragment.
func (c *Converter) Markdown(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	markdown, err := c.converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("render: failed to convert to Markdown: %w", err)
	}

	return markdown, nil
}
