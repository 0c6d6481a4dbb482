package box

import (
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// The old news and memento boxes stored a webservice URL; its query string tells us what the new
// shortcode should show.

type news struct {
	channel, lang, template, category string
	themes                            []string
}

func newsParams(log *zap.SugaredLogger, rawURL string) news {
	q := legacyQuery(log, rawURL)

	n := news{
		channel:  required(log, q, "channel", "News shortcode - channel ID is missing"),
		lang:     required(log, q, "lang", "News shortcode - lang is missing"),
		template: required(log, q, "template", "News shortcode - template is missing"),
		category: first(q, "category"),
		themes:   nonBlank(q["themes"]),
	}

	if len(n.themes) == 0 && len(nonBlank(q["theme"])) > 0 {
		log.Warnw("News shortcode - found 'theme' parameter, only 'themes' is migrated", "url", rawURL)
	}

	return n
}

type memento struct {
	memento, lang, template string
}

func mementoParams(log *zap.SugaredLogger, rawURL string) memento {
	q := legacyQuery(log, rawURL)

	return memento{
		memento:  required(log, q, "memento", "Memento shortcode - event ID is missing"),
		lang:     required(log, q, "lang", "Memento shortcode - lang is missing"),
		template: required(log, q, "template", "Memento shortcode - template is missing"),
	}
}

// Only the query string matters, so the rest of the URL is never parsed: a stray space or a bad
// escape in the path must not cost us the parameters.
func legacyQuery(log *zap.SugaredLogger, rawURL string) url.Values {
	_, rawQuery, _ := strings.Cut(rawURL, "?")
	rawQuery, _, _ = strings.Cut(rawQuery, "#")

	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		// ParseQuery keeps what it could parse
		log.Warnw("malformed query in legacy webservice URL", "url", rawURL, "error", err)
	}
	return q
}

// Missing or blank: logged, then rendered as "" so the migration carries on.
func required(log *zap.SugaredLogger, q url.Values, key string, msg string) string {
	v := first(q, key)
	if v == "" {
		log.Error(msg)
	}
	return v
}

func first(q url.Values, key string) string {
	values := nonBlank(q[key])
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func nonBlank(values []string) []string {
	kept := []string{}
	for _, v := range values {
		if v != "" {
			kept = append(kept, v)
		}
	}
	return kept
}
