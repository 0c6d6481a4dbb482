// Package box turns the content boxes of a Jahia export into the strings (mostly shortcodes) that
// end up in WordPress pages.
package box

import "strings"

// Origin says where a box was found.  It is carried along for logging and reporting only.
type Origin struct {
	Site string
	Page string
}

// FAQ holds the extra fields of a faq box.
type FAQ struct {
	Question string
	Answer   string
}

// Toggle holds the extra fields of a toggle box.
type Toggle struct {
	// Opened is the raw Jahia flag, usually "true" or "false".
	Opened  string
	Content string
}

// IsOpened interprets the raw flag.
func (t Toggle) IsOpened() bool {
	return strings.EqualFold(strings.TrimSpace(t.Opened), "true")
}

// Box is one migrated box.  It is built once by a Parser and never changes.
type Box struct {
	origin     Origin
	kind       Kind
	legacyType string
	title      string
	content    string

	faq    *FAQ
	toggle *Toggle
}

func (b Box) Origin() Origin     { return b.origin }
func (b Box) Kind() Kind         { return b.kind }
func (b Box) LegacyType() string { return b.legacyType }
func (b Box) Title() string      { return b.title }
func (b Box) Content() string    { return b.content }

// FAQ returns the question and answer of a faq box.
func (b Box) FAQ() (FAQ, bool) {
	if b.faq == nil {
		return FAQ{}, false
	}
	return *b.faq, true
}

// Toggle returns the fields of a toggle box.
func (b Box) Toggle() (Toggle, bool) {
	if b.toggle == nil {
		return Toggle{}, false
	}
	return *b.toggle, true
}

func (b Box) String() string {
	return string(b.kind) + " " + b.title
}
