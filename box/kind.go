package box

import (
	"sort"

	"golang.org/x/exp/maps"
)

// Kind is the WordPress-side box type.  Legacy types we don't know become a Kind of their own,
// spelled exactly like the legacy type.
type Kind string

const (
	KindText        Kind = "text"
	KindColoredText Kind = "coloredText"
	KindInfoscience Kind = "infoscience"
	KindActu        Kind = "actu"
	KindMemento     Kind = "memento"
	KindFAQ         Kind = "faq"
	KindToggle      Kind = "toggle"
	KindInclude     Kind = "include"
	KindContact     Kind = "contact"
	KindXML         Kind = "xml"
)

// Jahia primary types we know how to migrate.
var legacyKinds = map[string]Kind{
	"epfl:textBox":        KindText,
	"epfl:coloredTextBox": KindColoredText,
	"epfl:infoscienceBox": KindInfoscience,
	"epfl:actuBox":        KindActu,
	"epfl:mementoBox":     KindMemento,
	"epfl:faqContainer":   KindFAQ,
	"epfl:toggleBox":      KindToggle,
	"epfl:htmlBox":        KindInclude,
	"epfl:contactBox":     KindContact,
	"epfl:xmlBox":         KindXML,
}

// Classify maps a Jahia primary type to its Kind.  ok is false when the type isn't in the table, in
// which case the legacy type itself is returned as the Kind.
func Classify(legacyType string) (kind Kind, ok bool) {
	if k, ok := legacyKinds[legacyType]; ok {
		return k, true
	}
	return Kind(legacyType), false
}

// Known reports whether k is one of the kinds we have a transformation for.
func (k Kind) Known() bool {
	switch k {
	case KindText, KindColoredText, KindInfoscience, KindActu, KindMemento,
		KindFAQ, KindToggle, KindInclude, KindContact, KindXML:
		return true
	}
	return false
}

// LegacyTypes lists the Jahia primary types in the table, sorted.
func LegacyTypes() []string {
	types := maps.Keys(legacyKinds)
	sort.Strings(types)
	return types
}
