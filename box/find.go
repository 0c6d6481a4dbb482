package box

import (
	"regexp"

	"github.com/beevik/etree"
)

var boxTypePattern = regexp.MustCompile(`^epfl:\w+(Box|Container)$`)

// FindBoxes returns the box elements of an exported page, in document order.  An element is a box
// when its primary type is in the table, or looks like one (epfl:*Box, epfl:*Container) so that
// unknown boxes still get flagged.  Boxes nested in a box belong to it and aren't returned.
func FindBoxes(doc *etree.Document) []XMLNode {
	boxes := []XMLNode{}

	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, c := range el.ChildElements() {
			if isBox(c) {
				boxes = append(boxes, XMLNode{c})
				continue
			}
			walk(c)
		}
	}
	walk(&doc.Element)

	return boxes
}

func isBox(el *etree.Element) bool {
	t := el.SelectAttrValue(attrPrimaryType, "")
	if t == "" {
		return false
	}
	if _, ok := legacyKinds[t]; ok {
		return true
	}
	return boxTypePattern.MatchString(t)
}

// IsMultibox tells whether a box's text was split over several text elements.
func IsMultibox(n Node) bool {
	return len(n.TagAttrs("text", attrValue)) > 1
}

// ParseDocument finds and parses every box of an exported page.
func (p *Parser) ParseDocument(origin Origin, doc *etree.Document) []Box {
	boxes := []Box{}
	for _, n := range FindBoxes(doc) {
		boxes = append(boxes, p.Parse(origin, n, IsMultibox(n)))
	}
	return boxes
}
