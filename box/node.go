package box

import "github.com/beevik/etree"

const (
	attrPrimaryType = "jcr:primaryType"
	attrValue       = "jahia:value"
)

// Node is what box parsing needs from an XML element.  Absent values are reported as "", never
// as errors.
type Node interface {
	// Attr returns an attribute of the element itself.
	Attr(name string) string
	// TagAttr returns attr of the first descendant called tag.
	TagAttr(tag string, attr string) string
	// TagAttrs returns attr of every descendant called tag, in document order.
	TagAttrs(tag string, attr string) []string
}

// XMLNode adapts an etree element to Node.  Tags are matched on their qualified name, prefix
// included.
type XMLNode struct {
	*etree.Element
}

var _ Node = XMLNode{}

func (n XMLNode) Attr(name string) string {
	return n.SelectAttrValue(name, "")
}

func (n XMLNode) TagAttr(tag string, attr string) string {
	found := descendants(n.Element, tag, 1)
	if len(found) == 0 {
		return ""
	}
	return found[0].SelectAttrValue(attr, "")
}

func (n XMLNode) TagAttrs(tag string, attr string) []string {
	values := []string{}
	for _, el := range descendants(n.Element, tag, -1) {
		values = append(values, el.SelectAttrValue(attr, ""))
	}
	return values
}

// descendants walks depth first, which is document order (etree's own // path is breadth first).
// A negative limit means no limit.
func descendants(root *etree.Element, tag string, limit int) []*etree.Element {
	found := []*etree.Element{}

	var walk func(el *etree.Element) bool
	walk = func(el *etree.Element) bool {
		for _, c := range el.ChildElements() {
			if c.FullTag() == tag {
				found = append(found, c)
				if limit >= 0 && len(found) >= limit {
					return false
				}
			}
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(root)

	return found
}
