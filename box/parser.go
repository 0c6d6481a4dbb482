package box

import "go.uber.org/zap"

// Parser builds Boxes.  It keeps no state between boxes, so one Parser can serve many goroutines.
type Parser struct {
	Logger *zap.SugaredLogger
}

// NewParser returns a Parser logging to l.  A nil l discards the logs.
func NewParser(l *zap.SugaredLogger) *Parser {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	return &Parser{Logger: l}
}

// Parse classifies n and computes its content.  multibox is set when one text box was stored as
// several sibling text elements, which must be glued back together.
func (p *Parser) Parse(origin Origin, n Node, multibox bool) Box {
	legacyType := n.Attr(attrPrimaryType)
	kind, _ := Classify(legacyType)

	b := Box{
		origin:     origin,
		kind:       kind,
		legacyType: legacyType,
		title:      n.TagAttr("boxTitle", attrValue),
	}

	log := p.Logger.With("site", origin.Site, "page", origin.Page, "box", string(kind))

	switch kind {
	case KindText, KindColoredText:
		b.content = textContent(n, multibox)
	case KindInfoscience:
		b.content = infoscienceContent(n)
	case KindActu:
		b.content = actuContent(log, n)
	case KindMemento:
		b.content = mementoContent(log, n)
	case KindFAQ:
		faq := FAQ{
			Question: n.TagAttr("question", attrValue),
			Answer:   n.TagAttr("answer", attrValue),
		}
		b.faq = &faq
		b.content = faqContent(faq)
	case KindToggle:
		toggle := Toggle{
			Opened:  n.TagAttr("opened", attrValue),
			Content: n.TagAttr("content", attrValue),
		}
		b.toggle = &toggle
		b.content = toggle.Content
	case KindInclude:
		b.content = includeContent(n)
	case KindContact:
		b.content = n.TagAttr("text", attrValue)
	case KindXML:
		b.content = xmlContent(n)
	default:
		log.Debugf("unknown box type %s", legacyType)
		b.content = unknownContent(legacyType)
	}

	return b
}
