package box

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

func textContent(n Node, multibox bool) string {
	if !multibox {
		return n.TagAttr("text", attrValue)
	}
	return strings.Join(n.TagAttrs("text", attrValue), "")
}

func infoscienceContent(n Node) string {
	return fmt.Sprintf("[epfl_infoscience url=%s]", n.TagAttr("url", attrValue))
}

func actuContent(log *zap.SugaredLogger, n Node) string {
	p := newsParams(log, n.TagAttr("url", attrValue))

	var sb strings.Builder
	fmt.Fprintf(&sb, `[epfl_news channel="%s" lang="%s" template="%s" `, p.channel, p.lang, p.template)
	if p.category != "" {
		fmt.Fprintf(&sb, `category="%s" `, p.category)
	}
	if len(p.themes) > 0 {
		fmt.Fprintf(&sb, `themes="%s" `, strings.Join(p.themes, ","))
	}
	sb.WriteString("/]")

	return sb.String()
}

func mementoContent(log *zap.SugaredLogger, n Node) string {
	p := mementoParams(log, n.TagAttr("url", attrValue))

	return fmt.Sprintf(`[epfl_memento memento="%s" lang="%s" template="%s" /]`, p.memento, p.lang, p.template)
}

func faqContent(faq FAQ) string {
	return fmt.Sprintf("<h2>%s</h2><p>%s</p>", faq.Question, faq.Answer)
}

func includeContent(n Node) string {
	return fmt.Sprintf("[include url=%s]", n.TagAttr("url", attrValue))
}

func xmlContent(n Node) string {
	return fmt.Sprintf("[xml xml=%s xslt=%s]", n.TagAttr("xml", attrValue), n.TagAttr("xslt", attrValue))
}

// Visible in the page, so nothing is lost silently.
func unknownContent(legacyType string) string {
	return fmt.Sprintf("[%s]", legacyType)
}
