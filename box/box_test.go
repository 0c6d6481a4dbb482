package box

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var origin = Origin{Site: "dcsl", Page: "home"}

func node(t *testing.T, xml string) XMLNode {
	t.Helper()

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	require.NotNil(t, doc.Root())
	return XMLNode{doc.Root()}
}

func observedParser() (*Parser, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewParser(zap.New(core).Sugar()), logs
}

func urlBox(primaryType string, url string) string {
	return `<box xmlns:jcr="http://www.jcp.org/jcr/1.0" xmlns:jahia="http://www.jahia.org/" jcr:primaryType="` + primaryType + `">` +
		`<boxTitle jahia:value="News"/>` +
		`<url jahia:value="` + strings.ReplaceAll(url, "&", "&amp;") + `"/>` +
		`</box>`
}

func TestParse_Text(t *testing.T) {
	p := NewParser(nil)
	n := node(t, `<box xmlns:jcr="x" xmlns:jahia="y" jcr:primaryType="epfl:textBox">
		<boxTitle jahia:value="Welcome"/>
		<text jahia:value="Hello"/>
	</box>`)

	b := p.Parse(origin, n, false)
	assert.Equal(t, KindText, b.Kind())
	assert.Equal(t, "Welcome", b.Title())
	assert.Equal(t, "Hello", b.Content())
	assert.Equal(t, "text Welcome", b.String())
	assert.Equal(t, origin, b.Origin())
}

func TestParse_TextMultibox(t *testing.T) {
	p := NewParser(nil)
	n := node(t, `<box xmlns:jcr="x" xmlns:jahia="y" jcr:primaryType="epfl:textBox">
		<text jahia:value="A"/>
		<text jahia:value="B"/>
	</box>`)

	assert.True(t, IsMultibox(n))
	assert.Equal(t, "AB", p.Parse(origin, n, true).Content())
	// without the flag only the first fragment is used
	assert.Equal(t, "A", p.Parse(origin, n, false).Content())
}

func TestParse_TextMultiboxDocumentOrder(t *testing.T) {
	p := NewParser(nil)
	n := node(t, `<box xmlns:jcr="x" xmlns:jahia="y" jcr:primaryType="epfl:coloredTextBox">
		<list><text jahia:value="&lt;p&gt;one"/></list>
		<text jahia:value=" two"/>
		<list><text jahia:value=" three&lt;/p&gt;"/></list>
	</box>`)

	b := p.Parse(origin, n, true)
	assert.Equal(t, KindColoredText, b.Kind())
	assert.Equal(t, "<p>one two three</p>", b.Content())
}

func TestParse_NoTitle(t *testing.T) {
	b := NewParser(nil).Parse(origin, node(t, `<box xmlns:jcr="x" jcr:primaryType="epfl:textBox"/>`), false)
	assert.Equal(t, "", b.Title())
	assert.Equal(t, "", b.Content())
}

func TestParse_Actu(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			"category, no themes",
			"https://actu.epfl.ch/webservice?channel=42&lang=en&template=full&category=news",
			`[epfl_news channel="42" lang="en" template="full" category="news" /]`,
		},
		{
			"bare",
			"https://actu.epfl.ch/webservice?channel=42&lang=fr&template=short",
			`[epfl_news channel="42" lang="fr" template="short" /]`,
		},
		{
			"themes",
			"https://actu.epfl.ch/webservice?channel=42&lang=en&template=full&themes=1&themes=4",
			`[epfl_news channel="42" lang="en" template="full" themes="1,4" /]`,
		},
		{
			"category before themes",
			"https://actu.epfl.ch/webservice?themes=2&category=3&channel=42&lang=en&template=full",
			`[epfl_news channel="42" lang="en" template="full" category="3" themes="2" /]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, logs := observedParser()
			b := p.Parse(origin, node(t, urlBox("epfl:actuBox", tt.url)), false)
			assert.Equal(t, KindActu, b.Kind())
			assert.Equal(t, tt.want, b.Content())
			assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
		})
	}
}

func TestParse_ActuMissingLang(t *testing.T) {
	p, logs := observedParser()
	b := p.Parse(origin, node(t, urlBox("epfl:actuBox", "https://actu.epfl.ch/webservice?channel=42&template=full")), false)

	assert.Equal(t, `[epfl_news channel="42" lang="" template="full" /]`, b.Content())
	assert.Contains(t, b.Content(), `lang="" `)

	errs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, errs, 1)
	assert.Equal(t, "News shortcode - lang is missing", errs[0].Message)
	assert.Equal(t, "dcsl", errs[0].ContextMap()["site"])
}

func TestParse_ActuBlankAndBrokenURL(t *testing.T) {
	p, logs := observedParser()

	// blank values count as missing
	b := p.Parse(origin, node(t, urlBox("epfl:actuBox", "https://actu.epfl.ch/webservice?channel=&lang=en&template=full")), false)
	assert.Equal(t, `[epfl_news channel="" lang="en" template="full" /]`, b.Content())
	assert.Equal(t, 1, logs.FilterMessage("News shortcode - channel ID is missing").Len())

	// no URL at all: every required field is reported
	b = p.Parse(origin, node(t, `<box xmlns:jcr="x" jcr:primaryType="epfl:actuBox"/>`), false)
	assert.Equal(t, `[epfl_news channel="" lang="" template="" /]`, b.Content())
	assert.Equal(t, 4, logs.FilterLevelExact(zapcore.ErrorLevel).Len())

	// junk before the query string doesn't cost the parameters
	for _, raw := range []string{
		" https://actu.epfl.ch/webservice?channel=42&lang=en&template=full",
		"https://actu.epfl.ch/web service%?channel=42&lang=en&template=full#top",
	} {
		b = p.Parse(origin, node(t, urlBox("epfl:actuBox", raw)), false)
		assert.Equal(t, `[epfl_news channel="42" lang="en" template="full" /]`, b.Content(), raw)
	}
	assert.Equal(t, 4, logs.FilterLevelExact(zapcore.ErrorLevel).Len())

	// a bad escape in the query only loses that pair
	b = p.Parse(origin, node(t, urlBox("epfl:mementoBox", "https://memento.epfl.ch/webservice?memento=%zz&lang=en&template=3")), false)
	assert.Equal(t, `[epfl_memento memento="" lang="en" template="3" /]`, b.Content())
	assert.Equal(t, 1, logs.FilterMessage("Memento shortcode - event ID is missing").Len())
	assert.Equal(t, 1, logs.FilterMessage("malformed query in legacy webservice URL").Len())
}

func TestParse_ActuSingularTheme(t *testing.T) {
	p, logs := observedParser()
	b := p.Parse(origin, node(t, urlBox("epfl:actuBox", "https://actu.epfl.ch/webservice?channel=1&lang=en&template=full&theme=5")), false)

	assert.Equal(t, `[epfl_news channel="1" lang="en" template="full" /]`, b.Content())
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestParse_Memento(t *testing.T) {
	p, logs := observedParser()

	b := p.Parse(origin, node(t, urlBox("epfl:mementoBox", "https://memento.epfl.ch/webservice?memento=academic-calendar&lang=en&template=3")), false)
	assert.Equal(t, KindMemento, b.Kind())
	assert.Equal(t, `[epfl_memento memento="academic-calendar" lang="en" template="3" /]`, b.Content())
	assert.Zero(t, logs.Len())

	b = p.Parse(origin, node(t, urlBox("epfl:mementoBox", "https://memento.epfl.ch/webservice?lang=en&template=3")), false)
	assert.Equal(t, `[epfl_memento memento="" lang="en" template="3" /]`, b.Content())
	assert.Equal(t, 1, logs.FilterMessage("Memento shortcode - event ID is missing").Len())
}

func TestParse_URLBoxes(t *testing.T) {
	p := NewParser(nil)

	b := p.Parse(origin, node(t, urlBox("epfl:infoscienceBox", "https://infoscience.epfl.ch/search?p=dcsl")), false)
	assert.Equal(t, KindInfoscience, b.Kind())
	assert.Equal(t, "[epfl_infoscience url=https://infoscience.epfl.ch/search?p=dcsl]", b.Content())

	b = p.Parse(origin, node(t, urlBox("epfl:htmlBox", "https://example.com/snippet.html")), false)
	assert.Equal(t, KindInclude, b.Kind())
	assert.Equal(t, "[include url=https://example.com/snippet.html]", b.Content())
}

func TestParse_FAQ(t *testing.T) {
	b := NewParser(nil).Parse(origin, node(t, `<box xmlns:jcr="x" xmlns:jahia="y" jcr:primaryType="epfl:faqContainer">
		<question jahia:value="Why?"/>
		<answer jahia:value="Because."/>
	</box>`), false)

	assert.Equal(t, KindFAQ, b.Kind())
	assert.Equal(t, "<h2>Why?</h2><p>Because.</p>", b.Content())

	faq, ok := b.FAQ()
	require.True(t, ok)
	assert.Equal(t, FAQ{Question: "Why?", Answer: "Because."}, faq)

	_, ok = b.Toggle()
	assert.False(t, ok)
}

func TestParse_Toggle(t *testing.T) {
	b := NewParser(nil).Parse(origin, node(t, `<box xmlns:jcr="x" xmlns:jahia="y" jcr:primaryType="epfl:toggleBox">
		<opened jahia:value="true"/>
		<content jahia:value="&lt;b&gt;raw &amp; unescaped&lt;/b&gt;"/>
	</box>`), false)

	assert.Equal(t, KindToggle, b.Kind())
	assert.Equal(t, "<b>raw & unescaped</b>", b.Content())

	toggle, ok := b.Toggle()
	require.True(t, ok)
	assert.Equal(t, "true", toggle.Opened)
	assert.True(t, toggle.IsOpened())
	assert.Equal(t, b.Content(), toggle.Content)

	_, ok = b.FAQ()
	assert.False(t, ok)
}

func TestParse_ContactAndXML(t *testing.T) {
	p := NewParser(nil)

	b := p.Parse(origin, node(t, `<box xmlns:jcr="x" xmlns:jahia="y" jcr:primaryType="epfl:contactBox">
		<text jahia:value="&lt;p&gt;INN 123&lt;/p&gt;"/>
	</box>`), false)
	assert.Equal(t, KindContact, b.Kind())
	assert.Equal(t, "<p>INN 123</p>", b.Content())

	b = p.Parse(origin, node(t, `<box xmlns:jcr="x" xmlns:jahia="y" jcr:primaryType="epfl:xmlBox">
		<xml jahia:value="https://example.com/feed.xml"/>
		<xslt jahia:value="https://example.com/feed.xslt"/>
	</box>`), false)
	assert.Equal(t, KindXML, b.Kind())
	assert.Equal(t, "[xml xml=https://example.com/feed.xml xslt=https://example.com/feed.xslt]", b.Content())
}

func TestParse_Unknown(t *testing.T) {
	b := NewParser(nil).Parse(origin, node(t, `<box xmlns:jcr="x" jcr:primaryType="epfl:mysteryBox"/>`), false)

	assert.Equal(t, Kind("epfl:mysteryBox"), b.Kind())
	assert.False(t, b.Kind().Known())
	assert.Equal(t, "epfl:mysteryBox", b.LegacyType())
	assert.Equal(t, "[epfl:mysteryBox]", b.Content())
}

func TestParse_UnmappedTypeNamedLikeAKind(t *testing.T) {
	// not in the table, but spelled like a kind: it is handled as that kind
	b := NewParser(nil).Parse(origin, node(t, `<box xmlns:jcr="x" xmlns:jahia="y" jcr:primaryType="faq">
		<question jahia:value="Q"/><answer jahia:value="A"/>
	</box>`), false)

	assert.Equal(t, KindFAQ, b.Kind())
	assert.Equal(t, "<h2>Q</h2><p>A</p>", b.Content())
}

func TestClassify(t *testing.T) {
	k, ok := Classify("epfl:htmlBox")
	assert.True(t, ok)
	assert.Equal(t, KindInclude, k)

	k, ok = Classify("epfl:mysteryBox")
	assert.False(t, ok)
	assert.Equal(t, Kind("epfl:mysteryBox"), k)

	types := LegacyTypes()
	assert.Len(t, types, 10)
	assert.IsIncreasing(t, types)
	for _, lt := range types {
		k, ok := Classify(lt)
		assert.True(t, ok)
		assert.True(t, k.Known(), lt)
	}
}
