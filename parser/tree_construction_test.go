package parser

import (
	"strings"
	"testing"

	"github.com/dgnorton/htmlcore/parser/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDocument(t *testing.T, in string) *spec.Node {
	t.Helper()
	p := NewParser(strings.NewReader(in))
	doc, err := p.Start()
	require.NoError(t, err)
	return doc
}

func TestTreeConstructorImpliedHTMLHeadBody(t *testing.T) {
	doc := parseDocument(t, "<p>Hi</p>")

	expected := "#document\n" +
		"  <html>\n" +
		"    <head>\n" +
		"    <body>\n" +
		"      <p>\n" +
		"        \"Hi\""

	assert.Equal(t, expected, doc.String())
	assert.Equal(t, spec.Quirks, doc.Document.QuirksMode)
}

func TestTreeConstructorDoctypeIsNoQuirks(t *testing.T) {
	doc := parseDocument(t, "<!DOCTYPE html><html><head></head><body></body></html>")
	assert.Equal(t, spec.NoQuirks, doc.Document.QuirksMode)
}

func TestTreeConstructorMisnestedFormattingElements(t *testing.T) {
	// Classic adoption agency case: <b>1<i>2</b>3</i> reparents the trailing
	// "3" under a new <i> sibling rather than nesting it inside <b>.
	doc := parseDocument(t, "<!DOCTYPE html><b>1<i>2</b>3</i>")

	body, _ := findDescendant(doc, "body")
	require.NotNil(t, body)

	b := body.FirstChild
	require.NotNil(t, b)
	assert.Equal(t, "b", b.NodeName)
	assert.Equal(t, "1", b.FirstChild.Text.Data)
	assert.Equal(t, "i", b.LastChild.NodeName)
	assert.Equal(t, "2", b.LastChild.InnerText())

	secondI := b.NextSibling
	require.NotNil(t, secondI)
	assert.Equal(t, "i", secondI.NodeName)
	assert.Equal(t, "3", secondI.InnerText())
}

func TestTreeConstructorTableFosterParenting(t *testing.T) {
	doc := parseDocument(t, "<!DOCTYPE html><table>x<tr><td>y</td></tr></table>")

	body, _ := findDescendant(doc, "body")
	require.NotNil(t, body)

	// The "x" character token is foster-parented out of the table, landing
	// as a preceding sibling text node rather than inside <table>.
	assert.Equal(t, "x", body.FirstChild.Text.Data)
	table, _ := findDescendant(doc, "table")
	require.NotNil(t, table)
	cell, _ := findDescendant(doc, "td")
	require.NotNil(t, cell)
	assert.Equal(t, "y", cell.InnerText())
}

func TestParseHTMLFragment(t *testing.T) {
	context := spec.NewElement(nil, "div", spec.Htmlns, nil)
	nodes := ParseHTMLFragment(context, "<span>x</span>", spec.NoQuirks, true)

	require.Len(t, nodes, 1)
	assert.Equal(t, "span", nodes[0].NodeName)
	assert.Equal(t, "x", nodes[0].InnerText())
}

func TestParseHTMLFragmentSelectContext(t *testing.T) {
	context := spec.NewElement(nil, "select", spec.Htmlns, nil)
	nodes := ParseHTMLFragment(context, "<option>a</option><option>b</option>", spec.NoQuirks, true)

	require.Len(t, nodes, 2)
	assert.Equal(t, "option", nodes[0].NodeName)
	assert.Equal(t, "option", nodes[1].NodeName)
}

func TestMaxOpenElementDepthCapsNesting(t *testing.T) {
	var in strings.Builder
	for i := 0; i < 20; i++ {
		in.WriteString("<div>")
	}
	p := NewParserWithConfig(strings.NewReader(in.String()), Config{
		ScriptingEnabled:    true,
		MaxOpenElementDepth: 5,
	})
	_, err := p.Start()
	require.NoError(t, err)

	assert.LessOrEqual(t, len(p.TreeConstructor.stackOfOpenElements.NodeList), 5)
	assert.NotEmpty(t, p.TreeConstructor.Diagnostics())
}

func findDescendant(n *spec.Node, name string) (*spec.Node, bool) {
	if n.NodeName == name {
		return n, true
	}
	for _, child := range n.ChildNodes {
		if found, ok := findDescendant(child, name); ok {
			return found, true
		}
	}
	return nil, false
}
