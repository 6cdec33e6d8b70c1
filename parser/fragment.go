package parser

import (
	"strings"

	"github.com/dgnorton/htmlcore/parser/spec"
)

// SerializeHTMLFragment renders the children of a fragment parsing result as
// a debug tree, the same indented format spec.Node.String uses for whole
// documents.
func SerializeHTMLFragment(fragment []*spec.Node) string {
	var b strings.Builder
	for _, child := range fragment {
		b.WriteString(child.String())
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// ParseHTMLFragment implements the HTML fragment parsing algorithm: parse
// input as if it were the contents of context, returning the resulting list
// of top-level nodes rather than a whole document.
// https://html.spec.whatwg.org/multipage/parsing.html#html-fragment-parsing-algorithm
func ParseHTMLFragment(context *spec.Node, input string, quirks spec.QuirksMode, scriptingEnabled bool) []*spec.Node {
	tc := NewHTMLTreeConstructor()
	tc.scriptingEnabled = scriptingEnabled
	tc.quirksMode = quirks
	tc.HTMLDocument.Document.QuirksMode = quirks
	tc.context = context
	tc.createdBy = htmlFragmentParsingAlgorithm

	startState := dataState
	if context != nil {
		switch context.NodeName {
		case "title", "textarea":
			startState = rcDataState
		case "style", "xmp", "iframe", "noembed", "noframes":
			startState = rawTextState
		case "script":
			startState = scriptDataState
		case "noscript":
			if scriptingEnabled {
				startState = rawTextState
			}
		case "plaintext":
			startState = plaintextState
		}
	}

	root := spec.NewElement(tc.HTMLDocument, "html", spec.Htmlns, nil)
	tc.HTMLDocument.AppendChild(root)
	tc.stackOfOpenElements.Push(root)

	if context != nil && context.NodeName == "template" {
		tc.stackOfTemplateInsertionModes = append(tc.stackOfTemplateInsertionModes, inTemplate)
	}

	if context != nil {
		for n := context; n != nil; n = n.ParentNode {
			if n.NodeName == "form" {
				tc.formElementPointer = n
				break
			}
		}
	}

	tc.insertionMode = tc.resetInsertionModeWithContext()

	p := NewParser(strings.NewReader(input))
	p.TreeConstructor = tc
	p.Tokenizer.diagnose = tc.logError
	if _, err := p.startAt(&startState); err != nil {
		return nil
	}

	return root.ChildNodes
}
