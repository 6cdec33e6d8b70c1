package parser

import (
	"strings"

	"github.com/dgnorton/htmlcore/parser/spec"
)

// This file implements the per-insertion-mode token handling rules.
// https://html.spec.whatwg.org/multipage/parsing.html#the-rules-for-parsing-tokens-in-html-content

func (c *HTMLTreeConstructor) reprocess(mode insertionMode, t *Token) {
	c.insertionMode = mode
	c.processTokenByMode(mode, t)
}

func (c *HTMLTreeConstructor) initialModeHandler(t *Token) {
	switch t.TokenType {
	case characterToken:
		if isWhitespace([]rune(t.Data)[0]) {
			return
		}
	case commentToken:
		c.insertCommentAt(t, c.HTMLDocument)
		return
	case docTypeToken:
		publicID, systemID := t.PublicIdentifier, t.SystemIdentifier
		if publicID == missing {
			publicID = ""
		}
		if systemID == missing {
			systemID = ""
		}
		dt := spec.NewDocTypeNode(t.TagName, publicID, systemID)
		dt.OwnerDocument = c.HTMLDocument
		c.HTMLDocument.Document.Doctype = dt
		c.HTMLDocument.AppendChild(dt)

		if isForceQuirks(t) {
			c.quirksMode = spec.Quirks
		} else if isLimitedQuirks(t) {
			c.quirksMode = spec.LimitedQuirks
		}
		c.HTMLDocument.Document.QuirksMode = c.quirksMode
		c.insertionMode = beforeHTML
		return
	}
	c.quirksMode = spec.Quirks
	c.HTMLDocument.Document.QuirksMode = c.quirksMode
	c.reprocess(beforeHTML, t)
}

func (c *HTMLTreeConstructor) beforeHTMLModeHandler(t *Token) {
	switch t.TokenType {
	case docTypeToken:
		c.logError(unexpectedDoctype)
		return
	case commentToken:
		c.insertCommentAt(t, c.HTMLDocument)
		return
	case characterToken:
		if isWhitespace([]rune(t.Data)[0]) {
			return
		}
	case startTagToken:
		if t.TagName == "html" {
			el := createElementForToken(c.HTMLDocument, t, spec.Htmlns)
			c.HTMLDocument.AppendChild(el)
			c.stackOfOpenElements.Push(el)
			c.insertionMode = beforeHead
			return
		}
	case endTagToken:
		if !isOneOf(t.TagName, "head", "body", "html", "br") {
			c.logError(unexpectedEndTag)
			return
		}
	}

	el := spec.NewElement(c.HTMLDocument, "html", spec.Htmlns, nil)
	c.HTMLDocument.AppendChild(el)
	c.stackOfOpenElements.Push(el)
	c.reprocess(beforeHead, t)
}

func (c *HTMLTreeConstructor) beforeHeadModeHandler(t *Token) {
	switch t.TokenType {
	case characterToken:
		if isWhitespace([]rune(t.Data)[0]) {
			return
		}
	case commentToken:
		c.insertComment(t)
		return
	case docTypeToken:
		c.logError(unexpectedDoctype)
		return
	case startTagToken:
		switch t.TagName {
		case "html":
			c.inBodyModeHandler(t)
			return
		case "head":
			head := c.insertHTMLElement(t)
			c.headElementPointer = head
			c.insertionMode = inHead
			return
		}
	case endTagToken:
		if !isOneOf(t.TagName, "head", "body", "html", "br") {
			c.logError(unexpectedEndTag)
			return
		}
	}

	headTok := &Token{TokenType: startTagToken, TagName: "head"}
	head := c.insertHTMLElement(headTok)
	c.headElementPointer = head
	c.reprocess(inHead, t)
}

func (c *HTMLTreeConstructor) inHeadModeHandler(t *Token) {
	switch t.TokenType {
	case characterToken:
		if isWhitespace([]rune(t.Data)[0]) {
			c.insertCharacter(t.Data)
			return
		}
	case commentToken:
		c.insertComment(t)
		return
	case docTypeToken:
		c.logError(unexpectedDoctype)
		return
	case startTagToken:
		switch t.TagName {
		case "html":
			c.inBodyModeHandler(t)
			return
		case "base", "basefont", "bgsound", "link":
			c.insertHTMLElement(t)
			c.stackOfOpenElements.Pop()
			return
		case "meta":
			c.insertHTMLElement(t)
			c.stackOfOpenElements.Pop()
			return
		case "title":
			c.genericRCDataElementParsingAlgorithm(t)
			return
		case "noscript":
			if c.scriptingEnabled {
				c.genericRawTextElementParsingAlgorithm(t)
				return
			}
			c.insertHTMLElement(t)
			c.insertionMode = inHeadNoscript
			return
		case "noframes", "style":
			c.genericRawTextElementParsingAlgorithm(t)
			return
		case "script":
			target, before := c.appropriatePlaceForInsertion(nil)
			el := createElementForToken(c.HTMLDocument, t, spec.Htmlns)
			insertAt(target, before, el)
			c.stackOfOpenElements.Push(el)
			st := scriptDataState
			c.nextTokenizerState = &st
			return
		case "template":
			c.insertHTMLElement(t)
			c.insertMarker()
			c.framesetOK = false
			c.insertionMode = inTemplate
			c.stackOfTemplateInsertionModes = append(c.stackOfTemplateInsertionModes, inTemplate)
			return
		case "head":
			c.logError(unexpectedStartTag)
			return
		}
	case endTagToken:
		switch t.TagName {
		case "head":
			c.stackOfOpenElements.Pop()
			c.insertionMode = afterHead
			return
		case "body", "html", "br":
		case "template":
			if !c.stackContains("template") {
				c.logError(unexpectedEndTag)
				return
			}
			c.generateAllImpliedEndTagsThoroughly()
			c.popUntil("template")
			c.clearActiveFormattingElementsToLastMarker()
			c.stackOfTemplateInsertionModes = c.stackOfTemplateInsertionModes[:len(c.stackOfTemplateInsertionModes)-1]
			c.insertionMode = c.resetInsertionModeWithContext()
			return
		default:
			c.logError(unexpectedEndTag)
			return
		}
	}

	c.stackOfOpenElements.Pop()
	c.reprocess(afterHead, t)
}

func (c *HTMLTreeConstructor) inHeadNoscriptModeHandler(t *Token) {
	switch t.TokenType {
	case docTypeToken:
		c.logError(unexpectedDoctype)
		return
	case startTagToken:
		switch t.TagName {
		case "html":
			c.inBodyModeHandler(t)
			return
		case "basefont", "bgsound", "link", "meta", "noframes", "style":
			c.inHeadModeHandler(t)
			return
		}
	case endTagToken:
		if t.TagName == "noscript" {
			c.stackOfOpenElements.Pop()
			c.insertionMode = inHead
			return
		}
		if t.TagName != "br" {
			c.logError(unexpectedEndTag)
			return
		}
	case commentToken:
		c.inHeadModeHandler(t)
		return
	case characterToken:
		if isWhitespace([]rune(t.Data)[0]) {
			c.inHeadModeHandler(t)
			return
		}
	}

	c.logError(unexpectedStartTag)
	c.stackOfOpenElements.Pop()
	c.reprocess(inHead, t)
}

func (c *HTMLTreeConstructor) afterHeadModeHandler(t *Token) {
	switch t.TokenType {
	case characterToken:
		if isWhitespace([]rune(t.Data)[0]) {
			c.insertCharacter(t.Data)
			return
		}
	case commentToken:
		c.insertComment(t)
		return
	case docTypeToken:
		c.logError(unexpectedDoctype)
		return
	case startTagToken:
		switch t.TagName {
		case "html":
			c.inBodyModeHandler(t)
			return
		case "body":
			c.insertHTMLElement(t)
			c.framesetOK = false
			c.insertionMode = inBody
			return
		case "frameset":
			c.insertHTMLElement(t)
			c.insertionMode = inFrameset
			return
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
			c.logError(unexpectedStartTag)
			c.stackOfOpenElements.Push(c.headElementPointer)
			c.inHeadModeHandler(t)
			c.stackOfOpenElements.NodeList.Remove(c.stackOfOpenElements.Contains(c.headElementPointer))
			return
		case "head":
			c.logError(unexpectedStartTag)
			return
		}
	case endTagToken:
		switch t.TagName {
		case "template":
			c.inHeadModeHandler(t)
			return
		case "body", "html", "br":
		default:
			c.logError(unexpectedEndTag)
			return
		}
	}

	bodyTok := &Token{TokenType: startTagToken, TagName: "body"}
	c.insertHTMLElement(bodyTok)
	c.reprocess(inBody, t)
}

func (c *HTMLTreeConstructor) closePImplied() {
	if containsElementInButtonScope(c.stackOfOpenElements.NodeList, "p") {
		c.generateImpliedEndTags("p")
		c.popUntil("p")
	}
}

var headingTags = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// inBodyModeHandler implements the rules for the "in body" insertion mode,
// the largest and most-exercised of the tree construction rules.
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inbody
func (c *HTMLTreeConstructor) inBodyModeHandler(t *Token) {
	switch t.TokenType {
	case characterToken:
		if t.Data == "\x00" {
			c.logError(unexpectedCharacter)
			return
		}
		c.reconstructActiveFormattingElements()
		c.insertCharacter(t.Data)
		if !isWhitespace([]rune(t.Data)[0]) {
			c.framesetOK = false
		}
		return
	case commentToken:
		c.insertComment(t)
		return
	case docTypeToken:
		c.logError(unexpectedDoctype)
		return
	case endOfFileToken:
		if len(c.stackOfTemplateInsertionModes) > 0 {
			c.inTemplateModeHandler(t)
			return
		}
		c.stopParsing()
		return
	case startTagToken:
		c.inBodyStartTag(t)
		return
	case endTagToken:
		c.inBodyEndTag(t)
		return
	}
}

func (c *HTMLTreeConstructor) inBodyStartTag(t *Token) {
	switch t.TagName {
	case "html":
		c.logError(unexpectedStartTag)
		if len(c.stackOfOpenElements.NodeList) > 0 {
			html := c.stackOfOpenElements.NodeList[0]
			for _, a := range t.Attributes {
				if html.Attributes.GetNamedItem(a.Name) == nil {
					html.Attributes.SetNamedItem(spec.NewAttr(a.Name, a.Value))
				}
			}
		}
		return
	case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
		c.inHeadModeHandler(t)
		return
	case "body":
		c.logError(unexpectedStartTag)
		return
	case "frameset":
		c.logError(unexpectedStartTag)
		return
	case "address", "article", "aside", "blockquote", "center", "details", "dialog",
		"dir", "div", "dl", "fieldset", "figcaption", "figure", "footer", "header",
		"hgroup", "main", "menu", "nav", "ol", "p", "section", "summary", "ul":
		c.closePImplied()
		c.insertHTMLElement(t)
		return
	case "h1", "h2", "h3", "h4", "h5", "h6":
		c.closePImplied()
		if isOneOf(c.currentNode().NodeName, headingTags...) {
			c.logError(unexpectedStartTag)
			c.stackOfOpenElements.Pop()
		}
		c.insertHTMLElement(t)
		return
	case "pre", "listing":
		c.closePImplied()
		c.insertHTMLElement(t)
		c.ignoreNextLF = true
		c.framesetOK = false
		return
	case "form":
		if c.formElementPointer != nil && !c.stackContains("template") {
			c.logError(unexpectedStartTag)
			return
		}
		c.closePImplied()
		el := c.insertHTMLElement(t)
		if !c.stackContains("template") {
			c.formElementPointer = el
		}
		return
	case "li":
		c.framesetOK = false
		for i := len(c.stackOfOpenElements.NodeList) - 1; i >= 0; i-- {
			node := c.stackOfOpenElements.NodeList[i]
			if node.NodeName == "li" {
				c.generateImpliedEndTags("li")
				c.popUntil("li")
				break
			}
			if isSpecial(node.NodeName) && !isOneOf(node.NodeName, "address", "div", "p") {
				break
			}
		}
		c.closePImplied()
		c.insertHTMLElement(t)
		return
	case "dd", "dt":
		c.framesetOK = false
		for i := len(c.stackOfOpenElements.NodeList) - 1; i >= 0; i-- {
			node := c.stackOfOpenElements.NodeList[i]
			if node.NodeName == "dd" {
				c.generateImpliedEndTags("dd")
				c.popUntil("dd")
				break
			}
			if node.NodeName == "dt" {
				c.generateImpliedEndTags("dt")
				c.popUntil("dt")
				break
			}
			if isSpecial(node.NodeName) && !isOneOf(node.NodeName, "address", "div", "p") {
				break
			}
		}
		c.closePImplied()
		c.insertHTMLElement(t)
		return
	case "plaintext":
		c.closePImplied()
		c.insertHTMLElement(t)
		st := plaintextState
		c.nextTokenizerState = &st
		return
	case "button":
		if containsElementInScope(c.stackOfOpenElements.NodeList, "button") {
			c.logError(unexpectedStartTag)
			c.generateImpliedEndTags()
			c.popUntil("button")
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(t)
		c.framesetOK = false
		return
	case "a":
		if fe := c.lastActiveFormattingElement("a"); fe != nil {
			c.logError(unexpectedStartTag)
			c.adoptionAgencyAlgorithm(&Token{TokenType: endTagToken, TagName: "a"})
			idx := c.activeFormattingElements.Contains(fe)
			if idx != -1 {
				c.activeFormattingElements.NodeList.Remove(idx)
			}
			idx = c.stackOfOpenElements.Contains(fe)
			if idx != -1 {
				c.stackOfOpenElements.NodeList.Remove(idx)
			}
		}
		c.reconstructActiveFormattingElements()
		el := c.insertHTMLElement(t)
		c.pushActiveFormattingElement(el)
		return
	case "b", "big", "code", "em", "font", "i", "s", "small", "strike", "strong", "tt", "u":
		c.reconstructActiveFormattingElements()
		el := c.insertHTMLElement(t)
		c.pushActiveFormattingElement(el)
		return
	case "nobr":
		c.reconstructActiveFormattingElements()
		if containsElementInScope(c.stackOfOpenElements.NodeList, "nobr") {
			c.logError(unexpectedStartTag)
			c.adoptionAgencyAlgorithm(&Token{TokenType: endTagToken, TagName: "nobr"})
			c.reconstructActiveFormattingElements()
		}
		el := c.insertHTMLElement(t)
		c.pushActiveFormattingElement(el)
		return
	case "applet", "marquee", "object":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(t)
		c.insertMarker()
		c.framesetOK = false
		return
	case "table":
		if c.quirksMode != spec.Quirks {
			c.closePImplied()
		}
		c.insertHTMLElement(t)
		c.framesetOK = false
		c.insertionMode = inTable
		return
	case "area", "br", "embed", "img", "keygen", "wbr":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(t)
		c.stackOfOpenElements.Pop()
		c.framesetOK = false
		return
	case "input":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(t)
		c.stackOfOpenElements.Pop()
		if typ, ok := tokenAttr(t, "type"); !ok || !strings.EqualFold(typ, "hidden") {
			c.framesetOK = false
		}
		return
	case "param", "source", "track":
		c.insertHTMLElement(t)
		c.stackOfOpenElements.Pop()
		return
	case "hr":
		c.closePImplied()
		c.insertHTMLElement(t)
		c.stackOfOpenElements.Pop()
		c.framesetOK = false
		return
	case "image":
		t.TagName = "img"
		c.inBodyStartTag(t)
		return
	case "textarea":
		c.insertHTMLElement(t)
		c.ignoreNextLF = true
		st := rcDataState
		c.nextTokenizerState = &st
		c.framesetOK = false
		return
	case "xmp":
		c.closePImplied()
		c.reconstructActiveFormattingElements()
		c.framesetOK = false
		c.genericRawTextElementParsingAlgorithm(t)
		return
	case "iframe":
		c.framesetOK = false
		c.genericRawTextElementParsingAlgorithm(t)
		return
	case "noembed":
		c.genericRawTextElementParsingAlgorithm(t)
		return
	case "noscript":
		if c.scriptingEnabled {
			c.genericRawTextElementParsingAlgorithm(t)
			return
		}
	case "select":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(t)
		c.framesetOK = false
		switch c.insertionMode {
		case inTable, inCaption, inTableBody, inRow, inCell:
			c.insertionMode = inSelectInTable
		default:
			c.insertionMode = inSelect
		}
		return
	case "optgroup", "option":
		if c.currentNode().NodeName == "option" {
			c.stackOfOpenElements.Pop()
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(t)
		return
	case "rb", "rtc":
		if containsElementInScope(c.stackOfOpenElements.NodeList, "ruby") {
			c.generateImpliedEndTags()
		}
		c.insertHTMLElement(t)
		return
	case "rp", "rt":
		if containsElementInScope(c.stackOfOpenElements.NodeList, "ruby") {
			c.generateImpliedEndTags("rtc")
		}
		c.insertHTMLElement(t)
		return
	case "math":
		c.reconstructActiveFormattingElements()
		adjustMathMLAttributes(t)
		adjustForeignAttributes(t)
		c.insertForeignElementMaybeSelfClose(t, spec.Mathmlns)
		return
	case "svg":
		c.reconstructActiveFormattingElements()
		adjustSVGAttributes(t)
		adjustForeignAttributes(t)
		c.insertForeignElementMaybeSelfClose(t, spec.Svgns)
		return
	case "caption", "col", "colgroup", "frame", "head", "tbody", "td", "tfoot", "th", "thead", "tr":
		c.logError(unexpectedStartTag)
		return
	}

	c.reconstructActiveFormattingElements()
	c.insertHTMLElement(t)
}

func (c *HTMLTreeConstructor) insertForeignElementMaybeSelfClose(t *Token, ns spec.Namespace) {
	el := c.insertForeignElement(t, ns)
	if t.SelfClosing {
		c.stackOfOpenElements.NodeList.Remove(c.stackOfOpenElements.Contains(el))
	}
}

func (c *HTMLTreeConstructor) lastActiveFormattingElement(name string) *spec.Node {
	for i := len(c.activeFormattingElements.NodeList) - 1; i >= 0; i-- {
		entry := c.activeFormattingElements.NodeList[i]
		if entry == spec.ScopeMarker {
			return nil
		}
		if entry.NodeName == name {
			return entry
		}
	}
	return nil
}

func (c *HTMLTreeConstructor) inBodyEndTag(t *Token) {
	switch t.TagName {
	case "template":
		c.inHeadModeHandler(t)
		return
	case "body":
		if !containsElementInScope(c.stackOfOpenElements.NodeList, "body") {
			c.logError(unexpectedEndTag)
			return
		}
		c.insertionMode = afterBody
		return
	case "html":
		if !containsElementInScope(c.stackOfOpenElements.NodeList, "body") {
			c.logError(unexpectedEndTag)
			return
		}
		c.reprocess(afterBody, t)
		return
	case "address", "article", "aside", "blockquote", "button", "center", "details",
		"dialog", "dir", "div", "dl", "fieldset", "figcaption", "figure", "footer",
		"header", "hgroup", "listing", "main", "menu", "nav", "ol", "pre", "section",
		"summary", "ul":
		if !containsElementInScope(c.stackOfOpenElements.NodeList, t.TagName) {
			c.logError(unexpectedEndTag)
			return
		}
		c.generateImpliedEndTags()
		c.popUntil(t.TagName)
		return
	case "form":
		if !c.stackContains("template") {
			node := c.formElementPointer
			c.formElementPointer = nil
			if node == nil || !containsElementInScope(c.stackOfOpenElements.NodeList, node.NodeName) {
				c.logError(unexpectedEndTag)
				return
			}
			c.generateImpliedEndTags()
			if c.currentNode() != node {
				c.logError(unclosedElements)
			}
			c.stackOfOpenElements.NodeList.Remove(c.stackOfOpenElements.Contains(node))
			return
		}
		if !containsElementInScope(c.stackOfOpenElements.NodeList, "form") {
			c.logError(unexpectedEndTag)
			return
		}
		c.generateImpliedEndTags()
		if c.currentNode().NodeName != "form" {
			c.logError(unclosedElements)
		}
		c.popUntil("form")
		return
	case "p":
		if !containsElementInButtonScope(c.stackOfOpenElements.NodeList, "p") {
			c.logError(unexpectedEndTag)
			pTok := &Token{TokenType: startTagToken, TagName: "p"}
			c.insertHTMLElement(pTok)
		}
		c.generateImpliedEndTags("p")
		c.popUntil("p")
		return
	case "li":
		if !containsElementInListItemScope(c.stackOfOpenElements.NodeList, "li") {
			c.logError(unexpectedEndTag)
			return
		}
		c.generateImpliedEndTags("li")
		c.popUntil("li")
		return
	case "dd", "dt":
		if !containsElementInScope(c.stackOfOpenElements.NodeList, t.TagName) {
			c.logError(unexpectedEndTag)
			return
		}
		c.generateImpliedEndTags(t.TagName)
		c.popUntil(t.TagName)
		return
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if !containsElementsInScope(c.stackOfOpenElements.NodeList, headingTags...) {
			c.logError(unexpectedEndTag)
			return
		}
		c.generateImpliedEndTags()
		c.popUntil(headingTags...)
		return
	case "a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small", "strike", "strong", "tt", "u":
		c.adoptionAgencyAlgorithm(t)
		return
	case "applet", "marquee", "object":
		if !containsElementInScope(c.stackOfOpenElements.NodeList, t.TagName) {
			c.logError(unexpectedEndTag)
			return
		}
		c.generateImpliedEndTags()
		c.popUntil(t.TagName)
		c.clearActiveFormattingElementsToLastMarker()
		return
	case "br":
		c.logError(unexpectedEndTag)
		c.reconstructActiveFormattingElements()
		brTok := &Token{TokenType: startTagToken, TagName: "br"}
		c.insertHTMLElement(brTok)
		c.stackOfOpenElements.Pop()
		c.framesetOK = false
		return
	}

	c.inBodyAnyOtherEndTag(t)
}

// inBodyAnyOtherEndTag is "any other end tag" from the in body mode, also
// reused as the adoption agency algorithm's fallback.
func (c *HTMLTreeConstructor) inBodyAnyOtherEndTag(t *Token) {
	for i := len(c.stackOfOpenElements.NodeList) - 1; i >= 0; i-- {
		node := c.stackOfOpenElements.NodeList[i]
		if node.NodeName == t.TagName {
			c.generateImpliedEndTags(t.TagName)
			if c.currentNode() != node {
				c.logError(unclosedElements)
			}
			for len(c.stackOfOpenElements.NodeList) > i {
				c.stackOfOpenElements.Pop()
			}
			return
		}
		if isSpecial(node.NodeName) {
			c.logError(unexpectedEndTag)
			return
		}
	}
}

func (c *HTMLTreeConstructor) genericRawTextElementParsingAlgorithm(t *Token) {
	c.insertHTMLElement(t)
	st := rawTextState
	c.nextTokenizerState = &st
	c.originalInsertionMode = c.insertionMode
	c.insertionMode = text
}

func (c *HTMLTreeConstructor) genericRCDataElementParsingAlgorithm(t *Token) {
	c.insertHTMLElement(t)
	st := rcDataState
	c.nextTokenizerState = &st
	c.originalInsertionMode = c.insertionMode
	c.insertionMode = text
}

func (c *HTMLTreeConstructor) textModeHandler(t *Token) {
	switch t.TokenType {
	case characterToken:
		c.insertCharacter(t.Data)
		return
	case endOfFileToken:
		c.logError(unexpectedEOF)
		c.stackOfOpenElements.Pop()
		c.insertionMode = c.originalInsertionMode
		c.reprocess(c.insertionMode, t)
		return
	case endTagToken:
		if t.TagName == "script" {
			c.stackOfOpenElements.Pop()
			c.insertionMode = c.originalInsertionMode
			return
		}
		c.stackOfOpenElements.Pop()
		c.insertionMode = c.originalInsertionMode
		return
	}
}

// --- table family ---

func (c *HTMLTreeConstructor) inTableModeHandler(t *Token) {
	switch t.TokenType {
	case characterToken:
		if isOneOf(c.currentNode().NodeName, "table", "tbody", "tfoot", "thead", "tr") {
			c.pendingTableCharacterTokens = nil
			c.originalInsertionMode = c.insertionMode
			c.reprocess(inTableText, t)
			return
		}
	case commentToken:
		c.insertComment(t)
		return
	case docTypeToken:
		c.logError(unexpectedDoctype)
		return
	case startTagToken:
		switch t.TagName {
		case "caption":
			c.clearStackBackToTable()
			c.insertMarker()
			c.insertHTMLElement(t)
			c.insertionMode = inCaption
			return
		case "colgroup":
			c.clearStackBackToTable()
			c.insertHTMLElement(t)
			c.insertionMode = inColumnGroup
			return
		case "col":
			c.clearStackBackToTable()
			colgroupTok := &Token{TokenType: startTagToken, TagName: "colgroup"}
			c.insertHTMLElement(colgroupTok)
			c.reprocess(inColumnGroup, t)
			return
		case "tbody", "tfoot", "thead":
			c.clearStackBackToTable()
			c.insertHTMLElement(t)
			c.insertionMode = inTableBody
			return
		case "td", "th", "tr":
			c.clearStackBackToTable()
			tbodyTok := &Token{TokenType: startTagToken, TagName: "tbody"}
			c.insertHTMLElement(tbodyTok)
			c.reprocess(inTableBody, t)
			return
		case "table":
			c.logError(unexpectedStartTag)
			if containsElementInTableScope(c.stackOfOpenElements.NodeList, "table") {
				c.popUntil("table")
				c.insertionMode = c.resetInsertionModeWithContext()
				c.reprocess(c.insertionMode, t)
			}
			return
		case "style", "script", "template":
			c.inHeadModeHandler(t)
			return
		case "input":
			if typ, ok := tokenAttr(t, "type"); ok && strings.EqualFold(typ, "hidden") {
				c.logError(unexpectedStartTag)
				c.insertHTMLElement(t)
				c.stackOfOpenElements.Pop()
				return
			}
		case "form":
			if c.formElementPointer == nil && !c.stackContains("template") {
				c.logError(unexpectedStartTag)
				el := c.insertHTMLElement(t)
				c.stackOfOpenElements.Pop()
				c.formElementPointer = el
				return
			}
		}
	case endTagToken:
		switch t.TagName {
		case "table":
			if !containsElementInTableScope(c.stackOfOpenElements.NodeList, "table") {
				c.logError(unexpectedEndTag)
				return
			}
			c.popUntil("table")
			c.insertionMode = c.resetInsertionModeWithContext()
			return
		case "body", "caption", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			c.logError(unexpectedEndTag)
			return
		case "template":
			c.inHeadModeHandler(t)
			return
		}
	case endOfFileToken:
		c.inBodyModeHandler(t)
		return
	}

	c.logError(tableContentOutsideCell)
	c.fosterParenting = true
	c.inBodyModeHandler(t)
	c.fosterParenting = false
}

func (c *HTMLTreeConstructor) inTableTextModeHandler(t *Token) {
	switch t.TokenType {
	case characterToken:
		if t.Data == "\x00" {
			c.logError(unexpectedCharacter)
			return
		}
		c.pendingTableCharacterTokens = append(c.pendingTableCharacterTokens, *t)
		return
	}

	allWhitespace := true
	for _, pt := range c.pendingTableCharacterTokens {
		if !isWhitespace([]rune(pt.Data)[0]) {
			allWhitespace = false
			break
		}
	}
	if !allWhitespace {
		c.logError(tableContentOutsideCell)
		c.fosterParenting = true
		for _, pt := range c.pendingTableCharacterTokens {
			cpy := pt
			c.inBodyModeHandler(&cpy)
		}
		c.fosterParenting = false
	} else {
		for _, pt := range c.pendingTableCharacterTokens {
			c.insertCharacter(pt.Data)
		}
	}
	c.pendingTableCharacterTokens = nil
	c.reprocess(c.originalInsertionMode, t)
}

func (c *HTMLTreeConstructor) inCaptionModeHandler(t *Token) {
	switch t.TokenType {
	case endTagToken:
		switch t.TagName {
		case "caption":
			if !containsElementInTableScope(c.stackOfOpenElements.NodeList, "caption") {
				c.logError(unexpectedEndTag)
				return
			}
			c.generateImpliedEndTags()
			c.popUntil("caption")
			c.clearActiveFormattingElementsToLastMarker()
			c.insertionMode = inTable
			return
		case "table":
			if !containsElementInTableScope(c.stackOfOpenElements.NodeList, "caption") {
				c.logError(unexpectedEndTag)
				return
			}
			c.popUntil("caption")
			c.clearActiveFormattingElementsToLastMarker()
			c.reprocess(inTable, t)
			return
		case "body", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			c.logError(unexpectedEndTag)
			return
		}
	case startTagToken:
		switch t.TagName {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !containsElementInTableScope(c.stackOfOpenElements.NodeList, "caption") {
				c.logError(unexpectedStartTag)
				return
			}
			c.popUntil("caption")
			c.clearActiveFormattingElementsToLastMarker()
			c.reprocess(inTable, t)
			return
		}
	}

	c.inBodyModeHandler(t)
}

func (c *HTMLTreeConstructor) inColumnGroupModeHandler(t *Token) {
	switch t.TokenType {
	case characterToken:
		if isWhitespace([]rune(t.Data)[0]) {
			c.insertCharacter(t.Data)
			return
		}
	case commentToken:
		c.insertComment(t)
		return
	case docTypeToken:
		c.logError(unexpectedDoctype)
		return
	case startTagToken:
		switch t.TagName {
		case "html":
			c.inBodyModeHandler(t)
			return
		case "col":
			c.insertHTMLElement(t)
			c.stackOfOpenElements.Pop()
			return
		case "template":
			c.inHeadModeHandler(t)
			return
		}
	case endTagToken:
		switch t.TagName {
		case "colgroup":
			if c.currentNode().NodeName != "colgroup" {
				c.logError(unexpectedEndTag)
				return
			}
			c.stackOfOpenElements.Pop()
			c.insertionMode = inTable
			return
		case "col":
			c.logError(unexpectedEndTag)
			return
		case "template":
			c.inHeadModeHandler(t)
			return
		}
	case endOfFileToken:
		c.inBodyModeHandler(t)
		return
	}

	if c.currentNode().NodeName != "colgroup" {
		c.logError(unexpectedEndTag)
		return
	}
	c.stackOfOpenElements.Pop()
	c.reprocess(inTable, t)
}

func (c *HTMLTreeConstructor) inTableBodyModeHandler(t *Token) {
	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "tr":
			c.clearStackBackToTableBody()
			c.insertHTMLElement(t)
			c.insertionMode = inRow
			return
		case "th", "td":
			c.logError(unexpectedStartTag)
			c.clearStackBackToTableBody()
			trTok := &Token{TokenType: startTagToken, TagName: "tr"}
			c.insertHTMLElement(trTok)
			c.reprocess(inRow, t)
			return
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead":
			if !containsElementsInTableScope(c.stackOfOpenElements.NodeList, "tbody", "thead", "tfoot") {
				c.logError(unexpectedStartTag)
				return
			}
			c.clearStackBackToTableBody()
			c.stackOfOpenElements.Pop()
			c.reprocess(inTable, t)
			return
		}
	case endTagToken:
		switch t.TagName {
		case "tbody", "tfoot", "thead":
			if !c.stackContains(t.TagName) {
				c.logError(unexpectedEndTag)
				return
			}
			c.clearStackBackToTableBody()
			c.stackOfOpenElements.Pop()
			c.insertionMode = inTable
			return
		case "table":
			if !containsElementsInTableScope(c.stackOfOpenElements.NodeList, "tbody", "thead", "tfoot") {
				c.logError(unexpectedEndTag)
				return
			}
			c.clearStackBackToTableBody()
			c.stackOfOpenElements.Pop()
			c.reprocess(inTable, t)
			return
		case "body", "caption", "col", "colgroup", "html", "td", "th", "tr":
			c.logError(unexpectedEndTag)
			return
		}
	}

	c.inTableModeHandler(t)
}

func (c *HTMLTreeConstructor) inRowModeHandler(t *Token) {
	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "th", "td":
			c.clearStackBackToTableRow()
			c.insertHTMLElement(t)
			c.insertionMode = inCell
			c.insertMarker()
			return
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr":
			if !containsElementInTableScope(c.stackOfOpenElements.NodeList, "tr") {
				c.logError(unexpectedStartTag)
				return
			}
			c.clearStackBackToTableRow()
			c.stackOfOpenElements.Pop()
			c.reprocess(inTableBody, t)
			return
		}
	case endTagToken:
		switch t.TagName {
		case "tr":
			if !containsElementInTableScope(c.stackOfOpenElements.NodeList, "tr") {
				c.logError(unexpectedEndTag)
				return
			}
			c.clearStackBackToTableRow()
			c.stackOfOpenElements.Pop()
			c.insertionMode = inTableBody
			return
		case "table":
			if !containsElementInTableScope(c.stackOfOpenElements.NodeList, "tr") {
				c.logError(unexpectedEndTag)
				return
			}
			c.clearStackBackToTableRow()
			c.stackOfOpenElements.Pop()
			c.reprocess(inTableBody, t)
			return
		case "tbody", "tfoot", "thead":
			if !c.stackContains(t.TagName) || !containsElementInTableScope(c.stackOfOpenElements.NodeList, "tr") {
				c.logError(unexpectedEndTag)
				return
			}
			c.clearStackBackToTableRow()
			c.stackOfOpenElements.Pop()
			c.reprocess(inTableBody, t)
			return
		case "body", "caption", "col", "colgroup", "html", "td", "th":
			c.logError(unexpectedEndTag)
			return
		}
	}

	c.inTableModeHandler(t)
}

func (c *HTMLTreeConstructor) inCellModeHandler(t *Token) {
	switch t.TokenType {
	case endTagToken:
		switch t.TagName {
		case "td", "th":
			if !containsElementInTableScope(c.stackOfOpenElements.NodeList, t.TagName) {
				c.logError(unexpectedEndTag)
				return
			}
			c.generateImpliedEndTags()
			c.popUntil(t.TagName)
			c.clearActiveFormattingElementsToLastMarker()
			c.insertionMode = inRow
			return
		case "body", "caption", "col", "colgroup", "html":
			c.logError(unexpectedEndTag)
			return
		case "table", "tbody", "tfoot", "thead", "tr":
			if !containsElementInTableScope(c.stackOfOpenElements.NodeList, t.TagName) {
				c.logError(unexpectedEndTag)
				return
			}
			c.closeCellImplied()
			c.reprocess(inRow, t)
			return
		}
	case startTagToken:
		switch t.TagName {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !containsElementsInTableScope(c.stackOfOpenElements.NodeList, "td", "th") {
				c.logError(unexpectedStartTag)
				return
			}
			c.closeCellImplied()
			c.reprocess(inRow, t)
			return
		}
	}

	c.inBodyModeHandler(t)
}

func (c *HTMLTreeConstructor) closeCellImplied() {
	c.generateImpliedEndTags()
	c.popUntil("td", "th")
	c.clearActiveFormattingElementsToLastMarker()
	c.insertionMode = inRow
}

func (c *HTMLTreeConstructor) inSelectModeHandler(t *Token) {
	switch t.TokenType {
	case characterToken:
		if t.Data == "\x00" {
			c.logError(unexpectedCharacter)
			return
		}
		c.insertCharacter(t.Data)
		return
	case commentToken:
		c.insertComment(t)
		return
	case docTypeToken:
		c.logError(unexpectedDoctype)
		return
	case endOfFileToken:
		c.inBodyModeHandler(t)
		return
	case startTagToken:
		switch t.TagName {
		case "html":
			c.inBodyModeHandler(t)
			return
		case "option":
			if c.currentNode().NodeName == "option" {
				c.stackOfOpenElements.Pop()
			}
			c.insertHTMLElement(t)
			return
		case "optgroup":
			if c.currentNode().NodeName == "option" {
				c.stackOfOpenElements.Pop()
			}
			if c.currentNode().NodeName == "optgroup" {
				c.stackOfOpenElements.Pop()
			}
			c.insertHTMLElement(t)
			return
		case "select":
			c.logError(unexpectedStartTag)
			if !containsElementInSelectScope(c.stackOfOpenElements.NodeList, "select") {
				return
			}
			c.popUntil("select")
			c.insertionMode = c.resetInsertionModeWithContext()
			return
		case "input", "keygen", "textarea":
			c.logError(unexpectedStartTag)
			if !containsElementInSelectScope(c.stackOfOpenElements.NodeList, "select") {
				return
			}
			c.popUntil("select")
			c.reprocess(c.resetInsertionModeWithContext(), t)
			return
		case "script", "template":
			c.inHeadModeHandler(t)
			return
		}
	case endTagToken:
		switch t.TagName {
		case "optgroup":
			if c.currentNode().NodeName == "option" && len(c.stackOfOpenElements.NodeList) > 1 &&
				c.stackOfOpenElements.NodeList[len(c.stackOfOpenElements.NodeList)-2].NodeName == "optgroup" {
				c.stackOfOpenElements.Pop()
			}
			if c.currentNode().NodeName == "optgroup" {
				c.stackOfOpenElements.Pop()
			} else {
				c.logError(unexpectedEndTag)
			}
			return
		case "option":
			if c.currentNode().NodeName == "option" {
				c.stackOfOpenElements.Pop()
			} else {
				c.logError(unexpectedEndTag)
			}
			return
		case "select":
			if !containsElementInSelectScope(c.stackOfOpenElements.NodeList, "select") {
				c.logError(unexpectedEndTag)
				return
			}
			c.popUntil("select")
			c.insertionMode = c.resetInsertionModeWithContext()
			return
		case "template":
			c.inHeadModeHandler(t)
			return
		}
	}

	c.logError(unexpectedStartTag)
}

func (c *HTMLTreeConstructor) inSelectInTableModeHandler(t *Token) {
	switch t.TokenType {
	case startTagToken:
		if isOneOf(t.TagName, "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th") {
			c.logError(unexpectedStartTag)
			c.popUntil("select")
			c.reprocess(c.resetInsertionModeWithContext(), t)
			return
		}
	case endTagToken:
		if isOneOf(t.TagName, "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th") {
			c.logError(unexpectedEndTag)
			if !containsElementInTableScope(c.stackOfOpenElements.NodeList, t.TagName) {
				return
			}
			c.popUntil("select")
			c.reprocess(c.resetInsertionModeWithContext(), t)
			return
		}
	}

	c.inSelectModeHandler(t)
}

func (c *HTMLTreeConstructor) inTemplateModeHandler(t *Token) {
	switch t.TokenType {
	case characterToken, commentToken, docTypeToken:
		c.inBodyModeHandler(t)
		return
	case startTagToken:
		switch t.TagName {
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
			c.inHeadModeHandler(t)
			return
		case "caption", "colgroup", "tbody", "tfoot", "thead":
			c.swapTemplateMode(inTable)
			c.reprocess(inTable, t)
			return
		case "col":
			c.swapTemplateMode(inColumnGroup)
			c.reprocess(inColumnGroup, t)
			return
		case "tr":
			c.swapTemplateMode(inTableBody)
			c.reprocess(inTableBody, t)
			return
		case "td", "th":
			c.swapTemplateMode(inRow)
			c.reprocess(inRow, t)
			return
		default:
			c.swapTemplateMode(inBody)
			c.reprocess(inBody, t)
			return
		}
	case endTagToken:
		if t.TagName == "template" {
			c.inHeadModeHandler(t)
			return
		}
		c.logError(unexpectedEndTag)
		return
	case endOfFileToken:
		if !c.stackContains("template") {
			c.stopParsing()
			return
		}
		c.logError(unexpectedEOF)
		c.popUntil("template")
		c.clearActiveFormattingElementsToLastMarker()
		c.stackOfTemplateInsertionModes = c.stackOfTemplateInsertionModes[:len(c.stackOfTemplateInsertionModes)-1]
		c.insertionMode = c.resetInsertionModeWithContext()
		c.reprocess(c.insertionMode, t)
		return
	}
}

func (c *HTMLTreeConstructor) swapTemplateMode(mode insertionMode) {
	if len(c.stackOfTemplateInsertionModes) > 0 {
		c.stackOfTemplateInsertionModes[len(c.stackOfTemplateInsertionModes)-1] = mode
	}
}

func (c *HTMLTreeConstructor) afterBodyModeHandler(t *Token) {
	switch t.TokenType {
	case characterToken:
		if isWhitespace([]rune(t.Data)[0]) {
			c.inBodyModeHandler(t)
			return
		}
	case commentToken:
		c.insertCommentAt(t, c.stackOfOpenElements.NodeList[0])
		return
	case docTypeToken:
		c.logError(unexpectedDoctype)
		return
	case startTagToken:
		if t.TagName == "html" {
			c.inBodyModeHandler(t)
			return
		}
	case endTagToken:
		if t.TagName == "html" {
			c.insertionMode = afterAfterBody
			return
		}
	case endOfFileToken:
		c.stopParsing()
		return
	}

	c.logError(unexpectedStartTag)
	c.reprocess(inBody, t)
}

func (c *HTMLTreeConstructor) inFramesetModeHandler(t *Token) {
	switch t.TokenType {
	case characterToken:
		if isWhitespace([]rune(t.Data)[0]) {
			c.insertCharacter(t.Data)
			return
		}
	case commentToken:
		c.insertComment(t)
		return
	case docTypeToken:
		c.logError(unexpectedDoctype)
		return
	case startTagToken:
		switch t.TagName {
		case "html":
			c.inBodyModeHandler(t)
			return
		case "frameset":
			c.insertHTMLElement(t)
			return
		case "frame":
			c.insertHTMLElement(t)
			c.stackOfOpenElements.Pop()
			return
		case "noframes":
			c.inHeadModeHandler(t)
			return
		}
	case endTagToken:
		if t.TagName == "frameset" {
			if len(c.stackOfOpenElements.NodeList) == 1 {
				c.logError(unexpectedEndTag)
				return
			}
			c.stackOfOpenElements.Pop()
			if c.currentNode().NodeName != "frameset" {
				c.insertionMode = afterFrameset
			}
			return
		}
	case endOfFileToken:
		c.stopParsing()
		return
	}

	c.logError(unexpectedStartTag)
}

func (c *HTMLTreeConstructor) afterFramesetModeHandler(t *Token) {
	switch t.TokenType {
	case characterToken:
		if isWhitespace([]rune(t.Data)[0]) {
			c.insertCharacter(t.Data)
			return
		}
	case commentToken:
		c.insertComment(t)
		return
	case docTypeToken:
		c.logError(unexpectedDoctype)
		return
	case startTagToken:
		switch t.TagName {
		case "html":
			c.inBodyModeHandler(t)
			return
		case "noframes":
			c.inHeadModeHandler(t)
			return
		}
	case endTagToken:
		if t.TagName == "html" {
			c.insertionMode = afterAfterFrameset
			return
		}
	case endOfFileToken:
		c.stopParsing()
		return
	}

	c.logError(unexpectedStartTag)
}

func (c *HTMLTreeConstructor) afterAfterBodyModeHandler(t *Token) {
	switch t.TokenType {
	case commentToken:
		c.insertCommentAt(t, c.HTMLDocument)
		return
	case docTypeToken:
		c.inBodyModeHandler(t)
		return
	case characterToken:
		if isWhitespace([]rune(t.Data)[0]) {
			c.inBodyModeHandler(t)
			return
		}
	case startTagToken:
		if t.TagName == "html" {
			c.inBodyModeHandler(t)
			return
		}
	case endOfFileToken:
		c.stopParsing()
		return
	}

	c.logError(unexpectedStartTag)
	c.reprocess(inBody, t)
}

func (c *HTMLTreeConstructor) afterAfterFramesetModeHandler(t *Token) {
	switch t.TokenType {
	case commentToken:
		c.insertCommentAt(t, c.HTMLDocument)
		return
	case docTypeToken:
		c.inBodyModeHandler(t)
		return
	case characterToken:
		if isWhitespace([]rune(t.Data)[0]) {
			c.inBodyModeHandler(t)
			return
		}
	case startTagToken:
		switch t.TagName {
		case "html":
			c.inBodyModeHandler(t)
			return
		case "noframes":
			c.inHeadModeHandler(t)
			return
		}
	case endOfFileToken:
		c.stopParsing()
		return
	}

	c.logError(unexpectedStartTag)
}
