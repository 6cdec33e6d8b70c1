package parser

import (
	"strings"

	"github.com/dgnorton/htmlcore/parser/spec"
	"github.com/sirupsen/logrus"
)

// insertionMode is one of the 23 tree construction modes the parser can be
// in. https://html.spec.whatwg.org/multipage/parsing.html#the-insertion-mode
type insertionMode uint8

const (
	initial insertionMode = iota
	beforeHTML
	beforeHead
	inHead
	inHeadNoscript
	afterHead
	inBody
	text
	inTable
	inTableText
	inCaption
	inColumnGroup
	inTableBody
	inRow
	inCell
	inSelect
	inSelectInTable
	inTemplate
	afterBody
	inFrameset
	afterFrameset
	afterAfterBody
	afterAfterFrameset
)

func (m insertionMode) String() string {
	names := [...]string{
		"initial", "before html", "before head", "in head", "in head noscript",
		"after head", "in body", "text", "in table", "in table text",
		"in caption", "in column group", "in table body", "in row", "in cell",
		"in select", "in select in table", "in template", "after body",
		"in frameset", "after frameset", "after after body", "after after frameset",
	}
	if int(m) < len(names) {
		return names[m]
	}
	return "unknown"
}

type creationAlgorithm uint8

const (
	htmlParsingAlgorithm creationAlgorithm = iota
	htmlFragmentParsingAlgorithm
)

// HTMLTreeConstructor builds a DOM from the tokens a HTMLTokenizer produces.
// It is a synchronous state machine: ProcessToken consumes one token and
// returns the progress the tokenizer needs (mainly which state to switch to
// after a start tag like <script> or <title>).
// https://html.spec.whatwg.org/multipage/parsing.html#tree-construction
type HTMLTreeConstructor struct {
	HTMLDocument *spec.Node

	stackOfOpenElements           spec.StackOfOpenElements
	activeFormattingElements      spec.ActiveFormattingElements
	stackOfTemplateInsertionModes []insertionMode

	headElementPointer *spec.Node
	formElementPointer *spec.Node

	insertionMode         insertionMode
	originalInsertionMode insertionMode

	framesetOK       bool
	scriptingEnabled bool
	fosterParenting  bool

	quirksMode spec.QuirksMode

	context   *spec.Node
	createdBy creationAlgorithm

	pendingTableCharacterTokens []Token

	ignoreNextLF bool
	done         bool

	nextTokenizerState *tokenizerState

	diagnostics         []Diagnostic
	logger              logrus.FieldLogger
	maxOpenElementDepth int
}

// NewHTMLTreeConstructor returns a tree constructor ready to process tokens
// for a fresh document, starting in the initial insertion mode.
func NewHTMLTreeConstructor() *HTMLTreeConstructor {
	return &HTMLTreeConstructor{
		HTMLDocument:        spec.NewDocumentNode(),
		framesetOK:          true,
		scriptingEnabled:    true,
		insertionMode:       initial,
		logger:              logrus.StandardLogger(),
		maxOpenElementDepth: defaultMaxOpenElementDepth,
	}
}

// NewHTMLTreeConstructorWithConfig applies Config before returning, letting
// callers disable scripting (so noscript content is parsed as markup) or
// swap the diagnostic logger.
func NewHTMLTreeConstructorWithConfig(cfg Config) *HTMLTreeConstructor {
	c := NewHTMLTreeConstructor()
	c.scriptingEnabled = cfg.ScriptingEnabled
	c.maxOpenElementDepth = cfg.MaxOpenElementDepth
	if cfg.Logger != nil {
		c.logger = cfg.Logger
	}
	return c
}

// ProcessToken feeds one token through the tree construction stage and
// reports the tokenizer state the next rune(s) should be read in, if the
// insertion of an element like <script> or <title> requires switching out
// of the data state.
func (c *HTMLTreeConstructor) ProcessToken(t *Token) *Progress {
	c.nextTokenizerState = nil
	c.dispatch(t)
	return MakeProgress(c.adjustedCurrentNode(), c.nextTokenizerState)
}

// dispatch implements the tree construction dispatcher: tokens are processed
// by the rules for the current insertion mode, except while the adjusted
// current node is a foreign (MathML/SVG) element that isn't an HTML or MathML
// text integration point.
// https://html.spec.whatwg.org/multipage/parsing.html#tree-construction-dispatcher
func (c *HTMLTreeConstructor) dispatch(t *Token) {
	if c.useForeignContentRules(t) {
		c.processTokenForeignContent(t)
		return
	}
	c.processTokenByMode(c.insertionMode, t)
}

func (c *HTMLTreeConstructor) useForeignContentRules(t *Token) bool {
	acn := c.adjustedCurrentNode()
	if acn == nil || acn.NodeType != spec.ElementNode {
		return false
	}
	if acn.Element.Namespace == spec.Htmlns {
		return false
	}
	if mathMLTextIntegrationPoint(acn) {
		if t.TokenType == characterToken {
			return false
		}
		if t.TokenType == startTagToken && t.TagName != "mglyph" && t.TagName != "malignmark" {
			return false
		}
	}
	if acn.NodeName == "annotation-xml" && t.TokenType == startTagToken && t.TagName == "svg" {
		return false
	}
	if isHTMLIntegrationPoint(acn) && (t.TokenType == startTagToken || t.TokenType == characterToken) {
		return false
	}
	if t.TokenType == endOfFileToken {
		return false
	}
	return true
}

func (c *HTMLTreeConstructor) processTokenByMode(mode insertionMode, t *Token) {
	switch mode {
	case initial:
		c.initialModeHandler(t)
	case beforeHTML:
		c.beforeHTMLModeHandler(t)
	case beforeHead:
		c.beforeHeadModeHandler(t)
	case inHead:
		c.inHeadModeHandler(t)
	case inHeadNoscript:
		c.inHeadNoscriptModeHandler(t)
	case afterHead:
		c.afterHeadModeHandler(t)
	case inBody:
		c.inBodyModeHandler(t)
	case text:
		c.textModeHandler(t)
	case inTable:
		c.inTableModeHandler(t)
	case inTableText:
		c.inTableTextModeHandler(t)
	case inCaption:
		c.inCaptionModeHandler(t)
	case inColumnGroup:
		c.inColumnGroupModeHandler(t)
	case inTableBody:
		c.inTableBodyModeHandler(t)
	case inRow:
		c.inRowModeHandler(t)
	case inCell:
		c.inCellModeHandler(t)
	case inSelect:
		c.inSelectModeHandler(t)
	case inSelectInTable:
		c.inSelectInTableModeHandler(t)
	case inTemplate:
		c.inTemplateModeHandler(t)
	case afterBody:
		c.afterBodyModeHandler(t)
	case inFrameset:
		c.inFramesetModeHandler(t)
	case afterFrameset:
		c.afterFramesetModeHandler(t)
	case afterAfterBody:
		c.afterAfterBodyModeHandler(t)
	case afterAfterFrameset:
		c.afterAfterFramesetModeHandler(t)
	}
}

// --- stack/current-node helpers ---

func (c *HTMLTreeConstructor) currentNode() *spec.Node {
	if len(c.stackOfOpenElements.NodeList) == 0 {
		return nil
	}
	return c.stackOfOpenElements.NodeList[len(c.stackOfOpenElements.NodeList)-1]
}

// adjustedCurrentNode is the context element during fragment parsing if the
// stack only has one entry, else the current node.
// https://html.spec.whatwg.org/multipage/parsing.html#adjusted-current-node
func (c *HTMLTreeConstructor) adjustedCurrentNode() *spec.Node {
	if c.createdBy == htmlFragmentParsingAlgorithm && len(c.stackOfOpenElements.NodeList) == 1 {
		return c.context
	}
	return c.currentNode()
}

func (c *HTMLTreeConstructor) lastOnStack(name string) (*spec.Node, int) {
	for i := len(c.stackOfOpenElements.NodeList) - 1; i >= 0; i-- {
		if c.stackOfOpenElements.NodeList[i].NodeName == name {
			return c.stackOfOpenElements.NodeList[i], i
		}
	}
	return nil, -1
}

func (c *HTMLTreeConstructor) stackContains(name string) bool {
	_, i := c.lastOnStack(name)
	return i != -1
}

func isOneOf(name string, names ...string) bool {
	for _, n := range names {
		if name == n {
			return true
		}
	}
	return false
}

func tokenAttr(t *Token, name string) (string, bool) {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// --- insertion primitives ---

// appropriatePlaceForInsertion finds the parent (and, for foster parenting, a
// sibling to insert before) a new node should land at.
// https://html.spec.whatwg.org/multipage/parsing.html#appropriate-place-for-inserting-a-node
func (c *HTMLTreeConstructor) appropriatePlaceForInsertion(override *spec.Node) (*spec.Node, *spec.Node) {
	target := c.currentNode()
	if override != nil {
		target = override
	}
	if target == nil {
		return c.HTMLDocument, nil
	}

	if c.fosterParenting && isOneOf(target.NodeName, "table", "tbody", "tfoot", "thead", "tr") {
		lastTemplate, templateIdx := c.lastOnStack("template")
		lastTable, tableIdx := c.lastOnStack("table")

		if lastTemplate != nil && (lastTable == nil || templateIdx > tableIdx) {
			return lastTemplate, nil
		}
		if lastTable == nil {
			return c.stackOfOpenElements.NodeList[0], nil
		}
		if lastTable.ParentNode != nil {
			return lastTable.ParentNode, lastTable
		}
		if tableIdx > 0 {
			return c.stackOfOpenElements.NodeList[tableIdx-1], nil
		}
		return target, nil
	}

	return target, nil
}

func insertAt(parent, beforeSibling, child *spec.Node) {
	if beforeSibling != nil {
		parent.InsertBefore(child, beforeSibling)
		return
	}
	parent.AppendChild(child)
}

func createElementForToken(od *spec.Node, t *Token, ns spec.Namespace) *spec.Node {
	attrs := make([]*spec.Attr, len(t.Attributes))
	for i, a := range t.Attributes {
		attrs[i] = &spec.Attr{Namespace: a.Namespace, Prefix: a.Prefix, LocalName: a.LocalName, Name: a.Name, Value: a.Value}
	}
	return spec.NewElement(od, t.TagName, ns, attrs)
}

// insertForeignElement creates an element for t in namespace ns and pushes it
// onto the stack of open elements at the appropriate insertion point. Once
// the stack holds maxOpenElementDepth elements, the element is neither
// inserted nor pushed and a diagnostic is recorded instead.
// https://html.spec.whatwg.org/multipage/parsing.html#insert-a-foreign-element
func (c *HTMLTreeConstructor) insertForeignElement(t *Token, ns spec.Namespace) *spec.Node {
	target, before := c.appropriatePlaceForInsertion(nil)
	el := createElementForToken(c.HTMLDocument, t, ns)
	if c.maxOpenElementDepth > 0 && len(c.stackOfOpenElements.NodeList) >= c.maxOpenElementDepth {
		c.logError(unclosedElements)
		return el
	}
	insertAt(target, before, el)
	c.stackOfOpenElements.Push(el)
	return el
}

func (c *HTMLTreeConstructor) insertHTMLElement(t *Token) *spec.Node {
	return c.insertForeignElement(t, spec.Htmlns)
}

// insertCharacter implements the "insert a character" construction step,
// appending to an existing text node at the insertion point when possible.
// https://html.spec.whatwg.org/multipage/parsing.html#insert-a-character
func (c *HTMLTreeConstructor) insertCharacter(data string) {
	target, before := c.appropriatePlaceForInsertion(nil)
	if target.NodeType == spec.DocumentNode {
		return
	}
	if before == nil && target.LastChild != nil && target.LastChild.NodeType == spec.TextNode {
		target.LastChild.Text.Data += data
		return
	}
	txt := spec.NewTextNode(c.HTMLDocument, data)
	insertAt(target, before, txt)
}

func (c *HTMLTreeConstructor) insertComment(t *Token) {
	c.insertCommentAt(t, nil)
}

// insertCommentAt inserts a comment node either at the given explicit
// position, or (when position is nil) at the usual appropriate place.
func (c *HTMLTreeConstructor) insertCommentAt(t *Token, position *spec.Node) {
	node := spec.NewComment(t.Data, c.HTMLDocument)
	if position != nil {
		position.AppendChild(node)
		return
	}
	target, before := c.appropriatePlaceForInsertion(nil)
	insertAt(target, before, node)
}

// --- stack popping helpers ---

var impliedEndTagNames = []string{"dd", "dt", "li", "optgroup", "option", "p", "rb", "rp", "rt", "rtc"}
var impliedEndTagNamesThorough = append(append([]string{}, impliedEndTagNames...), "caption", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr")

func (c *HTMLTreeConstructor) generateImpliedEndTags(exclude ...string) {
	for {
		cur := c.currentNode()
		if cur == nil {
			return
		}
		excluded := false
		for _, e := range exclude {
			if cur.NodeName == e {
				excluded = true
				break
			}
		}
		if excluded || !isOneOf(cur.NodeName, impliedEndTagNames...) {
			return
		}
		c.stackOfOpenElements.Pop()
	}
}

func (c *HTMLTreeConstructor) generateAllImpliedEndTagsThoroughly() {
	for {
		cur := c.currentNode()
		if cur == nil || !isOneOf(cur.NodeName, impliedEndTagNamesThorough...) {
			return
		}
		c.stackOfOpenElements.Pop()
	}
}

func (c *HTMLTreeConstructor) popUntil(names ...string) {
	for {
		popped := c.stackOfOpenElements.Pop()
		if popped == nil {
			return
		}
		if isOneOf(popped.NodeName, names...) {
			return
		}
	}
}

func (c *HTMLTreeConstructor) clearStackBackTo(names ...string) {
	for {
		cur := c.currentNode()
		if cur == nil || isOneOf(cur.NodeName, names...) {
			return
		}
		c.stackOfOpenElements.Pop()
	}
}

func (c *HTMLTreeConstructor) clearStackBackToTable() {
	c.clearStackBackTo("table", "template", "html")
}

func (c *HTMLTreeConstructor) clearStackBackToTableBody() {
	c.clearStackBackTo("tbody", "tfoot", "thead", "template", "html")
}

func (c *HTMLTreeConstructor) clearStackBackToTableRow() {
	c.clearStackBackTo("tr", "template", "html")
}

// --- active formatting elements ---

func (c *HTMLTreeConstructor) pushActiveFormattingElement(n *spec.Node) {
	c.activeFormattingElements.Push(n)
}

func (c *HTMLTreeConstructor) insertMarker() {
	c.activeFormattingElements.NodeList = append(c.activeFormattingElements.NodeList, spec.ScopeMarker)
}

// reconstructActiveFormattingElements re-opens formatting elements (b, i,
// etc.) that were implicitly closed by an intervening block element.
// https://html.spec.whatwg.org/multipage/parsing.html#reconstruct-the-active-formatting-elements
func (c *HTMLTreeConstructor) reconstructActiveFormattingElements() {
	if len(c.activeFormattingElements.NodeList) == 0 {
		return
	}
	last := len(c.activeFormattingElements.NodeList) - 1
	entry := c.activeFormattingElements.NodeList[last]
	if entry == spec.ScopeMarker || c.stackOfOpenElements.Contains(entry) != -1 {
		return
	}

	i := last
	for {
		if i == 0 {
			break
		}
		i--
		entry = c.activeFormattingElements.NodeList[i]
		if entry == spec.ScopeMarker || c.stackOfOpenElements.Contains(entry) != -1 {
			i++
			break
		}
	}

	for ; i <= last; i++ {
		entry = c.activeFormattingElements.NodeList[i]
		tok := &Token{TokenType: startTagToken, TagName: entry.NodeName}
		if entry.Element != nil {
			for _, name := range entry.Attributes.Names() {
				a := entry.Attributes.GetNamedItem(name)
				tok.Attributes = append(tok.Attributes, spec.NewAttr(a.Name, a.Value))
			}
		}
		clone := c.insertHTMLElement(tok)
		c.activeFormattingElements.NodeList[i] = clone
	}
}

func (c *HTMLTreeConstructor) clearActiveFormattingElementsToLastMarker() {
	for len(c.activeFormattingElements.NodeList) > 0 {
		entry := c.activeFormattingElements.NodeList.Pop()
		if entry == spec.ScopeMarker {
			return
		}
	}
}

// adoptionAgencyAlgorithm resolves mis-nested formatting elements like
// <b><i>x</b>y</i>. https://html.spec.whatwg.org/multipage/parsing.html#adoption-agency-algorithm
func (c *HTMLTreeConstructor) adoptionAgencyAlgorithm(t *Token) {
	subject := t.TagName
	if c.currentNode() != nil && c.currentNode().NodeName == subject && c.activeFormattingElements.Contains(c.currentNode()) == -1 {
		c.stackOfOpenElements.Pop()
		return
	}

	for outer := 0; outer < 8; outer++ {
		var formattingElement *spec.Node
		feIdx := -1
		for i := len(c.activeFormattingElements.NodeList) - 1; i >= 0; i-- {
			entry := c.activeFormattingElements.NodeList[i]
			if entry == spec.ScopeMarker {
				break
			}
			if entry.NodeName == subject {
				formattingElement = entry
				feIdx = i
				break
			}
		}
		if formattingElement == nil {
			c.inBodyAnyOtherEndTag(t)
			return
		}

		feStackIdx := c.stackOfOpenElements.Contains(formattingElement)
		if feStackIdx == -1 {
			c.logError(misnestedTag)
			c.activeFormattingElements.NodeList.Remove(feIdx)
			return
		}
		if !containsElementInScope(c.stackOfOpenElements.NodeList, formattingElement.NodeName) {
			c.logError(misnestedTag)
			return
		}
		if c.currentNode() != formattingElement {
			c.logError(misnestedTag)
		}

		var furthestBlock *spec.Node
		furthestBlockIdx := -1
		for i := feStackIdx + 1; i < len(c.stackOfOpenElements.NodeList); i++ {
			if isSpecial(c.stackOfOpenElements.NodeList[i].NodeName) {
				furthestBlock = c.stackOfOpenElements.NodeList[i]
				furthestBlockIdx = i
				break
			}
		}

		if furthestBlock == nil {
			for len(c.stackOfOpenElements.NodeList) > feStackIdx {
				c.stackOfOpenElements.Pop()
			}
			c.activeFormattingElements.NodeList.Remove(c.activeFormattingElements.Contains(formattingElement))
			return
		}

		commonAncestor := c.stackOfOpenElements.NodeList[feStackIdx-1]
		bookmark := feIdx

		node := furthestBlock
		lastNode := furthestBlock
		nodeIdx := furthestBlockIdx

		for inner := 0; ; inner++ {
			nodeIdx--
			if nodeIdx < 0 {
				break
			}
			node = c.stackOfOpenElements.NodeList[nodeIdx]
			if node == formattingElement {
				break
			}

			nodeAFEIdx := c.activeFormattingElements.Contains(node)
			if inner >= 3 && nodeAFEIdx != -1 {
				c.activeFormattingElements.NodeList.Remove(nodeAFEIdx)
				nodeAFEIdx = -1
			}
			if nodeAFEIdx == -1 {
				c.stackOfOpenElements.NodeList.Remove(nodeIdx)
				continue
			}

			clone := node.CloneNode(false)
			c.activeFormattingElements.NodeList[nodeAFEIdx] = clone
			c.stackOfOpenElements.NodeList[nodeIdx] = clone
			node = clone

			if lastNode == furthestBlock {
				bookmark = c.activeFormattingElements.Contains(clone) + 1
			}
			if lastNode.ParentNode != nil {
				lastNode.ParentNode.RemoveChild(lastNode)
			}
			node.AppendChild(lastNode)
			lastNode = node
		}

		if lastNode.ParentNode != nil {
			lastNode.ParentNode.RemoveChild(lastNode)
		}
		place, before := c.appropriatePlaceForInsertion(commonAncestor)
		insertAt(place, before, lastNode)

		feClone := formattingElement.CloneNode(false)
		children := append(spec.NodeList{}, furthestBlock.ChildNodes...)
		for _, child := range children {
			furthestBlock.RemoveChild(child)
			feClone.AppendChild(child)
		}
		furthestBlock.AppendChild(feClone)

		c.activeFormattingElements.NodeList.Remove(c.activeFormattingElements.Contains(formattingElement))
		bookmark = clampInt(bookmark, 0, len(c.activeFormattingElements.NodeList))
		c.activeFormattingElements.NodeList.WedgeIn(bookmark, feClone)

		c.stackOfOpenElements.NodeList.Remove(c.stackOfOpenElements.Contains(formattingElement))
		fbIdx := c.stackOfOpenElements.Contains(furthestBlock)
		c.stackOfOpenElements.NodeList.WedgeIn(fbIdx+1, feClone)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// --- misc algorithms shared across modes ---

// isSpecial reports whether a tag name is in the "special" category used by
// the furthest-block search in the adoption agency algorithm and by the
// in-body li/dd/dt and "any other end tag" stack walks.
// https://html.spec.whatwg.org/multipage/parsing.html#special
func isSpecial(name string) bool {
	return isOneOf(name,
		"address", "applet", "area", "article", "aside", "base", "basefont",
		"bgsound", "blockquote", "body", "br", "button", "caption", "center",
		"col", "colgroup", "dd", "details", "dir", "div", "dl", "dt",
		"embed", "fieldset", "figcaption", "figure", "footer", "form",
		"frame", "frameset", "h1", "h2", "h3", "h4", "h5", "h6", "head",
		"header", "hgroup", "hr", "html", "iframe", "img", "input", "keygen",
		"li", "link", "listing", "main", "marquee", "menu", "meta", "nav",
		"noembed", "noframes", "noscript", "object", "ol", "p", "param",
		"plaintext", "pre", "script", "section", "select", "source", "style",
		"summary", "table", "tbody", "td", "template", "textarea", "tfoot",
		"th", "thead", "title", "tr", "track", "ul", "wbr",
		"mi", "mo", "mn", "ms", "mtext", "annotation-xml",
		"foreignObject", "desc",
	)
}

func isWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '', '\r', ' ':
		return true
	}
	return false
}

func trimLeadingWhitespace(s string) string {
	return strings.TrimLeftFunc(s, isWhitespace)
}

// resetInsertionModeWithContext recomputes the insertion mode by walking the
// stack of open elements from the top, used after popping table-structure
// elements and when beginning fragment parsing.
// https://html.spec.whatwg.org/multipage/parsing.html#reset-the-insertion-mode-appropriately
func (c *HTMLTreeConstructor) resetInsertionModeWithContext() insertionMode {
	last := false
	for i := len(c.stackOfOpenElements.NodeList) - 1; i >= 0; i-- {
		node := c.stackOfOpenElements.NodeList[i]
		if i == 0 {
			last = true
			if c.createdBy == htmlFragmentParsingAlgorithm {
				node = c.context
			}
		}

		switch node.NodeName {
		case "select":
			for j := i; j > 0; j-- {
				ancestor := c.stackOfOpenElements.NodeList[j-1]
				if ancestor.NodeName == "template" {
					break
				}
				if ancestor.NodeName == "table" {
					return inSelectInTable
				}
			}
			return inSelect
		case "td", "th":
			if !last {
				return inCell
			}
		case "tr":
			return inRow
		case "tbody", "thead", "tfoot":
			return inTableBody
		case "caption":
			return inCaption
		case "colgroup":
			return inColumnGroup
		case "table":
			return inTable
		case "template":
			return c.stackOfTemplateInsertionModes[len(c.stackOfTemplateInsertionModes)-1]
		case "head":
			if !last {
				return inHead
			}
		case "body":
			return inBody
		case "frameset":
			return inFrameset
		case "html":
			if c.headElementPointer == nil {
				return beforeHead
			}
			return afterHead
		}

		if last {
			return inBody
		}
	}
	return inBody
}

func (c *HTMLTreeConstructor) stopParsing() {
	c.done = true
}
