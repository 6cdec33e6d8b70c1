package parser

import (
	"strings"

	"github.com/dgnorton/htmlcore/parser/spec"
)

//go:generate stringer -type=tokenType
type tokenType uint

const (
	characterToken tokenType = iota
	startTagToken
	endTagToken
	endOfFileToken
	commentToken
	docTypeToken
)

// missing is the sentinel the doctype public/system identifier builders
// start with; it is overwritten the moment a quote opens the identifier, so
// a DocTypeToken that still carries it means "identifier absent" rather than
// "identifier is the literal string MISSING".
const missing string = "MISSING"

type tagType uint

const (
	startTag tagType = iota
	endTag
)

// Token is a concrete token ready to hand to the tree constructor.
type Token struct {
	TokenType        tokenType
	Attributes       []*spec.Attr
	TagName          string
	PublicIdentifier string
	SystemIdentifier string
	ForceQuirks      bool
	SelfClosing      bool
	Data             string
}

// TokenBuilder accumulates a token's fields across however many runes the
// tokenizer state machine takes to build one, then hands back an immutable
// Token when a state handler decides the token is complete.
type TokenBuilder struct {
	attributes     []*spec.Attr
	attributeNames map[string]bool
	attributeKey   strings.Builder
	attributeValue strings.Builder

	name       strings.Builder
	data       strings.Builder
	tempBuffer strings.Builder
	publicID   strings.Builder
	systemID   strings.Builder

	selfClosing            bool
	forceQuirks            bool
	removeNextAttr         bool
	curTagType             tagType
	characterReferenceCode int
}

// MakeTokenBuilder returns a TokenBuilder ready to build the first token.
func MakeTokenBuilder() *TokenBuilder {
	t := &TokenBuilder{}
	t.Reset()
	return t
}

// Reset clears every builder and flag so the next tag, comment, or doctype
// token starts from a blank slate. The tag-name state handlers set
// curTagType themselves right after calling Reset.
func (t *TokenBuilder) Reset() {
	t.attributes = nil
	t.attributeNames = make(map[string]bool)
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	t.publicID.Reset()
	t.systemID.Reset()
	t.publicID.WriteString(missing)
	t.systemID.WriteString(missing)
	t.data.Reset()
	t.name.Reset()
	t.selfClosing = false
	t.forceQuirks = false
	t.removeNextAttr = false
}

// EnableSelfClosing sets the self-closing flag.
func (t *TokenBuilder) EnableSelfClosing() {
	t.selfClosing = true
}

// EnableForceQuirks sets the force-quirks flag.
func (t *TokenBuilder) EnableForceQuirks() {
	t.forceQuirks = true
}

// WritePublicIdentifier appends a rune to the public identifier buffer.
func (t *TokenBuilder) WritePublicIdentifier(r rune) {
	t.publicID.WriteRune(r)
}

// WritePublicIdentifierEmpty clears the "missing" sentinel so the public
// identifier starts out as the empty string instead of absent.
func (t *TokenBuilder) WritePublicIdentifierEmpty() {
	t.publicID.Reset()
}

// WriteSystemIdentifier appends a rune to the system identifier buffer.
func (t *TokenBuilder) WriteSystemIdentifier(r rune) {
	t.systemID.WriteRune(r)
}

// WriteSystemIdentifierEmpty clears the "missing" sentinel so the system
// identifier starts out as the empty string instead of absent.
func (t *TokenBuilder) WriteSystemIdentifierEmpty() {
	t.systemID.Reset()
}

// WriteAttributeName appends a rune to the attribute name currently being
// built.
func (t *TokenBuilder) WriteAttributeName(r rune) {
	t.attributeKey.WriteRune(r)
}

// WriteData appends a rune to the current data section (comment text).
func (t *TokenBuilder) WriteData(r rune) {
	t.data.WriteRune(r)
}

// WriteAttributeValue appends a rune to the attribute value currently being
// built.
func (t *TokenBuilder) WriteAttributeValue(r rune) {
	t.attributeValue.WriteRune(r)
}

// RemoveDuplicateAttributeName marks the in-progress attribute for dropping
// if its name already appeared earlier on this tag, so the first occurrence
// wins and later ones are parsed (to stay in sync with the input) but
// discarded.
func (t *TokenBuilder) RemoveDuplicateAttributeName() bool {
	if t.attributeNames[t.attributeKey.String()] {
		t.removeNextAttr = true
		return true
	}
	return false
}

// WriteName appends a rune to the tag/doctype name currently being built.
func (t *TokenBuilder) WriteName(r rune) {
	t.name.WriteRune(r)
}

// CommitAttribute finishes the current name/value pair, appending it to the
// attribute list unless it was flagged as a duplicate.
func (t *TokenBuilder) CommitAttribute() {
	if !t.removeNextAttr {
		k := t.attributeKey.String()
		v := t.attributeValue.String()
		if k != "" {
			t.attributes = append(t.attributes, spec.NewAttr(k, v))
			t.attributeNames[k] = true
		}
	}
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	t.removeNextAttr = false
}

// WriteTempBuffer appends a rune to the scratch buffer shared by several
// states (tag-name matching, character reference lookahead).
func (t *TokenBuilder) WriteTempBuffer(r rune) {
	t.tempBuffer.WriteRune(r)
}

// ResetTempBuffer clears the scratch buffer for reuse by another state.
func (t *TokenBuilder) ResetTempBuffer() {
	t.tempBuffer.Reset()
}

// TempBuffer returns the scratch buffer's contents.
func (t *TokenBuilder) TempBuffer() string {
	return t.tempBuffer.String()
}

// TempBufferCharTokens turns the scratch buffer's runes into one character
// token each, the shape a failed named character reference match is
// re-emitted as.
func (t *TokenBuilder) TempBufferCharTokens() []Token {
	runes := []rune(t.TempBuffer())
	tokens := make([]Token, len(runes))
	for i, r := range runes {
		tokens[i] = t.CharacterToken(r)
	}
	return tokens
}

// SetCharRef sets the character reference code point accumulator.
func (t *TokenBuilder) SetCharRef(i int) {
	t.characterReferenceCode = i
}

// GetCharRef returns the character reference code point accumulator.
func (t *TokenBuilder) GetCharRef() int {
	return t.characterReferenceCode
}

// AddToCharRef adds to the character reference code point accumulator.
func (t *TokenBuilder) AddToCharRef(i int) {
	t.characterReferenceCode += i
}

// MultByCharRef multiplies the character reference code point accumulator.
func (t *TokenBuilder) MultByCharRef(i int) {
	t.characterReferenceCode *= i
}

// Cmp three-way compares the character reference code point accumulator
// against i: -1 if less, 0 if equal, 1 if greater.
func (t *TokenBuilder) Cmp(i int) int {
	switch {
	case t.characterReferenceCode < i:
		return -1
	case t.characterReferenceCode > i:
		return 1
	default:
		return 0
	}
}

// StartTagToken builds a start tag token from the builder's contents.
func (t *TokenBuilder) StartTagToken() Token {
	return Token{
		TokenType:   startTagToken,
		TagName:     t.name.String(),
		Attributes:  t.attributes,
		SelfClosing: t.selfClosing,
	}
}

// EndTagToken builds an end tag token from the builder's contents.
func (t *TokenBuilder) EndTagToken() Token {
	return Token{
		TokenType:   endTagToken,
		TagName:     t.name.String(),
		Attributes:  t.attributes,
		SelfClosing: t.selfClosing,
	}
}

// CharacterToken builds a single-rune character token.
func (t *TokenBuilder) CharacterToken(r rune) Token {
	return Token{
		TokenType: characterToken,
		Data:      string(r),
	}
}

// EndOfFileToken builds the end-of-file token.
func (t *TokenBuilder) EndOfFileToken() Token {
	return Token{
		TokenType: endOfFileToken,
	}
}

// CommentToken builds a comment token from the builder's contents.
func (t *TokenBuilder) CommentToken() Token {
	return Token{
		TokenType: commentToken,
		Data:      t.data.String(),
	}
}

// DocTypeToken builds a doctype token from the builder's contents.
func (t *TokenBuilder) DocTypeToken() Token {
	return Token{
		TokenType:        docTypeToken,
		TagName:          t.name.String(),
		ForceQuirks:      t.forceQuirks,
		PublicIdentifier: t.publicID.String(),
		SystemIdentifier: t.systemID.String(),
	}
}

// Equal reports whether t and o carry the same type, name, data, and
// attributes. Attribute order doesn't matter, since nothing downstream
// depends on the order attributes appeared in the source markup.
func (t *Token) Equal(o *Token) bool {
	if o == nil {
		return false
	}
	if t.TokenType != o.TokenType ||
		t.TagName != o.TagName ||
		t.Data != o.Data ||
		t.PublicIdentifier != o.PublicIdentifier ||
		t.SystemIdentifier != o.SystemIdentifier ||
		t.ForceQuirks != o.ForceQuirks ||
		t.SelfClosing != o.SelfClosing {
		return false
	}
	if len(t.Attributes) != len(o.Attributes) {
		return false
	}
	for _, a := range t.Attributes {
		var match *spec.Attr
		for _, b := range o.Attributes {
			if b.Name == a.Name {
				match = b
				break
			}
		}
		if match == nil || match.Value != a.Value {
			return false
		}
	}
	return true
}

// String renders a token for test failure messages.
func (t *Token) String() string {
	var b strings.Builder
	switch t.TokenType {
	case characterToken:
		b.WriteString("Character(")
		b.WriteString(t.Data)
		b.WriteString(")")
	case commentToken:
		b.WriteString("Comment(")
		b.WriteString(t.Data)
		b.WriteString(")")
	case docTypeToken:
		b.WriteString("DocType(")
		b.WriteString(t.TagName)
		b.WriteString(", ")
		b.WriteString(t.PublicIdentifier)
		b.WriteString(", ")
		b.WriteString(t.SystemIdentifier)
		b.WriteString(")")
	case startTagToken, endTagToken:
		if t.TokenType == startTagToken {
			b.WriteString("StartTag(")
		} else {
			b.WriteString("EndTag(")
		}
		b.WriteString(t.TagName)
		for _, a := range t.Attributes {
			b.WriteString(" ")
			b.WriteString(a.Name)
			b.WriteString("=")
			b.WriteString(a.Value)
		}
		b.WriteString(")")
	case endOfFileToken:
		b.WriteString("EOF")
	}
	return b.String()
}
