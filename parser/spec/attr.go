package spec

// Attr is an HTML element attribute. https://dom.spec.whatwg.org/#attr
//
// Unlike the rest of the DOM surface, Attr is not wrapped in Node: the
// tokenizer and tree constructor only ever need name/value/namespace, never
// parent/sibling links, and giving attributes a place in the document tree
// would make the Noah's Ark comparison in the active formatting elements
// list (see ActiveFormattingElements.Push) walk two different node shapes
// instead of one.
type Attr struct {
	Namespace    Namespace
	Prefix       string
	LocalName    string
	Name         string
	Value        string
	OwnerElement *Node
}

// NewAttr builds an Attr with the given qualified name and value, unqualified
// by any namespace. This is what the tree constructor uses for ordinary HTML
// attributes; ForeignAttr is used once the foreign content adjustment tables
// apply.
func NewAttr(name, value string) *Attr {
	return &Attr{Name: name, LocalName: name, Value: value}
}

// ForeignAttr builds an Attr with an explicit namespace/prefix, used when
// adjusting foreign (SVG/MathML) attribute names per the foreign content
// insertion algorithm.
func ForeignAttr(ns Namespace, prefix, localName, value string) *Attr {
	name := localName
	if prefix != "" {
		name = prefix + ":" + localName
	}
	return &Attr{Namespace: ns, Prefix: prefix, LocalName: localName, Name: name, Value: value}
}
