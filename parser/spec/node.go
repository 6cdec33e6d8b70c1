package spec

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// NodeType discriminates which of the embedded pointers on Node is valid.
// https://dom.spec.whatwg.org/#node
type NodeType uint16

const (
	ElementNode NodeType = iota + 1
	TextNode
	CommentNode
	DocumentNode
	DocumentTypeNode
	// ScopeMarkerNode never appears in a real document; it is pushed onto
	// the list of active formatting elements as the "marker" boundary the
	// adoption agency algorithm and reconstructActiveFormattingElements
	// rewind to.
	ScopeMarkerNode
)

// ScopeMarker is the sentinel pushed onto the active formatting elements
// list at the start of table cells, captions, object elements and similar
// scoping boundaries.
var ScopeMarker = &Node{NodeType: ScopeMarkerNode, NodeName: "marker"}

// Node is the DOM tree's tagged-union node representation: every node in the
// tree is a *Node, and NodeType says which of the embedded type pointers is
// populated. This mirrors how the tree constructor's algorithms are written
// against the spec ("if type is Document... if type is Element...") more
// directly than a Go interface with per-kind methods would.
type Node struct {
	NodeType      NodeType
	NodeName      string
	OwnerDocument *Node

	ParentNode, FirstChild, LastChild, PreviousSibling, NextSibling *Node
	ChildNodes                                                      NodeList

	*Element
	*Text
	*Comment
	*Document
	*DocumentType
}

// NewElement creates an element node in the given namespace, owned by od.
func NewElement(od *Node, name string, ns Namespace, attrs []*Attr) *Node {
	n := &Node{
		NodeType:      ElementNode,
		NodeName:      name,
		OwnerDocument: od,
		Element: &Element{
			Namespace: ns,
			LocalName: name,
		},
	}
	n.Attributes = NewNamedNodeMap(attrs, n)
	return n
}

// NewTextNode creates a text node holding the given data.
func NewTextNode(od *Node, data string) *Node {
	return &Node{
		NodeType:      TextNode,
		OwnerDocument: od,
		Text:          &Text{CharacterData: &CharacterData{Data: data}},
	}
}

// NewComment creates a comment node holding the given data.
func NewComment(data string, od *Node) *Node {
	return &Node{
		NodeType:      CommentNode,
		OwnerDocument: od,
		Comment:       &Comment{CharacterData: &CharacterData{Data: data}},
	}
}

// NewDocTypeNode creates a doctype node. Public/system IDs of "" mean
// "missing" per the tokenizer's doctype token contract.
func NewDocTypeNode(name, publicID, systemID string) *Node {
	return &Node{
		NodeType:     DocumentTypeNode,
		NodeName:     name,
		DocumentType: &DocumentType{Name: name, PublicID: publicID, SystemID: systemID},
	}
}

// NewDocumentNode creates an empty document node, the root of a parse.
func NewDocumentNode() *Node {
	n := &Node{NodeType: DocumentNode, NodeName: "#document", Document: &Document{}}
	n.OwnerDocument = n
	return n
}

// HasChildNodes reports whether the node has any children.
func (n *Node) HasChildNodes() bool { return len(n.ChildNodes) > 0 }

// AppendChild appends on as the last child of n, maintaining sibling links.
// https://dom.spec.whatwg.org/#concept-node-append
func (n *Node) AppendChild(on *Node) *Node {
	if n.LastChild != nil {
		on.PreviousSibling = n.LastChild
		n.LastChild.NextSibling = on
	} else {
		n.FirstChild = on
	}
	on.NextSibling = nil
	on.ParentNode = n
	n.LastChild = on
	n.ChildNodes = append(n.ChildNodes, on)
	logDOMMutation("AppendChild", n, on)
	return on
}

// InsertBefore inserts on immediately before child, or appends it if child is
// nil or not found among n's children.
// https://dom.spec.whatwg.org/#concept-node-insert
func (n *Node) InsertBefore(on, child *Node) *Node {
	if child == nil {
		return n.AppendChild(on)
	}
	i := n.ChildNodes.Contains(child)
	if i == -1 {
		return n.AppendChild(on)
	}

	on.ParentNode = n
	on.NextSibling = child
	on.PreviousSibling = child.PreviousSibling
	if child.PreviousSibling != nil {
		child.PreviousSibling.NextSibling = on
	} else {
		n.FirstChild = on
	}
	child.PreviousSibling = on

	n.ChildNodes = append(n.ChildNodes, nil)
	copy(n.ChildNodes[i+1:], n.ChildNodes[i:])
	n.ChildNodes[i] = on

	logDOMMutation("InsertBefore", n, on)
	return on
}

// RemoveChild detaches child from n, relinking its former siblings.
// https://dom.spec.whatwg.org/#concept-node-remove
func (n *Node) RemoveChild(child *Node) *Node {
	i := n.ChildNodes.Contains(child)
	if i == -1 {
		return nil
	}
	n.ChildNodes.Remove(i)

	if child.PreviousSibling != nil {
		child.PreviousSibling.NextSibling = child.NextSibling
	} else {
		n.FirstChild = child.NextSibling
	}
	if child.NextSibling != nil {
		child.NextSibling.PreviousSibling = child.PreviousSibling
	} else {
		n.LastChild = child.PreviousSibling
	}
	child.ParentNode = nil
	child.PreviousSibling = nil
	child.NextSibling = nil

	logDOMMutation("RemoveChild", n, child)
	return child
}

// CloneNode clones n. If deep is true, its descendants are cloned too.
// https://dom.spec.whatwg.org/#concept-node-clone
func (n *Node) CloneNode(deep bool) *Node {
	clone := &Node{NodeType: n.NodeType, NodeName: n.NodeName, OwnerDocument: n.OwnerDocument}
	switch n.NodeType {
	case ElementNode:
		attrs := make([]*Attr, 0, n.Attributes.Length())
		for _, name := range n.Attributes.Names() {
			a := n.Attributes.GetNamedItem(name)
			attrs = append(attrs, &Attr{Namespace: a.Namespace, Prefix: a.Prefix, LocalName: a.LocalName, Name: a.Name, Value: a.Value})
		}
		clone.Element = &Element{Namespace: n.Element.Namespace, Prefix: n.Element.Prefix, LocalName: n.Element.LocalName}
		clone.Attributes = NewNamedNodeMap(attrs, clone)
	case TextNode:
		clone.Text = &Text{CharacterData: &CharacterData{Data: n.Text.Data}}
	case CommentNode:
		clone.Comment = &Comment{CharacterData: &CharacterData{Data: n.Comment.Data}}
	case DocumentTypeNode:
		clone.DocumentType = &DocumentType{Name: n.DocumentType.Name, PublicID: n.DocumentType.PublicID, SystemID: n.DocumentType.SystemID}
	case DocumentNode:
		clone.Document = &Document{QuirksMode: n.Document.QuirksMode}
		clone.OwnerDocument = clone
	}

	if deep {
		for _, child := range n.ChildNodes {
			clone.AppendChild(child.CloneNode(true))
		}
	}
	return clone
}

// InnerText concatenates the data of every descendant text node, depth
// first, matching the DOM's innerText surface named for the query API.
func (n *Node) InnerText() string {
	var b strings.Builder
	var walk func(*Node)
	walk = func(cur *Node) {
		if cur.NodeType == TextNode {
			b.WriteString(cur.Text.Data)
		}
		for _, child := range cur.ChildNodes {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

func serializeNodeType(node *Node) string {
	switch node.NodeType {
	case ElementNode:
		e := "<"
		switch node.Element.Namespace {
		case Svgns:
			e += "svg "
		case Mathmlns:
			e += "math "
		}
		e += node.NodeName
		names := append([]string{}, node.Attributes.Names()...)
		sort.Strings(names)
		for _, name := range names {
			attr := node.Attributes.GetNamedItem(name)
			e += " " + name + "=\"" + attr.Value + "\""
		}
		return e + ">"
	case TextNode:
		return "\"" + node.Text.Data + "\""
	case CommentNode:
		return "<!-- " + node.Comment.Data + " -->"
	case DocumentTypeNode:
		d := "<!DOCTYPE " + node.DocumentType.Name
		if node.DocumentType.PublicID != "" || node.DocumentType.SystemID != "" {
			d += " \"" + node.DocumentType.PublicID + "\" \"" + node.DocumentType.SystemID + "\""
		}
		return d + ">"
	case DocumentNode:
		return "#document"
	default:
		return ""
	}
}

func (node *Node) serialize(indent int) string {
	pad := strings.Repeat("  ", indent)
	ser := pad + serializeNodeType(node) + "\n"
	for _, child := range node.ChildNodes {
		ser += child.serialize(indent + 1)
	}
	return ser
}

// String renders the node and its descendants as an indented debug tree,
// used by tests to assert on tree shape.
func (node *Node) String() string {
	return strings.TrimRight(node.serialize(0), "\n")
}

func logDOMMutation(op string, parent, target *Node) {
	logrus.WithFields(logrus.Fields{"op": op, "parent": parent.NodeName, "node": target.NodeName}).Debug("dom mutation")
}
