package spec

// NamedNodeMap is an element's attribute list. https://dom.spec.whatwg.org/#namednodemap
//
// Attribute order is preserved exactly as the tokenizer committed it, first
// occurrence winning on duplicates, since the tokenizer's attribute
// de-duplication already enforces that invariant (see
// TokenBuilder.CommitAttribute) and callers that serialize a document expect
// source order back.
type NamedNodeMap struct {
	order             []string
	byName            map[string]*Attr
	AssociatedElement *Node
}

// NewNamedNodeMap builds a NamedNodeMap from an ordered attribute list,
// skipping any later duplicate names so the first occurrence always wins.
func NewNamedNodeMap(attrs []*Attr, oe *Node) *NamedNodeMap {
	m := &NamedNodeMap{
		byName:            make(map[string]*Attr, len(attrs)),
		AssociatedElement: oe,
	}
	for _, a := range attrs {
		if _, dup := m.byName[a.Name]; dup {
			continue
		}
		a.OwnerElement = oe
		m.byName[a.Name] = a
		m.order = append(m.order, a.Name)
	}
	return m
}

// Length is the number of attributes in the map.
func (n *NamedNodeMap) Length() int { return len(n.order) }

// Item returns the i'th attribute in source order, or nil if out of range.
func (n *NamedNodeMap) Item(i int) *Attr {
	if i < 0 || i >= len(n.order) {
		return nil
	}
	return n.byName[n.order[i]]
}

// GetNamedItem looks up an attribute by its qualified name.
func (n *NamedNodeMap) GetNamedItem(qualifiedName string) *Attr {
	return n.byName[qualifiedName]
}

// GetNamedItemNS looks up an attribute by namespace and local name.
func (n *NamedNodeMap) GetNamedItemNS(ns Namespace, localName string) *Attr {
	if v, ok := n.byName[localName]; ok && v.Namespace == ns {
		return v
	}
	return nil
}

// SetNamedItem inserts or replaces an attribute, returning any attribute it
// replaced.
func (n *NamedNodeMap) SetNamedItem(a *Attr) *Attr {
	a.OwnerElement = n.AssociatedElement
	old, existed := n.byName[a.Name]
	n.byName[a.Name] = a
	if !existed {
		n.order = append(n.order, a.Name)
		return nil
	}
	return old
}

// Names returns the attribute names in source order.
func (n *NamedNodeMap) Names() []string {
	return n.order
}
