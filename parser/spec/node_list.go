package spec

// NodeList is an ordered collection of nodes, used both as the DOM's live
// child list and as the backing store for the stack of open elements and the
// list of active formatting elements. https://dom.spec.whatwg.org/#nodelist
type NodeList []*Node

// NodeRewinder walks a NodeList from its tail towards its head, the
// direction the adoption agency algorithm and active formatting element
// reconstruction both need.
type NodeRewinder struct {
	nodeList NodeList
	i        int
}

func (n *NodeRewinder) Prev() bool {
	return n.i >= 0
}

func (n *NodeRewinder) Node() *Node {
	if n.i >= 0 && n.i < len(n.nodeList) {
		node := n.nodeList[n.i]
		n.i--
		return node
	}
	return nil
}

func NewNodeRewinder(nl NodeList) *NodeRewinder {
	return &NodeRewinder{
		nodeList: nl,
		i:        len(nl) - 1,
	}
}

func (n *NodeRewinder) WithStart(i int) *NodeRewinder {
	n.i = i
	return n
}

// NodeIterator walks a NodeList from head towards tail.
type NodeIterator struct {
	nodeList NodeList
	i        int
}

func (n *NodeIterator) Next() bool {
	return n.i < len(n.nodeList)
}

func (n *NodeIterator) Node() *Node {
	if n.i >= 0 && n.i < len(n.nodeList) {
		node := n.nodeList[n.i]
		n.i++
		return node
	}
	return nil
}

func NewNodeIterator(nl NodeList) *NodeIterator {
	return &NodeIterator{
		nodeList: nl,
		i:        0,
	}
}

func (n *NodeIterator) WithStart(i int) *NodeIterator {
	n.i = i
	return n
}

func (n *NodeIterator) WithStartFrom(sn *Node) *NodeIterator {
	if sn == nil {
		return n
	}
	i := n.nodeList.Contains(sn)

	if i == -1 {
		return n
	}
	n.i = i
	return n
}

// Contains returns the index of n within the list, or -1.
func (h *NodeList) Contains(n *Node) int {
	for i := range *h {
		if n == (*h)[i] {
			return i
		}
	}
	return -1
}

// Remove deletes and returns the node at index i.
func (h *NodeList) Remove(i int) *Node {
	if i < 0 || i >= len(*h) {
		return nil
	}
	node := (*h)[i]
	*h = append((*h)[:i], (*h)[i+1:]...)
	return node
}

// WedgeIn inserts n at index i, shifting everything from i onward right.
func (h *NodeList) WedgeIn(i int, n *Node) {
	if i < 0 {
		return
	}
	if i >= len(*h) {
		*h = append(*h, n)
		return
	}
	*h = append((*h)[:i+1], (*h)[i:]...)
	(*h)[i] = n
}

// Pop removes and returns the last node in the list.
func (h *NodeList) Pop() *Node {
	if len(*h) == 0 {
		return nil
	}
	popped := (*h)[len(*h)-1]
	*h = (*h)[:len(*h)-1]
	return popped
}

// PopUntil pops repeatedly until a node whose name matches first or rest is
// popped, and returns that node.
func (h *NodeList) PopUntil(first string, rest ...string) *Node {
	var popped *Node
	for {
		popped = h.Pop()
		if popped == nil {
			return nil
		}

		if popped.NodeName == first {
			return popped
		}
		for _, tagName := range rest {
			if popped.NodeName == tagName {
				return popped
			}
		}
	}
}

// PopUntilConditions pops until the top of the list satisfies any of funcs,
// without popping that final matching node.
func (h *NodeList) PopUntilConditions(funcs ...func(e *Node) bool) *Node {
	for {
		last := len(*h) - 1
		if last < 0 {
			return nil
		}
		for _, f := range funcs {
			if f((*h)[last]) {
				return (*h)[last]
			}
		}

		h.Pop()
	}
}

// StackOfOpenElements is the tree constructor's stack of open elements.
// https://html.spec.whatwg.org/multipage/parsing.html#the-stack-of-open-elements
type StackOfOpenElements struct {
	NodeList
}

func (s *StackOfOpenElements) Push(n *Node) {
	s.NodeList = append(s.NodeList, n)
}

// ActiveFormattingElements is the tree constructor's list of active
// formatting elements, including its ScopeMarker entries.
// https://html.spec.whatwg.org/multipage/parsing.html#list-of-active-formatting-elements
type ActiveFormattingElements struct {
	NodeList
}

// Push appends n, first applying the Noah's Ark clause: if three elements
// with the same tag name, namespace, and attributes already appear since the
// last marker, the earliest of those is removed.
// https://html.spec.whatwg.org/multipage/parsing.html#push-onto-the-list-of-active-formatting-elements
func (s *ActiveFormattingElements) Push(n *Node) {
	if len(s.NodeList) < 3 {
		s.NodeList = append(s.NodeList, n)
		return
	}

	iter := NewNodeIterator(s.NodeList)
	rewinder := NewNodeRewinder(s.NodeList)
	for rewinder.Prev() {
		node := rewinder.Node()
		if node == ScopeMarker {
			iter.WithStartFrom(node)
			break
		}
	}

	similarNodes := []*Node{}
	for iter.Next() {
		node := iter.Node()
		if !compareNodes(node, n) {
			continue
		}

		similarNodes = append(similarNodes, node)
		if len(similarNodes) >= 3 {
			s.NodeList.Remove(s.NodeList.Contains(similarNodes[0]))
			similarNodes = similarNodes[:len(similarNodes)-1]
		}
	}

	s.NodeList = append(s.NodeList, n)
}

func compareNodes(a, b *Node) bool {
	if a.NodeType != ElementNode || b.NodeType != ElementNode {
		return false
	}
	if a.NodeName != b.NodeName {
		return false
	}

	if a.Element.Namespace != b.Element.Namespace {
		return false
	}

	if a.Attributes.Length() != b.Attributes.Length() {
		return false
	}

	for _, name := range b.Attributes.Names() {
		v := b.Attributes.GetNamedItem(name)
		e := a.Attributes.GetNamedItem(name)
		if e == nil {
			return false
		}
		if v.Namespace != e.Namespace || v.Value != e.Value {
			return false
		}
	}

	return true
}
