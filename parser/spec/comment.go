package spec

// Comment is a comment node's data. https://dom.spec.whatwg.org/#interface-comment
type Comment struct {
	*CharacterData
}
