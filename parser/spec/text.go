package spec

// Text is a text node's data. https://dom.spec.whatwg.org/#text
type Text struct {
	*CharacterData
}
