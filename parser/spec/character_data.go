package spec

// CharacterData is the shared data holder for Text and Comment nodes.
// https://dom.spec.whatwg.org/#characterdata
type CharacterData struct {
	Data string
}

// Length is the number of code units in Data.
func (c *CharacterData) Length() int { return len(c.Data) }
