package spec

// DocumentType holds a doctype token's name and public/system identifiers.
// https://dom.spec.whatwg.org/#documenttype
type DocumentType struct {
	Name     string
	PublicID string
	SystemID string
}
