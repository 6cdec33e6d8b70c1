package parser

import "github.com/sirupsen/logrus"

// parseError names one of the recoverable error conditions the tree
// constructor and tokenizer can run into while processing markup that
// doesn't conform to the grammar. None of them abort parsing; they exist so
// a caller can surface "your HTML is malformed here" diagnostics the way a
// browser's devtools console would.
type parseError uint16

const (
	noError parseError = iota
	generalParseError
	unexpectedDoctype
	missingDoctype
	doctypeInWrongPlace
	unexpectedStartTag
	unexpectedEndTag
	unexpectedCharacter
	unexpectedEOF
	misnestedTag
	adoptionAgencyLoopLimitExceeded
	duplicateAttribute
	selfClosingFlagOnNonVoidElement
	endTagWithAttributes
	tableContentOutsideCell
	unclosedElements
)

func (e parseError) String() string {
	switch e {
	case noError:
		return "no-error"
	case unexpectedDoctype:
		return "unexpected-doctype"
	case missingDoctype:
		return "missing-doctype"
	case doctypeInWrongPlace:
		return "doctype-in-wrong-place"
	case unexpectedStartTag:
		return "unexpected-start-tag"
	case unexpectedEndTag:
		return "unexpected-end-tag"
	case unexpectedCharacter:
		return "unexpected-character"
	case unexpectedEOF:
		return "unexpected-eof"
	case misnestedTag:
		return "misnested-tag"
	case adoptionAgencyLoopLimitExceeded:
		return "adoption-agency-loop-limit-exceeded"
	case duplicateAttribute:
		return "duplicate-attribute"
	case selfClosingFlagOnNonVoidElement:
		return "self-closing-flag-on-non-void-element"
	case endTagWithAttributes:
		return "end-tag-with-attributes"
	case tableContentOutsideCell:
		return "table-content-outside-cell"
	case unclosedElements:
		return "unclosed-elements"
	default:
		return "general-parse-error"
	}
}

// Diagnostic is one parse error surfaced to callers inspecting a Parser's
// output, tagged with the insertion mode active when it fired.
type Diagnostic struct {
	Kind string
	Mode string
}

// logError records a parse error against the tree constructor's diagnostic
// log and emits it at Debug level; these fire constantly on real-world
// markup (a stray </br>, an unclosed <p>) so they aren't warnings.
func (c *HTMLTreeConstructor) logError(err parseError) {
	c.diagnostics = append(c.diagnostics, Diagnostic{Kind: err.String(), Mode: c.insertionMode.String()})
	c.logger.WithFields(logrus.Fields{
		"error": err.String(),
		"mode":  c.insertionMode.String(),
	}).Debug("parse error")
}

// Diagnostics returns every parse error collected while constructing the
// tree, in the order encountered.
func (c *HTMLTreeConstructor) Diagnostics() []Diagnostic {
	return c.diagnostics
}

// Config controls optional tree-construction behavior.
type Config struct {
	ScriptingEnabled    bool
	MaxOpenElementDepth int
	Logger              logrus.FieldLogger
}
