package parser

import (
	"io"

	"github.com/dgnorton/htmlcore/parser/spec"
)

type Parser struct {
	Tokenizer       *HTMLTokenizer
	TreeConstructor *HTMLTreeConstructor
}

func NewParser(htmlIn io.Reader) *Parser {
	tokenizer := NewHTMLTokenizer(htmlIn)
	treeConstructor := NewHTMLTreeConstructor()
	tokenizer.diagnose = treeConstructor.logError
	return &Parser{
		Tokenizer:       tokenizer,
		TreeConstructor: treeConstructor,
	}
}

// defaultMaxOpenElementDepth bounds the stack of open elements against
// pathologically deep markup, matching mainstream parser implementation
// limits.
const defaultMaxOpenElementDepth = 512

// DefaultConfig returns the Config NewParser effectively runs with:
// scripting enabled (so <noscript> content tokenizes as raw text, the
// same branch a scripting-capable browser takes) and a 512-deep
// open-element stack cap.
func DefaultConfig() Config {
	return Config{
		ScriptingEnabled:    true,
		MaxOpenElementDepth: defaultMaxOpenElementDepth,
	}
}

// NewParserWithConfig is NewParser with explicit Config, letting a caller
// enable scripting, raise/lower the nesting cap, or redirect diagnostic
// logging.
func NewParserWithConfig(htmlIn io.Reader, cfg Config) *Parser {
	tokenizer := NewHTMLTokenizer(htmlIn)
	treeConstructor := NewHTMLTreeConstructorWithConfig(cfg)
	tokenizer.diagnose = treeConstructor.logError
	if cfg.Logger != nil {
		tokenizer.logger = cfg.Logger
	}
	return &Parser{
		Tokenizer:       tokenizer,
		TreeConstructor: treeConstructor,
	}
}

type Progress struct {
	AdjustedCurrentNode *spec.Node
	TokenizerState      *tokenizerState
}

func MakeProgress(adjCurNode *spec.Node, tokenizerState *tokenizerState) *Progress {
	return &Progress{
		AdjustedCurrentNode: adjCurNode,
		TokenizerState:      tokenizerState,
	}
}

func (p *Parser) Start() (*spec.Node, error) {
	start := dataState
	_, err := p.startAt(&start)
	if err != nil {
		return nil, err
	}
	return p.TreeConstructor.HTMLDocument, nil
}

// NewParserFromBytes determines data's character encoding (preferring
// transportCharset, a Content-Type header's charset parameter if the
// caller has one, over a <meta> declaration or BOM) and returns a Parser
// over the result decoded to UTF-8, recording the encoding used on the
// resulting Document.
func NewParserFromBytes(data []byte, transportCharset string) (*Parser, error) {
	reader, canonical, err := NewHTMLReader(data, transportCharset)
	if err != nil {
		return nil, err
	}
	p := NewParser(reader)
	p.TreeConstructor.HTMLDocument.Document.CharacterSet = canonical
	return p, nil
}

func (p *Parser) startAt(startState *tokenizerState) ([]*Token, error) {
	var (
		progress *Progress = MakeProgress(nil, startState)
		tokens             = []*Token{}
	)
	for p.Tokenizer.Next() {
		t, err := p.Tokenizer.Token(progress)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
		progress = p.TreeConstructor.ProcessToken(t)
	}

	return tokens, nil
}
