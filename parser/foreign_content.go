package parser

import (
	"strings"

	"github.com/dgnorton/htmlcore/parser/spec"
)

// This file implements the rules for parsing tokens in foreign content
// (MathML and SVG), including the namespace/attribute adjustments WHATWG
// defines for the handful of case-sensitive SVG and MathML attributes that
// don't round-trip through the tokenizer's ASCII-lowercasing.
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-tokens-in-foreign-content

var mathMLTextIntegrationPointNames = []string{"mi", "mo", "mn", "ms", "mtext"}
var htmlIntegrationPointSVGNames = []string{"foreignObject", "desc", "title"}

func mathMLTextIntegrationPoint(n *spec.Node) bool {
	return n.Element != nil && n.Element.Namespace == spec.Mathmlns && isOneOf(n.NodeName, mathMLTextIntegrationPointNames...)
}

// isHTMLIntegrationPoint reports whether n is a MathML or SVG element that
// HTML content is allowed to nest inside directly.
// https://html.spec.whatwg.org/multipage/parsing.html#html-integration-point
func isHTMLIntegrationPoint(n *spec.Node) bool {
	if n.Element == nil {
		return false
	}
	if n.Element.Namespace == spec.Mathmlns && n.NodeName == "annotation-xml" {
		if encoding, ok := attrValue(n, "encoding"); ok {
			lower := strings.ToLower(encoding)
			if lower == "text/html" || lower == "application/xhtml+xml" {
				return true
			}
		}
		return false
	}
	return n.Element.Namespace == spec.Svgns && isOneOf(n.NodeName, htmlIntegrationPointSVGNames...)
}

func attrValue(n *spec.Node, name string) (string, bool) {
	a := n.Attributes.GetNamedItem(name)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

var svgTagNameAdjustments = map[string]string{
	"altglyph":            "altGlyph",
	"altglyphdef":         "altGlyphDef",
	"altglyphitem":        "altGlyphItem",
	"animatecolor":        "animateColor",
	"animatemotion":       "animateMotion",
	"animatetransform":    "animateTransform",
	"clippath":            "clipPath",
	"feblend":             "feBlend",
	"fecolormatrix":       "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer",
	"fecomposite":         "feComposite",
	"feconvolvematrix":    "feConvolveMatrix",
	"fediffuselighting":   "feDiffuseLighting",
	"fedisplacementmap":   "feDisplacementMap",
	"fedistantlight":      "feDistantLight",
	"fedropshadow":        "feDropShadow",
	"feflood":             "feFlood",
	"fefunca":             "feFuncA",
	"fefuncb":             "feFuncB",
	"fefuncg":             "feFuncG",
	"fefuncr":             "feFuncR",
	"fegaussianblur":      "feGaussianBlur",
	"feimage":             "feImage",
	"femerge":             "feMerge",
	"femergenode":         "feMergeNode",
	"femorphology":        "feMorphology",
	"feoffset":            "feOffset",
	"fepointlight":        "fePointLight",
	"fespecularlighting":  "feSpecularLighting",
	"fespotlight":         "feSpotLight",
	"fetile":              "feTile",
	"feturbulence":        "feTurbulence",
	"foreignobject":       "foreignObject",
	"glyphref":            "glyphRef",
	"lineargradient":      "linearGradient",
	"radialgradient":      "radialGradient",
	"textpath":            "textPath",
}

func adjustSVGTagName(t *Token) {
	if adjusted, ok := svgTagNameAdjustments[t.TagName]; ok {
		t.TagName = adjusted
	}
}

var svgAttributeAdjustments = map[string]string{
	"attributename":       "attributeName",
	"attributetype":       "attributeType",
	"basefrequency":       "baseFrequency",
	"baseprofile":         "baseProfile",
	"calcmode":            "calcMode",
	"clippathunits":       "clipPathUnits",
	"diffuseconstant":     "diffuseConstant",
	"edgemode":            "edgeMode",
	"filterunits":         "filterUnits",
	"glyphref":            "glyphRef",
	"gradienttransform":   "gradientTransform",
	"gradientunits":       "gradientUnits",
	"kernelmatrix":        "kernelMatrix",
	"kernelunitlength":    "kernelUnitLength",
	"keypoints":           "keyPoints",
	"keysplines":          "keySplines",
	"keytimes":            "keyTimes",
	"lengthadjust":        "lengthAdjust",
	"limitingconeangle":   "limitingConeAngle",
	"markerheight":        "markerHeight",
	"markerunits":         "markerUnits",
	"markerwidth":         "markerWidth",
	"maskcontentunits":    "maskContentUnits",
	"maskunits":           "maskUnits",
	"numoctaves":          "numOctaves",
	"pathlength":          "pathLength",
	"patterncontentunits": "patternContentUnits",
	"patterntransform":    "patternTransform",
	"patternunits":        "patternUnits",
	"pointsatx":           "pointsAtX",
	"pointsaty":           "pointsAtY",
	"pointsatz":           "pointsAtZ",
	"preservealpha":       "preserveAlpha",
	"preserveaspectratio": "preserveAspectRatio",
	"primitiveunits":      "primitiveUnits",
	"refx":                "refX",
	"refy":                "refY",
	"repeatcount":         "repeatCount",
	"repeatdur":           "repeatDur",
	"requiredextensions":  "requiredExtensions",
	"requiredfeatures":    "requiredFeatures",
	"specularconstant":    "specularConstant",
	"specularexponent":    "specularExponent",
	"spreadmethod":        "spreadMethod",
	"startoffset":         "startOffset",
	"stddeviation":        "stdDeviation",
	"stitchtiles":         "stitchTiles",
	"surfacescale":        "surfaceScale",
	"systemlanguage":      "systemLanguage",
	"tablevalues":         "tableValues",
	"targetx":             "targetX",
	"targety":             "targetY",
	"textlength":          "textLength",
	"viewbox":             "viewBox",
	"viewtarget":          "viewTarget",
	"xchannelselector":    "xChannelSelector",
	"ychannelselector":    "yChannelSelector",
	"zoomandpan":          "zoomAndPan",
}

func adjustSVGAttributes(t *Token) {
	for _, a := range t.Attributes {
		if adjusted, ok := svgAttributeAdjustments[a.Name]; ok {
			a.Name = adjusted
			a.LocalName = adjusted
		}
	}
}

func adjustMathMLAttributes(t *Token) {
	for _, a := range t.Attributes {
		if a.Name == "definitionurl" {
			a.Name = "definitionURL"
			a.LocalName = "definitionURL"
		}
	}
}

type foreignAttrAdjustment struct {
	ns        spec.Namespace
	prefix    string
	localName string
}

var foreignAttributeAdjustments = map[string]foreignAttrAdjustment{
	"xlink:actuate": {spec.Xlinkns, "xlink", "actuate"},
	"xlink:arcrole": {spec.Xlinkns, "xlink", "arcrole"},
	"xlink:href":    {spec.Xlinkns, "xlink", "href"},
	"xlink:role":    {spec.Xlinkns, "xlink", "role"},
	"xlink:show":    {spec.Xlinkns, "xlink", "show"},
	"xlink:title":   {spec.Xlinkns, "xlink", "title"},
	"xlink:type":    {spec.Xlinkns, "xlink", "type"},
	"xml:lang":      {spec.Xmlns, "xml", "lang"},
	"xml:space":     {spec.Xmlns, "xml", "space"},
	"xmlns":         {spec.Xmlnsns, "", "xmlns"},
	"xmlns:xlink":   {spec.Xmlnsns, "xmlns", "xlink"},
}

// adjustForeignAttributes assigns namespace/prefix/localName for the small
// set of attributes (xlink:*, xml:*, xmlns*) that carry a fixed namespace
// when they appear on a foreign element.
// https://html.spec.whatwg.org/multipage/parsing.html#adjust-foreign-attributes
func adjustForeignAttributes(t *Token) {
	for _, a := range t.Attributes {
		if adj, ok := foreignAttributeAdjustments[a.Name]; ok {
			a.Namespace = adj.ns
			a.Prefix = adj.prefix
			a.LocalName = adj.localName
		}
	}
}

// htmlBreakoutStartTags is the set of start tags that, when seen in foreign
// content, close out of it back into HTML content rather than nesting.
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inforeign
var htmlBreakoutStartTags = []string{
	"b", "big", "blockquote", "body", "br", "center", "code", "dd", "div",
	"dl", "dt", "em", "embed", "h1", "h2", "h3", "h4", "h5", "h6", "head",
	"hr", "i", "img", "li", "listing", "menu", "meta", "nobr", "ol", "p",
	"pre", "ruby", "s", "small", "span", "strong", "strike", "sub", "sup",
	"table", "tt", "u", "ul", "var",
}

func (c *HTMLTreeConstructor) processTokenForeignContent(t *Token) {
	switch t.TokenType {
	case characterToken:
		if t.Data == "\x00" {
			c.logError(unexpectedCharacter)
			c.insertCharacter("�")
			return
		}
		c.insertCharacter(t.Data)
		if !isWhitespace([]rune(t.Data)[0]) {
			c.framesetOK = false
		}
		return
	case commentToken:
		c.insertComment(t)
		return
	case docTypeToken:
		c.logError(unexpectedDoctype)
		return
	case startTagToken:
		if isOneOf(t.TagName, htmlBreakoutStartTags...) ||
			(t.TagName == "font" && (hasAttr(t, "color") || hasAttr(t, "face") || hasAttr(t, "size"))) {
			c.logError(unexpectedStartTag)
			for c.stackContainsForeignOnly() {
				c.stackOfOpenElements.Pop()
			}
			c.processTokenByMode(c.insertionMode, t)
			return
		}

		ns := c.adjustedCurrentNode().Element.Namespace
		if ns == spec.Mathmlns {
			adjustMathMLAttributes(t)
		}
		if ns == spec.Svgns {
			adjustSVGTagName(t)
			adjustSVGAttributes(t)
		}
		adjustForeignAttributes(t)
		el := c.insertForeignElement(t, ns)
		if t.SelfClosing {
			c.stackOfOpenElements.NodeList.Remove(c.stackOfOpenElements.Contains(el))
		}
		return
	case endTagToken:
		if t.TagName == "script" && c.currentNode() != nil && c.currentNode().NodeName == "script" &&
			c.currentNode().Element != nil && c.currentNode().Element.Namespace == spec.Svgns {
			c.stackOfOpenElements.Pop()
			return
		}

		for i := len(c.stackOfOpenElements.NodeList) - 1; i >= 0; i-- {
			node := c.stackOfOpenElements.NodeList[i]
			if i == 0 {
				return
			}
			if strings.EqualFold(node.NodeName, t.TagName) {
				for len(c.stackOfOpenElements.NodeList) > i {
					c.stackOfOpenElements.Pop()
				}
				return
			}
			if node.Element != nil && node.Element.Namespace == spec.Htmlns {
				c.processTokenByMode(c.insertionMode, t)
				return
			}
		}
	}
}

func hasAttr(t *Token, name string) bool {
	_, ok := tokenAttr(t, name)
	return ok
}

func (c *HTMLTreeConstructor) stackContainsForeignOnly() bool {
	cur := c.currentNode()
	if cur == nil || cur.Element == nil {
		return false
	}
	return cur.Element.Namespace != spec.Htmlns && !mathMLTextIntegrationPoint(cur) && !isHTMLIntegrationPoint(cur)
}
