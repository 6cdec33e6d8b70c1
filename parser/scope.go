package parser

import "github.com/dgnorton/htmlcore/parser/spec"

// Scope predicates over the stack of open elements, used throughout the tree
// construction insertion modes to decide whether an implied end tag or an
// error recovery step applies.

var baseScopeList = []string{
	"applet",
	"caption",
	"html",
	"table",
	"td",
	"th",
	"marquee",
	"object",
	"template",
	"mi",
	"mo",
	"mn",
	"ms",
	"mtext",
	"annotation-xml",
	"foreignObject",
	"desc",
	"title",
}

func appendCopy(base []string, extra ...string) []string {
	out := make([]string, len(base), len(base)+len(extra))
	copy(out, base)
	return append(out, extra...)
}

var listItemScopeList = appendCopy(baseScopeList, "ol", "ul")
var buttonScopeList = appendCopy(baseScopeList, "button")

func containsElementInSpecificScope(stack spec.NodeList, target string, list ...string) bool {
	for i := len(stack) - 1; i >= 0; i-- {
		entry := stack[i]
		if target == entry.NodeName {
			return true
		}
		for _, name := range list {
			if entry.NodeName == name {
				return false
			}
		}
	}
	return false
}

func containsElementInSpecificScopeExcept(stack spec.NodeList, target string, list ...string) bool {
	for i := len(stack) - 1; i >= 0; i-- {
		entry := stack[i]
		if target == entry.NodeName {
			return true
		}

		matched := false
		for _, name := range list {
			if entry.NodeName == name {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return false
}

func containsElementInScope(stack spec.NodeList, target string) bool {
	return containsElementInSpecificScope(stack, target, baseScopeList...)
}

func containsElementsInScope(stack spec.NodeList, elems ...string) bool {
	for _, elem := range elems {
		if containsElementInScope(stack, elem) {
			return true
		}
	}
	return false
}

func containsElementInListItemScope(stack spec.NodeList, target string) bool {
	return containsElementInSpecificScope(stack, target, listItemScopeList...)
}

func containsElementInButtonScope(stack spec.NodeList, target string) bool {
	return containsElementInSpecificScope(stack, target, buttonScopeList...)
}

func containsElementInTableScope(stack spec.NodeList, target string) bool {
	return containsElementInSpecificScope(stack, target, "html", "table", "template")
}

func containsElementInSelectScope(stack spec.NodeList, target string) bool {
	return containsElementInSpecificScopeExcept(stack, target, "optgroup", "option")
}

func containsElementsInTableScope(stack spec.NodeList, elems ...string) bool {
	for _, elem := range elems {
		if containsElementInTableScope(stack, elem) {
			return true
		}
	}
	return false
}
