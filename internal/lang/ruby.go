package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"
)

func init() {
	Languages["ruby"] = &Language{
		Name:             "ruby",
		Extensions:       []string{".rb"},
		lang:             ruby.GetLanguage(),
		FindEnclosingDef: rubyFindEnclosingDef,
		SkipArgument: func(node *sitter.Node) bool {
			return node.Type() == "block_argument"
		},
	}
}

// rubyFindEnclosingDef returns the qualified name of the method containing
// the given call-site node (e.g., "MyClass.method" or "methodName").
// Returns "" if the call is at class/module body level or script top-level.
func rubyFindEnclosingDef(node *sitter.Node, source []byte) string {
	for current := node.Parent(); current != nil; current = current.Parent() {
		var methodName string
		switch current.Type() {
		case "method":
			methodName = childText(current, source, "identifier")
		case "singleton_method":
			// def self.foo: the last identifier is the name, not "self".
			for i := 0; i < int(current.ChildCount()); i++ {
				if child := current.Child(i); child.Type() == "identifier" {
					methodName = NodeText(child, source)
				}
			}
		default:
			continue
		}
		if methodName == "" {
			return ""
		}
		if cls := rubyFindEnclosingType(current, source); cls != "" {
			return cls + "." + methodName
		}
		return methodName
	}
	return ""
}

// rubyClassName extracts the name from a class or module node.
func rubyClassName(node *sitter.Node, source []byte) string {
	return childText(node, source, "constant", "scope_resolution")
}

// rubyFindEnclosingType walks up from node to find the enclosing class or
// module name. Returns "" if not inside a class/module.
func rubyFindEnclosingType(node *sitter.Node, source []byte) string {
	for current := node.Parent(); current != nil; current = current.Parent() {
		if current.Type() == "class" || current.Type() == "module" {
			return rubyClassName(current, source)
		}
	}
	return ""
}
