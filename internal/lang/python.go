package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

func init() {
	Languages["python"] = &Language{
		Name:             "python",
		Extensions:       []string{".py"},
		lang:             python.GetLanguage(),
		FindEnclosingDef: pythonFindEnclosingDef,
	}
}

// pythonFindEnclosingDef returns the qualified name of the function or method
// containing the given call-site node (e.g., "MyClass.method" or "funcName").
// Returns "" if the call is at module top-level.
func pythonFindEnclosingDef(node *sitter.Node, source []byte) string {
	for current := node.Parent(); current != nil; current = current.Parent() {
		if current.Type() != "function_definition" {
			continue
		}
		funcName := childText(current, source, "identifier")
		if funcName == "" {
			return ""
		}
		if cls := pythonFindEnclosingClass(current); cls != nil {
			if name := childText(cls, source, "identifier"); name != "" {
				return name + "." + funcName
			}
		}
		return funcName
	}
	return ""
}

func pythonFindEnclosingClass(funcNode *sitter.Node) *sitter.Node {
	parent := funcNode.Parent()
	if parent == nil {
		return nil
	}

	// Direct: func -> block -> class_definition
	if parent.Type() == "block" && parent.Parent() != nil && parent.Parent().Type() == "class_definition" {
		return parent.Parent()
	}

	// Decorated: func -> decorated_definition -> block -> class_definition
	if parent.Type() == "decorated_definition" {
		gp := parent.Parent()
		if gp != nil && gp.Type() == "block" && gp.Parent() != nil && gp.Parent().Type() == "class_definition" {
			return gp.Parent()
		}
	}

	return nil
}
