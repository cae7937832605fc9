// Package parse locates marker calls in source files using tree-sitter.
package parse

import (
	"context"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/livetune/internal/lang"
	"github.com/phobologic/livetune/internal/model"
)

// CallSites parses a source file and returns every call whose callee name
// equals marker, in the order the callee names appear in the text. The
// parser must be created for the correct language.
// filePath is used only for CallSite.File and should be the root-relative path.
func CallSites(l *lang.Language, parser *sitter.Parser, query *sitter.Query, source []byte, filePath, marker string) []model.CallSite {
	if len(source) == 0 || marker == "" {
		return nil
	}

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil
	}
	defer tree.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, tree.RootNode())

	type found struct {
		at   uint32
		site model.CallSite
	}
	var calls []found

	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		match = qc.FilterPredicates(match, source)

		var callNode, calleeNode, argsNode *sitter.Node
		for _, c := range match.Captures {
			switch query.CaptureNameForId(c.Index) {
			case "call":
				callNode = c.Node
			case "callee":
				calleeNode = c.Node
			case "args":
				argsNode = c.Node
			}
		}
		if callNode == nil || calleeNode == nil || argsNode == nil {
			continue
		}
		if lang.NodeText(calleeNode, source) != marker {
			continue
		}

		site := model.CallSite{
			File:   filePath,
			Line:   int(calleeNode.StartPoint().Row) + 1,
			Callee: calleeText(callNode, argsNode, source),
		}
		if arg := l.FirstArgument(argsNode); arg != nil {
			site.Literal = lang.NodeText(arg, source)
		}
		if l.FindEnclosingDef != nil {
			site.Scope = l.FindEnclosingDef(callNode, source)
		}
		calls = append(calls, found{at: calleeNode.StartByte(), site: site})
	}

	sort.SliceStable(calls, func(i, j int) bool { return calls[i].at < calls[j].at })

	sites := make([]model.CallSite, len(calls))
	for i, c := range calls {
		c.site.Ordinal = i
		sites[i] = c.site
	}
	return sites
}

// calleeText is everything in the call before its argument list, e.g.
// "speed.Live" for speed.Live(3).
func calleeText(call, args *sitter.Node, source []byte) string {
	return strings.TrimSpace(string(source[call.StartByte():args.StartByte()]))
}
