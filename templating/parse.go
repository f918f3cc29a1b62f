package templating

import "strings"

// Parse builds a template tree. The root is a *LiteralNode with empty
// content whose children follow template order. Parse never fails:
// malformed placeholders are kept as literal text.
func Parse(template string) *LiteralNode {
	tokens := tokenize(template)

	root := &LiteralNode{
		Children: make([]Node, 0, len(tokens)),
	}

	for _, tok := range tokens {
		root.Children = append(root.Children, parseToken(tok))
	}

	return root
}

func parseToken(tok string) Node {
	if len(tok) >= len(OpenDelim)+len(CloseDelim) &&
		strings.HasPrefix(tok, OpenDelim) &&
		strings.HasSuffix(tok, CloseDelim) {
		return &VariableNode{
			Name: tok[len(OpenDelim) : len(tok)-len(CloseDelim)],
		}
	}

	return &LiteralNode{Content: tok}
}
