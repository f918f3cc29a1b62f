package templating

import (
	"fmt"
	"strings"
)

// Render produces the output of node. Unbound variables render as the
// empty string. A nil bindings map is treated as empty. Render only
// reads node and bindings, so one tree may be rendered concurrently.
func Render(node Node, bindings map[string]string) string {
	var sb strings.Builder

	renderTo(&sb, node, bindings)

	return sb.String()
}

// Execute parses template and renders it against bindings.
func Execute(template string, bindings map[string]string) string {
	return Render(Parse(template), bindings)
}

func renderTo(
	sb *strings.Builder,
	node Node,
	bindings map[string]string,
) {
	switch nd := node.(type) {
	case *LiteralNode:
		sb.WriteString(nd.Content)

		for _, child := range nd.Children {
			renderTo(sb, child, bindings)
		}
	case *VariableNode:
		sb.WriteString(bindings[nd.Name])
	default:
		panic(fmt.Sprintf("templating: unknown node type %T", node))
	}
}

// Variables returns the variable names referenced under node, in order
// of first appearance and without duplicates.
func Variables(node Node) []string {
	var (
		names []string
		seen  = make(map[string]struct{})
	)

	var walk func(Node)

	walk = func(nd Node) {
		switch nd := nd.(type) {
		case *LiteralNode:
			for _, child := range nd.Children {
				walk(child)
			}
		case *VariableNode:
			if _, ok := seen[nd.Name]; ok {
				return
			}

			seen[nd.Name] = struct{}{}
			names = append(names, nd.Name)
		default:
			panic(fmt.Sprintf("templating: unknown node type %T", nd))
		}
	}

	walk(node)

	return names
}

// Unbound returns the variables under node that have no entry in
// bindings, in order of first appearance.
func Unbound(node Node, bindings map[string]string) []string {
	var missing []string

	for _, name := range Variables(node) {
		if _, ok := bindings[name]; !ok {
			missing = append(missing, name)
		}
	}

	return missing
}
