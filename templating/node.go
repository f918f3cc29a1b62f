package templating

// Node is a parsed template element. The set of implementations is
// closed: *LiteralNode and *VariableNode.
type Node interface {
	node()
}

// LiteralNode holds verbatim text. Children are rendered after
// Content, in order.
type LiteralNode struct {
	Children []Node
	Content  string
}

// VariableNode is a placeholder resolved at render time. Name is the
// text between the delimiters, untrimmed.
type VariableNode struct {
	Name string
}

func (*LiteralNode) node()  {}
func (*VariableNode) node() {}
