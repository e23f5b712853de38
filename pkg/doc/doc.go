// Package doc builds indentation-aware text layouts.
//
// A Builder accumulates a tree of layout nodes: literal text, breakable
// points, and groups with open/close delimiters and an indent increment.
// Resolving the tree is a single top-down pass. There is no line fitting:
// every breakable point becomes a newline followed by the current indent,
// and every non-empty group closes on its own line.
//
//	b := doc.New()
//	b.Group(2, "[", "]", func() {
//		b.Breakable()
//		b.Text("1")
//	})
//	b.String() // "[\n  1\n]"
package doc

import (
	"io"
	"strings"
)

// Kind identifies a layout node variant.
type Kind int

const (
	KindText Kind = iota
	KindBreak
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBreak:
		return "break"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Node is one element of a layout tree.
//
// Text nodes hold already-styled content with no internal breakable points.
// Group nodes increase the indent level of their children by Indent and
// wrap them in Open and Close. A group with an empty Close is an
// indentation scope only and never emits a closing break.
type Node struct {
	Kind     Kind
	Text     string
	Indent   int
	Open     string
	Close    string
	Children []*Node
}

// Text returns a text node.
func Text(s string) *Node { return &Node{Kind: KindText, Text: s} }

// Break returns a breakable point.
func Break() *Node { return &Node{Kind: KindBreak} }

// Group returns a group node wrapping children.
func Group(indent int, open, close string, children ...*Node) *Node {
	if indent < 0 {
		indent = 0
	}
	return &Node{Kind: KindGroup, Indent: indent, Open: open, Close: close, Children: children}
}

// Builder accumulates layout nodes. The zero value is not usable; call New.
type Builder struct {
	root  *Node
	stack []*Node
}

// New returns an empty builder whose root is an undelimited group.
func New() *Builder {
	root := Group(0, "", "")
	return &Builder{root: root, stack: []*Node{root}}
}

func (b *Builder) current() *Node {
	return b.stack[len(b.stack)-1]
}

func (b *Builder) append(n *Node) {
	cur := b.current()
	cur.Children = append(cur.Children, n)
}

// Text emits literal text. Empty strings are dropped so they never turn an
// otherwise empty group into a broken one.
func (b *Builder) Text(s string) {
	if s == "" {
		return
	}
	b.append(Text(s))
}

// Breakable emits a point that resolves to a newline plus the indent of the
// enclosing group.
func (b *Builder) Breakable() {
	b.append(Break())
}

// Group emits open, runs body with the indent level increased by indent,
// and emits close. Nodes emitted by body land inside the new group.
func (b *Builder) Group(indent int, open, close string, body func()) {
	g := Group(indent, open, close)
	b.append(g)
	b.stack = append(b.stack, g)
	defer func() { b.stack = b.stack[:len(b.stack)-1] }()
	if body != nil {
		body()
	}
}

// Depth reports how many groups are currently open, excluding the root.
func (b *Builder) Depth() int {
	return len(b.stack) - 1
}

// Root returns the root of the accumulated tree.
func (b *Builder) Root() *Node {
	return b.root
}

// String resolves the accumulated tree.
func (b *Builder) String() string {
	return Resolve(b.root)
}

// WriteTo resolves the accumulated tree into w.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// Resolve lays out n starting at indent level zero.
func Resolve(n *Node) string {
	var sb strings.Builder
	resolve(&sb, n, 0)
	return sb.String()
}

func resolve(sb *strings.Builder, n *Node, level int) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindText:
		sb.WriteString(n.Text)
	case KindBreak:
		newline(sb, level)
	case KindGroup:
		sb.WriteString(n.Open)
		if len(n.Children) == 0 {
			sb.WriteString(n.Close)
			return
		}
		inner := level + max(n.Indent, 0)
		for _, c := range n.Children {
			resolve(sb, c, inner)
		}
		if n.Close != "" {
			newline(sb, level)
			sb.WriteString(n.Close)
		}
	}
}

func newline(sb *strings.Builder, level int) {
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(" ", level))
}
