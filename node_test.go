package labelmkr_test

import (
	"strings"

	"github.com/fwojciec/labelmkr"
)

// fakeNode is an in-memory element tree implementing labelmkr.Node.
type fakeNode struct {
	tag      string
	attrs    map[string]string
	text     string
	root     bool
	parent   *fakeNode
	children []*fakeNode
}

var _ labelmkr.Node = (*fakeNode)(nil)

// el builds an element with attributes "k=v" and children. Children attach
// to the new element as their parent.
func el(tag string, attrs []string, children ...*fakeNode) *fakeNode {
	n := &fakeNode{tag: tag, attrs: make(map[string]string)}
	for _, kv := range attrs {
		k, v, _ := strings.Cut(kv, "=")
		n.attrs[k] = v
	}
	for _, c := range children {
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// txt builds a leaf element carrying text.
func txt(tag string, attrs []string, text string) *fakeNode {
	n := el(tag, attrs)
	n.text = text
	return n
}

// body builds the designated root container.
func body(children ...*fakeNode) *fakeNode {
	n := el("body", nil, children...)
	n.root = true
	return n
}

func (n *fakeNode) Tag() string { return n.tag }

func (n *fakeNode) ID() string { return n.attrs["id"] }

func (n *fakeNode) Classes() []string { return strings.Fields(n.attrs["class"]) }

func (n *fakeNode) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

func (n *fakeNode) Parent() labelmkr.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *fakeNode) IsRoot() bool { return n.root }

func (n *fakeNode) SiblingPosition() (rank, count int) {
	if n.parent == nil {
		return 1, 1
	}
	for _, c := range n.parent.children {
		if c.tag != n.tag {
			continue
		}
		count++
		if c == n {
			rank = count
		}
	}
	return rank, count
}

func (n *fakeNode) Text() string {
	var b strings.Builder
	b.WriteString(n.text)
	for _, c := range n.children {
		b.WriteString(c.Text())
	}
	return b.String()
}

// rowsFixture returns three div.row elements each holding a span.code and a
// span.label, plus the first span.code.
func rowsFixture() (*fakeNode, *fakeNode) {
	first := txt("span", []string{"class=code"}, "C1")
	root := body(
		el("div", []string{"class=row"}, first, txt("span", []string{"class=label"}, "Alpha")),
		el("div", []string{"class=row"}, txt("span", []string{"class=code"}, "C2"), txt("span", []string{"class=label"}, "Beta")),
		el("div", []string{"class=row"}, txt("span", []string{"class=code"}, "C3"), txt("span", []string{"class=label"}, "Gamma")),
	)
	return root, first
}
