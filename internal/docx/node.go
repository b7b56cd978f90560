// Package docx fills Word report templates. Every XML part is parsed into a
// node tree once, edited in place and serialized once when the package is saved.
package docx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// NodeKind tells what a node holds.
type NodeKind int

// Node kinds.
const (
	DocumentNode NodeKind = iota
	ElementNode
	TextNode
	RawNode // prolog, comments and directives, kept verbatim
)

// Attr is an attribute with its name exactly as written in the part (e.g. "w:val").
type Attr struct {
	Name  string
	Value string
}

// Node is one node of a parsed XML part. Names keep their source prefix, so a
// paragraph is "w:p" regardless of which namespace URI the prefix maps to.
type Node struct {
	Kind     NodeKind
	Name     string
	Attrs    []Attr
	Children []*Node
	Parent   *Node
	Data     string
}

// El creates an element from a name and alternating attribute names and values.
func El(name string, kv ...string) *Node {
	n := &Node{Kind: ElementNode, Name: name}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attrs = append(n.Attrs, Attr{Name: kv[i], Value: kv[i+1]})
	}
	return n
}

// Chars creates a text node.
func Chars(s string) *Node {
	return &Node{Kind: TextNode, Data: s}
}

// With appends children and returns the node for chaining. Nil children are skipped.
func (n *Node) With(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.Parent = n
		n.Children = append(n.Children, c)
	}
	return n
}

// Is reports whether n is an element with the given qualified name.
func (n *Node) Is(name string) bool {
	return n != nil && n.Kind == ElementNode && n.Name == name
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets or adds an attribute.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.Attrs {
		if a.Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindAll returns every descendant element with the given name, in document order.
func (n *Node) FindAll(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		c.Walk(func(x *Node) bool {
			if x.Is(name) {
				out = append(out, x)
			}
			return true
		})
	}
	return out
}

// First returns the first descendant element with the given name, or nil.
func (n *Node) First(name string) *Node {
	if all := n.FindAll(name); len(all) > 0 {
		return all[0]
	}
	return nil
}

// Child returns the first direct child element with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Is(name) {
			return c
		}
	}
	return nil
}

// Ancestor returns the closest enclosing element with the given name, or nil.
func (n *Node) Ancestor(name string) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Is(name) {
			return p
		}
	}
	return nil
}

func (n *Node) index() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// InsertAfter places nodes right after n in its parent.
func (n *Node) InsertAfter(nodes ...*Node) {
	i := n.index()
	if i < 0 {
		return
	}
	n.Parent.splice(i+1, 0, nodes)
}

// ReplaceWith swaps n for the given nodes in its parent and detaches n.
func (n *Node) ReplaceWith(nodes ...*Node) {
	i := n.index()
	if i < 0 {
		return
	}
	n.Parent.splice(i, 1, nodes)
	n.Parent = nil
}

func (n *Node) splice(at, remove int, nodes []*Node) {
	for _, c := range nodes {
		c.Parent = n
	}
	tail := append([]*Node{}, n.Children[at+remove:]...)
	n.Children = append(append(n.Children[:at], nodes...), tail...)
}

// Parse reads an XML part into a tree rooted at a DocumentNode.
func Parse(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	doc := &Node{Kind: DocumentNode}
	cur := doc
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Node{Kind: ElementNode, Name: qualified(t.Name)}
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, Attr{Name: qualified(a.Name), Value: a.Value})
			}
			cur.With(el)
			cur = el
		case xml.EndElement:
			if cur.Kind != ElementNode || cur.Name != qualified(t.Name) {
				return nil, fmt.Errorf("unexpected closing tag </%s>", qualified(t.Name))
			}
			cur = cur.Parent
		case xml.CharData:
			cur.With(Chars(string(t)))
		case xml.ProcInst:
			cur.With(&Node{Kind: RawNode, Data: "<?" + t.Target + " " + string(t.Inst) + "?>"})
		case xml.Comment:
			cur.With(&Node{Kind: RawNode, Data: "<!--" + string(t) + "-->"})
		case xml.Directive:
			cur.With(&Node{Kind: RawNode, Data: "<!" + string(t) + ">"})
		}
	}
	if cur != doc {
		return nil, fmt.Errorf("unclosed element <%s>", cur.Name)
	}
	if doc.root() == nil {
		return nil, errors.New("no root element")
	}
	return doc, nil
}

func (n *Node) root() *Node {
	for _, c := range n.Children {
		if c.Kind == ElementNode {
			return c
		}
	}
	return nil
}

func qualified(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "\n", "&#xA;", "\r", "&#xD;", "\t", "&#x9;")
)

// Bytes serializes the tree.
func (n *Node) Bytes() []byte {
	var b bytes.Buffer
	n.write(&b)
	return b.Bytes()
}

func (n *Node) write(b *bytes.Buffer) {
	switch n.Kind {
	case DocumentNode:
		for _, c := range n.Children {
			c.write(b)
		}
	case TextNode:
		b.WriteString(textEscaper.Replace(n.Data))
	case RawNode:
		b.WriteString(n.Data)
	case ElementNode:
		b.WriteByte('<')
		b.WriteString(n.Name)
		for _, a := range n.Attrs {
			b.WriteByte(' ')
			b.WriteString(a.Name)
			b.WriteString(`="`)
			b.WriteString(attrEscaper.Replace(a.Value))
			b.WriteByte('"')
		}
		if len(n.Children) == 0 {
			b.WriteString("/>")
			return
		}
		b.WriteByte('>')
		for _, c := range n.Children {
			c.write(b)
		}
		b.WriteString("</")
		b.WriteString(n.Name)
		b.WriteByte('>')
	}
}
