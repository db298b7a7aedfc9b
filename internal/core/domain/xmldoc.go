package domain

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// XMLNode is an element of a parsed XML document.
type XMLNode struct {
	Name     string
	Space    string
	Attrs    map[string]string
	Text     string
	Children []*XMLNode
}

// ErrEmptyDocument is returned when an XML document has no root element.
var ErrEmptyDocument = errors.New("xml: document has no root element")

// ParseXML reads an XML document into a tree and returns its root element.
func ParseXML(r io.Reader) (*XMLNode, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true

	var root *XMLNode
	var stack []*XMLNode

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &XMLNode{
				Name:  t.Name.Local,
				Space: t.Name.Space,
				Attrs: make(map[string]string, len(t.Attr)),
			}
			for _, a := range t.Attr {
				node.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("xml: multiple root elements")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			top := stack[len(stack)-1]
			top.Text = strings.TrimSpace(top.Text)
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, ErrEmptyDocument
	}
	return root, nil
}

// Attr returns the value of an attribute and whether it was present.
func (n *XMLNode) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	v, ok := n.Attrs[name]
	return v, ok
}

// AttrOr returns the attribute value or def when absent.
func (n *XMLNode) AttrOr(name, def string) string {
	if v, ok := n.Attr(name); ok {
		return v
	}
	return def
}

// Child returns the first direct child with the given local name, or nil.
func (n *XMLNode) Child(name string) *XMLNode {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildText returns the text of the first direct child with the given name.
func (n *XMLNode) ChildText(name string) string {
	if c := n.Child(name); c != nil {
		return c.Text
	}
	return ""
}

// ChildrenNamed returns all direct children with the given local name.
func (n *XMLNode) ChildrenNamed(name string) []*XMLNode {
	if n == nil {
		return nil
	}
	var out []*XMLNode
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Find returns all descendants (including n) with the given local name,
// in document order.
func (n *XMLNode) Find(name string) []*XMLNode {
	if n == nil {
		return nil
	}
	var out []*XMLNode
	var walk func(*XMLNode)
	walk = func(node *XMLNode) {
		if node.Name == name {
			out = append(out, node)
		}
		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}
