// Package xmlnode reads loosely formed XML documents into a tree of
// nodes. Recipe software often writes XML with HTML entities, unclosed
// tags and legacy encodings, so decoding is lenient.
package xmlnode

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/charmap"
)

// Node is an element of a document.
type Node struct {
	// Tag is the element name after the TagFunc was applied.
	Tag string

	// Text is the concatenated character data of the element.
	Text string

	Children []*Node
}

// TagFunc converts a raw element name to the Tag of a node.
type TagFunc func(string) string

// Lower is the default TagFunc.
func Lower(s string) string {
	return strings.ToLower(s)
}

// ErrNoElements is returned for a document without elements.
var ErrNoElements = errors.New("document has no elements")

// Parse reads a document and returns its root node.
func Parse(data []byte, tagFn TagFunc) (*Node, error) {
	if tagFn == nil {
		tagFn = Lower
	}

	var r io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) && !declaresEncoding(data) {
		// undeclared legacy encoding, most often written on Windows
		r = charmap.Windows1252.NewDecoder().Reader(r)
	}

	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charset.NewReaderLabel

	var root *Node
	var stack []*Node
	var text []*strings.Builder

	for {
		tok, err := dec.Token()
		if err == io.EOF || (err != nil && root != nil && isTruncated(err)) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Tag: tagFn(t.Name.Local)}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			} else if root == nil {
				root = n
			} else {
				// several top-level elements share a synthetic root
				if root.Tag != "" {
					root = &Node{Children: []*Node{root}}
				}
				root.Children = append(root.Children, n)
			}
			stack = append(stack, n)
			text = append(text, &strings.Builder{})
		case xml.CharData:
			if len(text) > 0 {
				text[len(text)-1].Write(t)
			}
		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			last := len(stack) - 1
			stack[last].Text = text[last].String()
			stack = stack[:last]
			text = text[:last]
		}
	}

	// unclosed elements at the end of the document
	for i := len(stack) - 1; i >= 0; i-- {
		stack[i].Text = text[i].String()
	}

	if root == nil {
		return nil, ErrNoElements
	}
	return root, nil
}

func declaresEncoding(data []byte) bool {
	head := data
	if len(head) > 256 {
		head = head[:256]
	}
	return bytes.HasPrefix(bytes.TrimSpace(head), []byte("<?xml")) &&
		bytes.Contains(head, []byte("encoding="))
}

func isTruncated(err error) bool {
	var se *xml.SyntaxError
	return errors.As(err, &se) && se.Msg == "unexpected EOF"
}

// Child returns the first direct child with the tag.
func (n *Node) Child(tag string) *Node {
	if n == nil {
		return nil
	}
	for _, v := range n.Children {
		if v.Tag == tag {
			return v
		}
	}
	return nil
}

// Path follows a chain of tags from the node.
func (n *Node) Path(tags ...string) *Node {
	res := n
	for _, v := range tags {
		res = res.Child(v)
		if res == nil {
			return nil
		}
	}
	return res
}

// ChildrenByTag returns direct children with the tag.
func (n *Node) ChildrenByTag(tag string) []*Node {
	if n == nil {
		return nil
	}
	var res []*Node
	for _, v := range n.Children {
		if v.Tag == tag {
			res = append(res, v)
		}
	}
	return res
}

// FindAll returns all descendants with the tag in document order,
// including the node itself.
func (n *Node) FindAll(tag string) []*Node {
	if n == nil {
		return nil
	}
	var res []*Node
	if n.Tag == tag {
		res = append(res, n)
	}
	for _, v := range n.Children {
		res = append(res, v.FindAll(tag)...)
	}
	return res
}

// Value returns trimmed text of a child, or an empty string.
func (n *Node) Value(tag string) string {
	c := n.Child(tag)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Text)
}
