package htmlform

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-formtoggle/pkg/checkbox"
)

// Document wraps a parsed HTML tree.
type Document struct {
	root *html.Node
}

var _ checkbox.Document = (*Document)(nil)

// Parse reads HTML from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmlform: parse: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Root returns the underlying document node.
func (d *Document) Root() *html.Node {
	if d == nil {
		return nil
	}
	return d.root
}

// Forms implements checkbox.Document.
func (d *Document) Forms() []checkbox.Form {
	if d == nil || d.root == nil {
		return nil
	}
	var forms []checkbox.Form
	walk(d.root, func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Form {
			forms = append(forms, &Form{doc: d, node: n})
		}
	})
	return forms
}

// FirstForm returns the first form in the document or checkbox.ErrNoForm.
func (d *Document) FirstForm() (*Form, error) {
	form, err := checkbox.FirstForm(d)
	if err != nil {
		return nil, fmt.Errorf("htmlform: %w", err)
	}
	return form.(*Form), nil
}

// Render serialises the document, including any toggled checked attributes.
func (d *Document) Render(w io.Writer) error {
	if d == nil || d.root == nil {
		return fmt.Errorf("htmlform: document is nil")
	}
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("htmlform: render: %w", err)
	}
	return nil
}

// String renders the document to a string. Render errors yield "".
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Form is a <form> element of a Document.
type Form struct {
	doc  *Document
	node *html.Node
}

var _ checkbox.Form = (*Form)(nil)

// ID returns the form's id attribute.
func (f *Form) ID() string {
	return attr(f.node, "id")
}

// Node returns the underlying <form> node.
func (f *Form) Node() *html.Node {
	return f.node
}

// Elements implements checkbox.Form. Controls are returned in document order.
func (f *Form) Elements() []checkbox.Element {
	if f == nil || f.node == nil || f.doc == nil {
		return nil
	}
	id := f.ID()
	var out []checkbox.Element
	walk(f.doc.root, func(n *html.Node) {
		if !isListed(n) {
			return
		}
		if f.owns(n, id) {
			out = append(out, &Element{node: n})
		}
	})
	return out
}

// owns reports whether control n belongs to this form. An explicit form
// attribute wins over ancestry.
func (f *Form) owns(n *html.Node, id string) bool {
	if ref, ok := lookupAttr(n, "form"); ok {
		return id != "" && ref == id
	}
	return nearestForm(n) == f.node
}

func nearestForm(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == atom.Form {
			return p
		}
	}
	return nil
}

// isListed mirrors the form.elements collection: listed controls except
// image buttons, which browsers leave out.
func isListed(n *html.Node) bool {
	if n.Type != html.ElementNode || n.Namespace != "" {
		return false
	}
	switch n.DataAtom {
	case atom.Input:
		return !strings.EqualFold(strings.TrimSpace(attr(n, "type")), "image")
	case atom.Button, atom.Select, atom.Textarea,
		atom.Fieldset, atom.Object, atom.Output:
		return true
	}
	return false
}

func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// GroupLabel returns the label markup of the first checkbox named name, or ""
// when that checkbox has no label.
func (f *Form) GroupLabel(name string) string {
	for _, el := range f.Elements() {
		e := el.(*Element)
		if e.Type() == checkbox.TypeCheckbox && e.Name() == name {
			return e.Label(f.doc)
		}
	}
	return ""
}
