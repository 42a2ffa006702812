package htmlform

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-formtoggle/pkg/checkbox"
)

// Element is a listed form control.
type Element struct {
	node *html.Node
}

var _ checkbox.Element = (*Element)(nil)

var inputTypes = map[string]struct{}{
	"hidden": {}, "text": {}, "search": {}, "tel": {}, "url": {}, "email": {},
	"password": {}, "date": {}, "month": {}, "week": {}, "time": {},
	"datetime-local": {}, "number": {}, "range": {}, "color": {},
	"checkbox": {}, "radio": {}, "file": {}, "submit": {}, "image": {},
	"reset": {}, "button": {},
}

// Type follows the DOM type property of the control.
func (e *Element) Type() string {
	switch e.node.DataAtom {
	case atom.Input:
		t := strings.ToLower(strings.TrimSpace(attr(e.node, "type")))
		if _, ok := inputTypes[t]; ok {
			return t
		}
		return "text"
	case atom.Button:
		switch t := strings.ToLower(strings.TrimSpace(attr(e.node, "type"))); t {
		case "reset", "button":
			return t
		}
		return "submit"
	case atom.Select:
		if _, ok := lookupAttr(e.node, "multiple"); ok {
			return "select-multiple"
		}
		return "select-one"
	case atom.Textarea:
		return "textarea"
	case atom.Fieldset:
		return "fieldset"
	case atom.Output:
		return "output"
	}
	return ""
}

// Name returns the name attribute.
func (e *Element) Name() string {
	return attr(e.node, "name")
}

// Tag returns the element's tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// Checked reports whether the checked attribute is present.
func (e *Element) Checked() bool {
	_, ok := lookupAttr(e.node, "checked")
	return ok
}

// SetChecked adds or removes the checked attribute. Only checkboxes and radio
// buttons carry checkedness; other controls are left as is.
func (e *Element) SetChecked(checked bool) {
	switch e.Type() {
	case "checkbox", "radio":
	default:
		return
	}
	if checked {
		if !e.Checked() {
			e.node.Attr = append(e.node.Attr, html.Attribute{Key: "checked"})
		}
		return
	}
	kept := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == "checked" {
			continue
		}
		kept = append(kept, a)
	}
	e.node.Attr = kept
}

// Label returns the inner HTML of the first <label> associated with the
// control, either through for="id" or by wrapping it. Empty when unlabelled.
func (e *Element) Label(doc *Document) string {
	if doc == nil || doc.root == nil {
		return ""
	}
	for p := e.node.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == atom.Label {
			return innerHTML(p)
		}
	}
	id := attr(e.node, "id")
	if id == "" {
		return ""
	}
	var found *html.Node
	walk(doc.root, func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Label && attr(n, "for") == id {
			found = n
		}
	})
	if found == nil {
		return ""
	}
	return innerHTML(found)
}

func innerHTML(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return ""
		}
	}
	return b.String()
}

func attr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
