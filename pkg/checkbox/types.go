package checkbox

// TypeCheckbox is the type discriminator matched by Select and SelectMultiple.
// Comparison is exact and case-sensitive.
const TypeCheckbox = "checkbox"

// Element is the minimal capability a host form control exposes.
type Element interface {
	Type() string
	Name() string
	Checked() bool
	SetChecked(checked bool)
}

// Form is an ordered collection of controls supplied by the host.
type Form interface {
	Elements() []Element
}

// Document exposes the forms of a page in document order.
type Document interface {
	Forms() []Form
}

// FirstForm returns the first form of doc, mirroring document.forms[0].
func FirstForm(doc Document) (Form, error) {
	if doc == nil {
		return nil, ErrNoForm
	}
	forms := doc.Forms()
	if len(forms) == 0 || forms[0] == nil {
		return nil, ErrNoForm
	}
	return forms[0], nil
}

// Groups lists the distinct checkbox names of form in document order.
// Checkboxes without a name are skipped.
func Groups(form Form) []string {
	if form == nil {
		return nil
	}
	seen := make(NameSet)
	var out []string
	for _, el := range form.Elements() {
		if el == nil || el.Type() != TypeCheckbox {
			continue
		}
		name := el.Name()
		if name == "" || seen.Has(name) {
			continue
		}
		seen.Add(name)
		out = append(out, name)
	}
	return out
}
