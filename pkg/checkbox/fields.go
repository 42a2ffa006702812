package checkbox

// Field is an in-memory form control. It satisfies Element.
type Field struct {
	FieldType string
	FieldName string
	IsChecked bool
}

// Checkbox returns a checkbox field named name.
func Checkbox(name string, checked bool) *Field {
	return &Field{FieldType: TypeCheckbox, FieldName: name, IsChecked: checked}
}

// Input returns a non-checkbox field of the given type.
func Input(fieldType, name string) *Field {
	return &Field{FieldType: fieldType, FieldName: name}
}

func (f *Field) Type() string { return f.FieldType }

func (f *Field) Name() string { return f.FieldName }

func (f *Field) Checked() bool { return f.IsChecked }

// SetChecked records the flag. Fields that are not checkable (anything other
// than checkbox or radio) keep their zero value, the way a text input has no
// checked state to affect.
func (f *Field) SetChecked(checked bool) {
	if f.FieldType != TypeCheckbox && f.FieldType != "radio" {
		return
	}
	f.IsChecked = checked
}

// Fields is an in-memory form.
type Fields []*Field

// Elements implements Form.
func (fs Fields) Elements() []Element {
	out := make([]Element, len(fs))
	for i, f := range fs {
		out[i] = f
	}
	return out
}

// States snapshots the checked flag of every field, in order.
func (fs Fields) States() []bool {
	out := make([]bool, len(fs))
	for i, f := range fs {
		out[i] = f.IsChecked
	}
	return out
}

// Forms is an in-memory document.
type Forms []Form

// Forms implements Document.
func (d Forms) Forms() []Form {
	return d
}
