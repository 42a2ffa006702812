package checkbox

import "go.uber.org/zap"

// Option configures a Toggler.
type Option func(*Toggler)

// WithLogger routes match diagnostics to logger. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Toggler) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// Toggler applies checked states to checkbox groups. The zero value is not
// usable; construct with New.
type Toggler struct {
	logger *zap.Logger
}

// New constructs a Toggler. Without options it logs nothing.
func New(options ...Option) *Toggler {
	t := &Toggler{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	return t
}

var defaultToggler = New()

// Select sets checked on every checkbox of form named name. It returns the
// number of matched checkboxes.
func Select(form Form, name string, checked bool) (int, error) {
	return defaultToggler.Select(form, name, checked)
}

// SelectMultiple sets checked on every checkbox of form whose name is in
// names. Duplicate names have no extra effect and an empty names slice is a
// no-op.
func SelectMultiple(form Form, names []string, checked bool) (int, error) {
	return defaultToggler.SelectMultiple(form, names, checked)
}

// Select is the Toggler form of the package-level Select.
func (t *Toggler) Select(form Form, name string, checked bool) (int, error) {
	if form == nil {
		return 0, ErrNoForm
	}
	matched := t.apply(form, func(candidate string) bool {
		return candidate == name
	}, checked)
	t.logger.Debug("checkbox group toggled",
		zap.String("name", name),
		zap.Bool("checked", checked),
		zap.Int("matched", matched),
	)
	return matched, nil
}

// SelectMultiple is the Toggler form of the package-level SelectMultiple.
func (t *Toggler) SelectMultiple(form Form, names []string, checked bool) (int, error) {
	if form == nil {
		return 0, ErrNoForm
	}
	if len(names) == 0 {
		return 0, nil
	}
	set := NewNameSet(names)
	matched := t.apply(form, set.Has, checked)
	t.logger.Debug("checkbox groups toggled",
		zap.Strings("names", names),
		zap.Bool("checked", checked),
		zap.Int("matched", matched),
	)
	return matched, nil
}

// apply walks every element once, in document order.
func (t *Toggler) apply(form Form, match func(string) bool, checked bool) int {
	matched := 0
	for _, el := range form.Elements() {
		if el == nil || el.Type() != TypeCheckbox {
			continue
		}
		if !match(el.Name()) {
			continue
		}
		el.SetChecked(checked)
		matched++
	}
	return matched
}
