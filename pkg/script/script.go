// Package script exposes the checkbox toggler to page scripts running in a
// goja runtime, so click handlers such as a "select all" link can call
// select(name, isSelected) and selectMultiple(names, isSelected) directly.
package script

import (
	"errors"
	"fmt"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/goliatone/go-formtoggle/pkg/checkbox"
)

const (
	// DefaultSelectName is the global bound to checkbox.Select.
	DefaultSelectName = "select"
	// DefaultSelectMultipleName is the global bound to checkbox.SelectMultiple.
	DefaultSelectMultipleName = "selectMultiple"
)

// Option configures Install.
type Option func(*config)

type config struct {
	selectName   string
	multipleName string
	logger       *zap.Logger
}

// WithGlobalNames overrides the names of the installed globals. Empty values
// keep the defaults.
func WithGlobalNames(selectName, multipleName string) Option {
	return func(cfg *config) {
		if selectName != "" {
			cfg.selectName = selectName
		}
		if multipleName != "" {
			cfg.multipleName = multipleName
		}
	}
}

// WithLogger forwards match diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Install registers the toggle functions as globals of vm. The first form of
// doc is resolved on every call; when it is missing the call throws and the
// exception is left for the host to surface.
func Install(vm *goja.Runtime, doc checkbox.Document, options ...Option) error {
	if vm == nil {
		return errors.New("script: runtime is nil")
	}
	cfg := &config{
		selectName:   DefaultSelectName,
		multipleName: DefaultSelectMultipleName,
		logger:       zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	toggler := checkbox.New(checkbox.WithLogger(cfg.logger))

	firstForm := func() checkbox.Form {
		form, err := checkbox.FirstForm(doc)
		if err != nil {
			panic(vm.NewTypeError("Cannot read properties of undefined (reading 'elements'): %v", err))
		}
		return form
	}

	if err := vm.Set(cfg.selectName, func(call goja.FunctionCall) goja.Value {
		form := firstForm()
		arg := call.Argument(0)
		if goja.IsUndefined(arg) || goja.IsNull(arg) {
			// no element name ever equals undefined or null
			return goja.Undefined()
		}
		checked := call.Argument(1).ToBoolean()
		if _, err := toggler.Select(form, arg.String(), checked); err != nil {
			panic(vm.NewGoError(err))
		}
		return goja.Undefined()
	}); err != nil {
		return fmt.Errorf("script: install %s: %w", cfg.selectName, err)
	}

	if err := vm.Set(cfg.multipleName, func(call goja.FunctionCall) goja.Value {
		form := firstForm()
		names := stringEntries(vm, cfg.multipleName, call.Argument(0))
		checked := call.Argument(1).ToBoolean()
		if _, err := toggler.SelectMultiple(form, names, checked); err != nil {
			panic(vm.NewGoError(err))
		}
		return goja.Undefined()
	}); err != nil {
		return fmt.Errorf("script: install %s: %w", cfg.multipleName, err)
	}

	return nil
}

// stringEntries keeps the string items of a JS array. Other items can never
// equal an element name and are dropped.
func stringEntries(vm *goja.Runtime, fn string, arg goja.Value) []string {
	if goja.IsUndefined(arg) || goja.IsNull(arg) {
		return nil
	}
	var raw []any
	if err := vm.ExportTo(arg, &raw); err != nil {
		panic(vm.NewTypeError("%s: names must be an array", fn))
	}
	names := make([]string, 0, len(raw))
	for _, item := range raw {
		if name, ok := item.(string); ok {
			names = append(names, name)
		}
	}
	return names
}
