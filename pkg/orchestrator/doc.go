// Package orchestrator wires the source loader, the HTML host and the
// checkbox toggler into one call: load a page, resolve its first form, apply
// a toggle plan, render the result.
package orchestrator
