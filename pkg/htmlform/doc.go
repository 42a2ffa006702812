// Package htmlform exposes parsed HTML markup as a checkbox.Document. Forms
// are collected in document order and each form lists its controls the way
// HTMLFormElement.elements does: listed elements owned by the form, either as
// descendants or through a matching form="id" attribute. The checked state is
// the checked content attribute, so toggles survive Render.
package htmlform
