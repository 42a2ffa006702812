// Package checkbox toggles checkbox groups in a form. A group is every element
// of type "checkbox" sharing the same name attribute. The form itself is owned
// by a host (parsed HTML, a live browser page, an in-memory fixture) and is
// handed in through the Form and Document capabilities; this package never
// builds or validates forms, it only reads type/name and writes the checked
// flag.
package checkbox
