package checkbox

import "errors"

// ErrNoForm signals that the host did not supply the form to operate on
// (document.forms[0] in browser terms).
var ErrNoForm = errors.New("checkbox: form not found")
