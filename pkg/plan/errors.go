package plan

import "errors"

var (
	// ErrInvalidStep flags a step without a target or with conflicting targets.
	ErrInvalidStep = errors.New("plan: invalid step")
	// ErrEmptyFile is returned when a plan file has no content.
	ErrEmptyFile = errors.New("plan: file is empty")
)
