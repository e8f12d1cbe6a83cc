package domain

import "errors"

var (
	// ErrMalformedStructure indicates a cyclic or dangling parent reference.
	ErrMalformedStructure = errors.New("malformed thread structure")

	// ErrEmptyRegistry indicates activation was requested with nothing to activate.
	ErrEmptyRegistry = errors.New("no activatable element focused")

	// ErrIndexOutOfRange indicates a registry index outside the current render pass.
	ErrIndexOutOfRange = errors.New("activatable index out of range")

	// ErrTargetUnavailable indicates a mention whose identity could not be resolved.
	ErrTargetUnavailable = errors.New("target unavailable")

	// ErrUnsafeTarget indicates an activation target with a scheme the opener refuses.
	ErrUnsafeTarget = errors.New("refusing to open target")
)
