package page

import "errors"

var (
	// ErrUnknownSection is returned for a section id that is not registered.
	ErrUnknownSection = errors.New("page: unknown section")

	// ErrUnknownTool is returned by Tool lookups; RunTool falls back instead.
	ErrUnknownTool = errors.New("page: unknown tool")
)
