package vissim

import (
	"github.com/pkg/errors"
)

var (
	// ErrAmbiguous is returned when a path expected to select a single element matched more than one
	ErrAmbiguous = errors.New("number of elements > 1")
	// ErrNotFound is returned when a path matched no element
	ErrNotFound = errors.New("no element matches path")
	// ErrUnknownAttribute is returned on attempt to set an attribute the element does not carry
	ErrUnknownAttribute = errors.New("not an attribute of element")
	// ErrInvalidAttribute is returned when attribute is not declared for the entity
	ErrInvalidAttribute = errors.New("not a valid attribute")
	// ErrTypeMismatch is returned when value can't represent the declared attribute type
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrEmptyCatalog is returned when default identifier is requested from an empty catalog
	ErrEmptyCatalog = errors.New("catalog is empty")
	// ErrNoRoot is returned for documents without root element
	ErrNoRoot = errors.New("document has no root element")
	// ErrNotChild is returned when removed element is not a direct child of the given parent
	ErrNotChild = errors.New("element is not a child of parent")
	// ErrNoRoute is returned when link graph has no path between two links
	ErrNoRoute = errors.New("no route between links")
)
