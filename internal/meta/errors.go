package meta

import (
	"errors"
	"fmt"
)

var ErrNoAttribute = errors.New("meta: no such attribute")

// AttributeError reports a lookup of a name the module does not bind.
type AttributeError struct {
	Module string
	Name   string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("module '%s' has no attribute '%s'", e.Module, e.Name)
}

func (e *AttributeError) Is(target error) bool {
	return target == ErrNoAttribute
}
