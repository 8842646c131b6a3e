package meta

import (
	"fmt"
	"reflect"
	"strings"
)

const ModuleName = "NCC"

const (
	Version     = "0.1.0"
	Author      = "ResonanceEnergy"
	GeneratedBy = "OPTIMUS REPO DEPOT v3.0"
)

const (
	AttrVersion     = "__version__"
	AttrAuthor      = "__author__"
	AttrGeneratedBy = "__generated_by__"
)

type Attribute struct {
	Name  string
	Value string
}

// Default is the module's own metadata source.
var Default Module

// Module exposes the package constants through the lookup interface used by
// verify. It carries no state.
type Module struct{}

func (Module) Lookup(name string) (string, error) { return Lookup(name) }

func (Module) Kind(name string) (reflect.Kind, error) { return Kind(name) }

func Names() []string {
	return []string{AttrVersion, AttrAuthor, AttrGeneratedBy}
}

func Attributes() []Attribute {
	return []Attribute{
		{Name: AttrVersion, Value: Version},
		{Name: AttrAuthor, Value: Author},
		{Name: AttrGeneratedBy, Value: GeneratedBy},
	}
}

// Lookup resolves a binding by its canonical dunder name or its short alias.
func Lookup(name string) (string, error) {
	switch strings.TrimSpace(name) {
	case AttrVersion, "version":
		return Version, nil
	case AttrAuthor, "author":
		return Author, nil
	case AttrGeneratedBy, "generated_by":
		return GeneratedBy, nil
	default:
		return "", &AttributeError{Module: ModuleName, Name: name}
	}
}

func MustLookup(name string) string {
	v, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return v
}

func Kind(name string) (reflect.Kind, error) {
	v, err := Lookup(name)
	if err != nil {
		return reflect.Invalid, err
	}
	return reflect.TypeOf(v).Kind(), nil
}

func String() string {
	return fmt.Sprintf("%s %s (author=%s, generated_by=%s)", ModuleName, Version, Author, GeneratedBy)
}
