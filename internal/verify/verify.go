// Package verify checks a metadata source against expected values and reports
// each check under the marker it belongs to.
package verify

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/resonanceenergy/ncc/internal/meta"
)

const (
	MarkerVersion     = "version"
	MarkerAuthor      = "author"
	MarkerGeneratedBy = "generated_by"
	MarkerType        = "type"
	MarkerRegression  = "regression"
	MarkerLookup      = "lookup"
)

type Source interface {
	Lookup(name string) (string, error)
	Kind(name string) (reflect.Kind, error)
}

type Expectations struct {
	Version          string
	Author           string
	GeneratedBy      string
	ForbiddenVersion string
	MissingAttribute string
}

func DefaultExpectations() Expectations {
	return Expectations{
		Version:          "0.1.0",
		Author:           "ResonanceEnergy",
		GeneratedBy:      "OPTIMUS REPO DEPOT v3.0",
		ForbiddenVersion: "1.0.0",
		MissingAttribute: "non_existent_attr",
	}
}

// Check is one evaluated assertion. Every check counts toward Report.OK.
type Check struct {
	Name   string
	Marker string
	Passed bool
	Detail string
}

func (c Check) Result() string {
	if c.Passed {
		return "pass"
	}
	return "fail"
}

type Report struct {
	Checks []Check
}

func (r Report) OK() bool {
	return len(r.Failed()) == 0
}

func (r Report) Failed() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.Passed {
			out = append(out, c)
		}
	}
	return out
}

func (r Report) Filter(marker string) []Check {
	var out []Check
	for _, c := range r.Checks {
		if c.Marker == marker {
			out = append(out, c)
		}
	}
	return out
}

func Run(src Source, exp Expectations) Report {
	var r Report
	bindings := []struct {
		attr   string
		label  string
		marker string
		want   string
	}{
		{meta.AttrVersion, "version", MarkerVersion, exp.Version},
		{meta.AttrAuthor, "author", MarkerAuthor, exp.Author},
		{meta.AttrGeneratedBy, "generated_by", MarkerGeneratedBy, exp.GeneratedBy},
	}

	for _, b := range bindings {
		r.Checks = append(r.Checks, checkEqual(src, b.attr, b.label, b.marker, b.want))
	}
	for _, b := range bindings {
		r.Checks = append(r.Checks, checkKind(src, b.attr, b.label))
	}
	r.Checks = append(r.Checks, checkRegression(src, exp.ForbiddenVersion))
	r.Checks = append(r.Checks, checkMissing(src, exp.MissingAttribute))
	return r
}

func checkEqual(src Source, attr, label, marker, want string) Check {
	c := Check{Name: label + "_happy_path", Marker: marker}
	got, err := src.Lookup(attr)
	if err != nil {
		c.Detail = err.Error()
		return c
	}
	c.Passed = got == want
	c.Detail = fmt.Sprintf("expected %s %q, got %q", label, want, got)
	return c
}

func checkKind(src Source, attr, label string) Check {
	c := Check{Name: label + "_type", Marker: MarkerType}
	kind, err := src.Kind(attr)
	if err != nil {
		c.Detail = err.Error()
		return c
	}
	c.Passed = kind == reflect.String
	c.Detail = fmt.Sprintf("expected string type for %s, got %s", label, kind)
	return c
}

func checkRegression(src Source, forbidden string) Check {
	c := Check{Name: "unexpected_version_change", Marker: MarkerRegression}
	got, err := src.Lookup(meta.AttrVersion)
	if err != nil {
		c.Detail = err.Error()
		return c
	}
	c.Passed = got != forbidden
	c.Detail = fmt.Sprintf("version must not be %q, got %q", forbidden, got)
	return c
}

// checkMissing requires the lookup to fail with a not-found error naming both
// the module and the attribute.
func checkMissing(src Source, name string) Check {
	c := Check{Name: "non_existent_attribute_access", Marker: MarkerLookup}
	v, err := src.Lookup(name)
	switch {
	case err == nil:
		c.Detail = fmt.Sprintf("lookup %q returned %q, expected not-found", name, v)
	case !errors.Is(err, meta.ErrNoAttribute):
		c.Detail = fmt.Sprintf("lookup %q failed with unexpected error: %v", name, err)
	case !strings.Contains(err.Error(), meta.ModuleName) || !strings.Contains(err.Error(), name):
		c.Detail = fmt.Sprintf("not-found message %q does not name module and attribute", err.Error())
	default:
		c.Passed = true
		c.Detail = err.Error()
	}
	return c
}
