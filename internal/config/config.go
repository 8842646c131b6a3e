package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/resonanceenergy/ncc/internal/verify"
)

type expectationsFile struct {
	Version          string `toml:"version"`
	Author           string `toml:"author"`
	GeneratedBy      string `toml:"generated_by"`
	ForbiddenVersion string `toml:"forbidden_version"`
	MissingAttribute string `toml:"missing_attribute"`
}

// LoadExpectations reads path over the defaults; keys absent from the file
// keep their default value.
func LoadExpectations(path string) (verify.Expectations, error) {
	exp := verify.DefaultExpectations()

	var raw expectationsFile
	md, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return verify.Expectations{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return verify.Expectations{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if md.IsDefined("version") {
		exp.Version = strings.TrimSpace(raw.Version)
	}
	if md.IsDefined("author") {
		exp.Author = strings.TrimSpace(raw.Author)
	}
	if md.IsDefined("generated_by") {
		exp.GeneratedBy = strings.TrimSpace(raw.GeneratedBy)
	}
	if md.IsDefined("forbidden_version") {
		exp.ForbiddenVersion = strings.TrimSpace(raw.ForbiddenVersion)
	}
	if md.IsDefined("missing_attribute") {
		exp.MissingAttribute = strings.TrimSpace(raw.MissingAttribute)
	}

	if err := ValidateExpectations(exp); err != nil {
		return verify.Expectations{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return exp, nil
}

func ValidateExpectations(exp verify.Expectations) error {
	if exp.Version == "" {
		return fmt.Errorf("version is required")
	}
	if exp.Author == "" {
		return fmt.Errorf("author is required")
	}
	if exp.GeneratedBy == "" {
		return fmt.Errorf("generated_by is required")
	}
	if exp.ForbiddenVersion == "" {
		return fmt.Errorf("forbidden_version is required")
	}
	if exp.MissingAttribute == "" {
		return fmt.Errorf("missing_attribute is required")
	}
	if exp.ForbiddenVersion == exp.Version {
		return fmt.Errorf("forbidden_version must differ from version %q", exp.Version)
	}
	return nil
}
