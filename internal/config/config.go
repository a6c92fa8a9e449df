package config

import (
	"fmt"
	"sort"
	"strings"

	"cuelang.org/go/cue"
)

// File holds the values read from a .cue configuration file. Empty strings
// and a nil Comment mean the field was not set.
type File struct {
	ConfigVersion string
	Repository    string
	MetadataGlob  string
	APIURL        string
	Source        string
	Revision      string
	Output        string
	Comment       *bool
}

var stringFields = map[string]func(*File) *string{
	"repository":   func(f *File) *string { return &f.Repository },
	"metadataGlob": func(f *File) *string { return &f.MetadataGlob },
	"apiURL":       func(f *File) *string { return &f.APIURL },
	"source":       func(f *File) *string { return &f.Source },
	"revision":     func(f *File) *string { return &f.Revision },
	"output":       func(f *File) *string { return &f.Output },
}

// Load reads and validates a CUE configuration file.
// Required fields:
//   - configVersion: string, one of SupportedConfigVersions
//
// Every other field is optional; unknown top-level fields are rejected.
func Load(path string) (File, error) {
	v, err := compileCUE(path)
	if err != nil {
		return File{}, err
	}
	if err := rejectUnknownFields(v); err != nil {
		return File{}, err
	}

	var f File
	if err := requireStringField(v, "configVersion"); err != nil {
		return File{}, err
	}
	if err := v.LookupPath(cue.ParsePath("configVersion")).Decode(&f.ConfigVersion); err != nil {
		return File{}, fmt.Errorf("%w: invalid value for configVersion: %v", ErrInvalidConfig, err)
	}
	if !IsSupportedConfigVersion(f.ConfigVersion) {
		return File{}, fmt.Errorf("unsupported configVersion: %q (supported: %s)", f.ConfigVersion, SupportedConfigVersionsCSV())
	}

	for name, field := range stringFields {
		if err := optionalString(v, name, field(&f)); err != nil {
			return File{}, err
		}
	}

	cv := v.LookupPath(cue.ParsePath("comment"))
	if cv.Exists() {
		if cv.Kind() != cue.BoolKind {
			return File{}, fmt.Errorf("%w: invalid type for field: comment (expected bool)", ErrInvalidConfig)
		}
		var b bool
		if err := cv.Decode(&b); err != nil {
			return File{}, fmt.Errorf("%w: invalid value for comment: %v", ErrInvalidConfig, err)
		}
		f.Comment = &b
	}
	return f, nil
}

func requireStringField(v cue.Value, name string) error {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return fmt.Errorf("%w: missing required field: %s", ErrInvalidConfig, name)
	}
	if f.Kind() != cue.StringKind {
		return fmt.Errorf("%w: invalid type for field: %s (expected string)", ErrInvalidConfig, name)
	}
	return nil
}

func optionalString(v cue.Value, name string, dst *string) error {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return nil
	}
	if f.Kind() != cue.StringKind {
		return fmt.Errorf("%w: invalid type for field: %s (expected string)", ErrInvalidConfig, name)
	}
	if err := f.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid value for %s: %v", ErrInvalidConfig, name, err)
	}
	return nil
}

func rejectUnknownFields(v cue.Value) error {
	it, err := v.Fields()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	var unknown []string
	for it.Next() {
		name := it.Selector().String()
		if _, ok := stringFields[name]; ok || name == "configVersion" || name == "comment" {
			continue
		}
		unknown = append(unknown, name)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: unknown field: %s", ErrInvalidConfig, strings.Join(unknown, ", "))
	}
	return nil
}
