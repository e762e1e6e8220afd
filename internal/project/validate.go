package project

import (
	"errors"
	"fmt"
)

// Contract violations reported by Validate.
var (
	ErrEmptyPath        = errors.New("empty project path")
	ErrNegativeSize     = errors.New("negative project size")
	ErrMissingBaseType  = errors.New("missing base type")
	ErrDuplicatePath    = errors.New("duplicate project path")
	ErrDuplicateVariant = errors.New("duplicate variant")
)

// Validate checks a single project record.
func (p Project) Validate() error {
	var errs []error
	if p.Path == "" {
		errs = append(errs, ErrEmptyPath)
	}
	if p.Size < 0 {
		errs = append(errs, fmt.Errorf("%w: %s has size %d", ErrNegativeSize, p.Path, p.Size))
	}
	if p.BaseType == "" {
		errs = append(errs, fmt.Errorf("%w: %s", ErrMissingBaseType, p.Path))
	}
	seen := make(map[Variant]bool, len(p.Variants))
	for _, v := range p.Variants {
		if seen[v] {
			errs = append(errs, fmt.Errorf("%w: %s lists %s twice", ErrDuplicateVariant, p.Path, v))
			continue
		}
		seen[v] = true
	}
	return errors.Join(errs...)
}

// Validate checks a discovery result set: every record must be valid and
// no two records may share a path. All violations are reported together.
func Validate(projects []Project) error {
	var errs []error
	seen := make(map[string]bool, len(projects))
	for _, p := range projects {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
		if p.Path == "" {
			continue
		}
		if seen[p.Path] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicatePath, p.Path))
			continue
		}
		seen[p.Path] = true
	}
	return errors.Join(errs...)
}

// Violations flattens an error returned by Validate into its individual
// messages, for diagnostics display.
func Violations(err error) []string {
	if err == nil {
		return nil
	}
	type unwrapper interface{ Unwrap() []error }
	var out []string
	var walk func(error)
	walk = func(e error) {
		if j, ok := e.(unwrapper); ok {
			for _, inner := range j.Unwrap() {
				walk(inner)
			}
			return
		}
		out = append(out, e.Error())
	}
	walk(err)
	return out
}
