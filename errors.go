package simconf

import (
	"errors"
	"fmt"
)

// ErrConfigNotFound is returned by Load when the root configuration file
// does not exist. Missing included files are reported as *ParseError at the
// include line instead.
var ErrConfigNotFound = errors.New("config file not found")

// ParseError reports a malformed configuration line. Resolution is
// all-or-nothing: the first parse error aborts the whole load.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// SectionError reports a reference to a section that no parsed file defines,
// either as a requested resolve key or through an "extends" list.
type SectionError struct {
	Name string
	Ref  Source // where the reference occurred; zero when requested by the caller
}

func (e *SectionError) Error() string {
	if e.Ref.File != "" {
		return fmt.Sprintf("%s: section [%s] not found", e.Ref, e.Name)
	}
	return fmt.Sprintf("section [%s] not found", e.Name)
}

// MergeConflictError reports two definitions disagreeing on the value of the
// same parameter path. Both originating locations are named so the authoring
// bug can be fixed at either site.
type MergeConflictError struct {
	Path     string
	Existing Source
	Incoming Source
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("conflicting values for %q: %s vs %s", e.Path, e.Existing, e.Incoming)
}

// RangeError reports a malformed numeric range or set descriptor. Range
// descriptors are opaque strings until matched against an integer segment,
// so this surfaces at the Match call that touched the descriptor, not at
// load time.
type RangeError struct {
	Token string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("malformed numeric range %q", e.Token)
}
