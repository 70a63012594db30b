package metamodel

import (
	"errors"
	"fmt"

	"entity-binder/internal/index"
)

var (
	// ErrConfiguration is returned for contradictory or incomplete annotations.
	ErrConfiguration = errors.New("configuration error")
	// ErrAssertion is returned when the type resolver and the index disagree
	// on a class's members.
	ErrAssertion = errors.New("assertion failure")
	// ErrClassLoading is returned when an indexed class cannot be loaded.
	ErrClassLoading = errors.New("class loading failure")
)

// AnnotationError reports a configuration error on a class or member.
type AnnotationError struct {
	Class  index.DotName
	Member string
	Msg    string
}

func (e *AnnotationError) Error() string {
	target := e.Class.String()
	if e.Member != "" {
		target += "." + e.Member
	}

	return fmt.Sprintf("%s: %s", target, e.Msg)
}

// Unwrap makes errors.Is(err, ErrConfiguration) hold.
func (e *AnnotationError) Unwrap() error {
	return ErrConfiguration
}

func annotationErrorf(class index.DotName, member, format string, args ...any) error {
	return &AnnotationError{Class: class, Member: member, Msg: fmt.Sprintf(format, args...)}
}

func assertionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrAssertion, fmt.Sprintf(format, args...))
}
