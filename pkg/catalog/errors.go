package catalog

import "fmt"

// UnknownCourseError is returned when a key does not exist in the store
type UnknownCourseError struct {
	Key string
}

func (e *UnknownCourseError) Error() string {
	return fmt.Sprintf("unknown course %q", e.Key)
}

// UnknownSpecializationError is returned when a specialization code does not exist
type UnknownSpecializationError struct {
	Key string
}

func (e *UnknownSpecializationError) Error() string {
	return fmt.Sprintf("unknown specialization %q", e.Key)
}

// DuplicateKeyError means two records still share a key after disambiguation
type DuplicateKeyError struct {
	Kind string // "course" or "specialization"
	Key  string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate %s key %q", e.Kind, e.Key)
}
