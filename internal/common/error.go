package common

import "fmt"

// ConflictError reports a uniqueness violation on a named field. It matches
// ErrorAlreadyExists with errors.Is so callers that do not care about the
// field can treat it as a plain conflict.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return ErrorAlreadyExists.Error()
	}
	return fmt.Sprintf("%s %s", e.Field, ErrorAlreadyExists.Error())
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrorAlreadyExists
}
