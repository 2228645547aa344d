package model

import "fmt"

// InvalidAllocationError reports a numeric field outside its allowed range:
// an allocation or availability percent outside [0,100], or negative effort.
type InvalidAllocationError struct {
	TaskID int
	Role   string
	Field  string
	Value  float64
}

func (e *InvalidAllocationError) Error() string {
	switch {
	case e.Role != "" && e.TaskID != 0:
		return fmt.Sprintf("task %d: role %q: %s %g out of range", e.TaskID, e.Role, e.Field, e.Value)
	case e.Role != "":
		return fmt.Sprintf("role %q: %s %g out of range", e.Role, e.Field, e.Value)
	default:
		return fmt.Sprintf("task %d: %s %g out of range", e.TaskID, e.Field, e.Value)
	}
}

// UnknownRoleError reports an assignment referencing a role that is not
// declared in the document's role set.
type UnknownRoleError struct {
	TaskID int
	Role   string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("task %d: assignment references unknown role %q", e.TaskID, e.Role)
}

// InvalidDocumentError reports a structural problem with the document that is
// not tied to a single numeric field, such as duplicate task ids.
type InvalidDocumentError struct {
	Reason string
}

func (e *InvalidDocumentError) Error() string {
	return fmt.Sprintf("invalid project document: %s", e.Reason)
}
