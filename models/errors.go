package models

import "fmt"

// ValidationError được các hook trả về khi bản ghi vi phạm ràng buộc schema.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
