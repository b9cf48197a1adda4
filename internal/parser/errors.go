package parser

import (
	"errors"
	"fmt"
)

// SchemaError reports a document that does not have the structure its format
// requires. It is fatal for that document only.
type SchemaError struct {
	Format string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Format, e.Reason)
}

// IsSchemaError reports whether err wraps a *SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}
