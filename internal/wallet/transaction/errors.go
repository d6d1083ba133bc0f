package transaction

import (
	"fmt"
)

// MissingFieldError is returned when a required field is absent before hashing
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// InvalidFieldError is returned when a field is present but unusable for the transaction type
type InvalidFieldError struct {
	Field  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
}

// UnsupportedTransactionTypeError is returned for a type id outside Legacy, AccessList and FeeMarket
type UnsupportedTransactionTypeError struct {
	Type uint64
}

func (e *UnsupportedTransactionTypeError) Error() string {
	return fmt.Sprintf("unsupported transaction type: %d", e.Type)
}
