package util

import (
	"fmt"
	"reflect"
	"strings"
)

// IsStructInitialized returns an error naming every exported field of the struct s
// points to that still holds its zero value. Fields tagged `wire:"-"` are skipped.
func IsStructInitialized(s interface{}) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return fmt.Errorf("struct is nil")
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return fmt.Errorf("expected struct, got %s", v.Kind())
	}

	var missing []string
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("wire") == "-" {
			continue
		}

		if v.Field(i).IsZero() {
			missing = append(missing, field.Name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("struct fields not initialized: %s", strings.Join(missing, ", "))
	}

	return nil
}
