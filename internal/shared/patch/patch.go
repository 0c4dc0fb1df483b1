// Package patch tells apart the three states a field can have in a partial
// update body: absent, explicitly null, or set to a value.
package patch

import "encoding/json"

// Field is a nullable field of a partial update. Set is true when the key was
// present in the body; Value is nil when it was null.
type Field[T any] struct {
	Set   bool
	Value *T
}

// Some returns a Field set to v.
func Some[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: &v}
}

// Null returns a Field that clears the stored value.
func Null[T any]() Field[T] {
	return Field[T]{Set: true}
}

// UnmarshalJSON runs only for keys present in the body, null included.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		f.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.Value = &v
	return nil
}

// Apply overwrites *dst when the field was supplied.
func (f Field[T]) Apply(dst **T) {
	if f.Set {
		*dst = f.Value
	}
}
