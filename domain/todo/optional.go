package todo

import (
	"bytes"
	"encoding/json"
)

var jsonNull = []byte("null")

// Optional is a request field that is either absent, explicitly null, or set
// to a value. The zero value is absent.
type Optional[T any] struct {
	value   T
	present bool
	null    bool
}

// Some returns a present field holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// Null returns a present field holding an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{present: true, null: true}
}

// IsPresent reports whether the field appeared in the request, null or not.
func (o Optional[T]) IsPresent() bool {
	return o.present
}

// IsNull reports an explicit null.
func (o Optional[T]) IsNull() bool {
	return o.present && o.null
}

// Get returns the value and true when the field is present and non-null.
func (o Optional[T]) Get() (T, bool) {
	if !o.present || o.null {
		var zero T
		return zero, false
	}
	return o.value, true
}

// IsZero lets `omitzero` drop absent fields when marshalling.
func (o Optional[T]) IsZero() bool {
	return !o.present
}

// MarshalJSON implements json.Marshaler.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.present || o.null {
		return jsonNull, nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked for keys that
// appear in the document, which is what makes absence observable.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.present = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		var zero T
		o.value = zero
		o.null = true
		return nil
	}
	o.null = false
	return json.Unmarshal(data, &o.value)
}
