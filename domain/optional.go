package domain

import "encoding/json"

// Optional distinguishes a JSON field that was left out from one sent as null.
//
//	{}                -> Present=false
//	{"phone": null}   -> Present=true, Null=true
//	{"phone": "0120"} -> Present=true, Value="0120"
type Optional[T any] struct {
	Present bool
	Null    bool
	Value   T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Present: true, Value: v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Present: true, Null: true}
}

// Set reports whether the field carries a non-null value.
func (o Optional[T]) Set() bool {
	return o.Present && !o.Null
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
