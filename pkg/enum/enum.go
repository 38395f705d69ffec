package enum

import (
	"fmt"
	"reflect"
)

// registry maps an enum type name to its registered values.
var registry = map[string]any{}

type values[T comparable] map[string]T

// New registers one value of a string-backed enum type and returns it, so
// enum values can be declared as package variables.
func New[T comparable](value T) T {
	name := reflect.TypeOf(value).Name()
	set, ok := registry[name].(values[T])
	if !ok {
		set = values[T]{}
		registry[name] = set
	}

	set[reflect.ValueOf(value).String()] = value
	return value
}

// ToEnum parses s into a registered value of the enum type T.
func ToEnum[T comparable](s string) (T, error) {
	var zero T
	set, ok := registry[reflect.TypeOf(zero).Name()].(values[T])
	if !ok {
		return zero, fmt.Errorf("unregistered enum type %T", zero)
	}

	value, ok := set[s]
	if !ok {
		return zero, fmt.Errorf("invalid %T value %q", zero, s)
	}

	return value, nil
}
