package ecs

import "reflect"

// Key binds a component name to the Go shape stored under it. Components are
// stored as *T so systems can mutate fields in place.
type Key[T any] struct {
	name string
}

func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

func (k Key[T]) Name() string { return k.name }

// Get returns the component, or false when it is missing or stored with a
// different shape.
func (k Key[T]) Get(e *Entity) (*T, bool) {
	raw, ok := e.components[k.name]
	if !ok {
		return nil, false
	}
	c, ok := raw.(*T)
	return c, ok && c != nil
}

// Of pairs v with this key for entity creation.
func (k Key[T]) Of(v *T) Attachment {
	return Attachment{name: k.name, data: v}
}

// Attachment is a named component value waiting to be attached.
type Attachment struct {
	name string
	data any
}

func Attach(name string, data any) Attachment {
	return Attachment{name: name, data: data}
}

func (a Attachment) Name() string { return a.name }
func (a Attachment) Data() any    { return a.data }

// SameShape reports whether a and b are values of the same dynamic type.
func SameShape(a, b any) bool {
	return reflect.TypeOf(a) == reflect.TypeOf(b)
}
