// internal/core/domain/field.go
package domain

// Field representa un valor que puede estar presente o ausente.
// Los agentes de backup omiten campos o los rellenan con "null" de forma
// inconsistente; modelar la presencia explícitamente centraliza las reglas
// de neutralidad en las comparaciones en lugar de repartir nil-checks.
type Field[T any] struct {
	value   T
	present bool
}

// Present crea un Field con valor.
func Present[T any](v T) Field[T] {
	return Field[T]{value: v, present: true}
}

// Absent crea un Field sin valor.
func Absent[T any]() Field[T] {
	return Field[T]{}
}

// Get retorna el valor y si está presente.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.present
}

// IsPresent indica si el campo tiene valor.
func (f Field[T]) IsPresent() bool {
	return f.present
}

// OrZero retorna el valor, o el zero value si está ausente.
func (f Field[T]) OrZero() T {
	return f.value
}

// EqualStrict compara dos fields: la ausencia solo iguala a la ausencia.
func EqualStrict[T comparable](a, b Field[T]) bool {
	if a.present != b.present {
		return false
	}
	if !a.present {
		return true
	}
	return a.value == b.value
}

// EqualNeutral compara dos fields tratando la ausencia como evidencia
// neutral: un lado ausente nunca bloquea la igualdad.
func EqualNeutral[T comparable](a, b Field[T]) bool {
	if !a.present || !b.present {
		return true
	}
	return a.value == b.value
}

// EqualStrictFunc es EqualStrict con comparador explícito, para tipos no comparables.
func EqualStrictFunc[T any](a, b Field[T], eq func(T, T) bool) bool {
	if a.present != b.present {
		return false
	}
	if !a.present {
		return true
	}
	return eq(a.value, b.value)
}

// EqualNeutralFunc es EqualNeutral con comparador explícito.
func EqualNeutralFunc[T any](a, b Field[T], eq func(T, T) bool) bool {
	if !a.present || !b.present {
		return true
	}
	return eq(a.value, b.value)
}

// MapField aplica una transformación al valor si está presente.
func MapField[T, U any](f Field[T], fn func(T) U) Field[U] {
	if !f.present {
		return Absent[U]()
	}
	return Present(fn(f.value))
}
