package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrForbidden         = errors.New("acceso denegado")
	ErrDuplicateSKU      = errors.New("sku duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrBundleCycle       = errors.New("la composición del bundle genera un ciclo")
)

// ValidationError falla de validación de entrada. Siempre se detecta antes de
// cualquier escritura, indicando el campo ofensivo.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación: campo %q %s", e.Field, e.Reason)
}

// Validation construye un ValidationError para el campo indicado.
func Validation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// AsValidation extrae el ValidationError de la cadena de errores, si existe.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// PersistenceError falla de almacenamiento o transporte: la transacción quedó
// revertida y la operación puede reintentarse con seguridad.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistencia (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence envuelve err como PersistenceError. Si err ya es un error de
// dominio (validación, stock insuficiente, sku duplicado, etc.) se devuelve
// intacto para no enmascarar la causa real del rollback.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomain(err) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsDomain indica si err pertenece a la taxonomía de dominio (no es una falla
// de infraestructura).
func IsDomain(err error) bool {
	if _, ok := AsValidation(err); ok {
		return true
	}
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrDuplicateSKU) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrBundleCycle)
}
