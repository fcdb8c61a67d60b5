package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrValidation        = errors.New("entrada inválida")
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// Error es un error de dominio con mensaje legible para el cliente.
// Unwrap devuelve sus categorías, así errors.Is funciona con ErrValidation y con la causa concreta.
type Error struct {
	kinds   []error
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap expone las categorías del error (ErrValidation, ErrNotFound, ...).
func (e *Error) Unwrap() []error { return e.kinds }

// NewValidationError construye un error de validación (HTTP 400).
func NewValidationError(format string, args ...any) error {
	return &Error{kinds: []error{ErrValidation}, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError construye un error de recurso inexistente (HTTP 404).
func NewNotFoundError(resource, id string) error {
	msg := resource + " not found"
	if id != "" {
		msg = fmt.Sprintf("%s with id %s not found", resource, id)
	}
	return &Error{kinds: []error{ErrNotFound}, Message: msg}
}

// NewInsufficientStockError es un error de validación que además identifica la falta de stock.
func NewInsufficientStockError(productName string, available, requested int64) error {
	return &Error{
		kinds: []error{ErrValidation, ErrInsufficientStock},
		Message: fmt.Sprintf("Insufficient stock for product %s. Available: %d, Requested: %d",
			productName, available, requested),
	}
}

// NewUnauthorizedError construye un error de autenticación (HTTP 401).
func NewUnauthorizedError(message string) error {
	return &Error{kinds: []error{ErrUnauthorized}, Message: message}
}
