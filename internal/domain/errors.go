package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los adaptadores envuelven sus fallos con %w para que el handler HTTP los clasifique con errors.Is.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrConcurrentUpdate  = errors.New("el registro fue modificado por otra operación")
	ErrStore             = errors.New("error del almacén de datos")
)
