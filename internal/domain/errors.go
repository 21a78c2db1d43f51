package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrIdentityRejected   = errors.New("el proveedor de identidad rechazó la operación")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)

// IdentityError transporta el mensaje devuelto por el proveedor de identidad.
// Es el único error cuyo texto se expone tal cual al cliente (p. ej. email duplicado).
type IdentityError struct {
	Message string
}

func (e *IdentityError) Error() string { return e.Message }

// Unwrap permite errors.Is(err, ErrIdentityRejected).
func (e *IdentityError) Unwrap() error { return ErrIdentityRejected }

// NewIdentityError construye un rechazo del proveedor con su mensaje.
func NewIdentityError(msg string) error {
	if msg == "" {
		msg = ErrIdentityRejected.Error()
	}
	return &IdentityError{Message: msg}
}
