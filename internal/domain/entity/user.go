package entity

import "time"

// User representa una identidad emitida por el proveedor de identidad.
// PasswordHash solo lo usa el proveedor local; con Supabase queda vacío.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// DisplayName devuelve el nombre visible: metadata name, si no el email, si no "Usuario".
func (u *User) DisplayName() string {
	if u == nil {
		return "Usuario"
	}
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return "Usuario"
}
