package entity

import "time"

// User es el actor que opera la terminal; solo lectura, para atribución de
// auditoría en ventas y movimientos.
type User struct {
	ID        string
	Username  string
	FullName  string
	Role      string // "admin" | "cajero"
	CreatedAt time.Time
}
