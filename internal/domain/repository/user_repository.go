package repository

import "github.com/tu-usuario/pos-backoffice/internal/domain/entity"

// UserRepository lookup de usuarios (solo lectura, atribución de auditoría).
type UserRepository interface {
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
}
