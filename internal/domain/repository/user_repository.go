package repository

import (
	"context"

	"github.com/jhoicas/cuentas-por-pagar/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// GetByID y GetByUsername devuelven (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// CreateIfAbsent inserta el usuario salvo que el username ya exista; created indica si se insertó.
	CreateIfAbsent(ctx context.Context, user *entity.User) (created bool, err error)
	Count(ctx context.Context) (int, error)
}
