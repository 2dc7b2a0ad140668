package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/cuentas-por-pagar/internal/domain"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/entity"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/repository"
	"github.com/jhoicas/cuentas-por-pagar/pkg/config"
)

var bcryptCost = bcrypt.DefaultCost

// SeedUser usuario inicial con su contraseña en claro.
type SeedUser struct {
	Username string
	Password string
	Role     string
}

// DefaultSeedUsers los dos usuarios iniciales: uno admin y uno regular.
func DefaultSeedUsers(cfg config.SeedConfig) []SeedUser {
	return []SeedUser{
		{Username: "admin", Password: cfg.AdminPassword, Role: entity.RoleAdmin},
		{Username: "user", Password: cfg.UserPassword, Role: entity.RoleUser},
	}
}

// SeedUsers inserta los usuarios que aún no existen y devuelve cuántos se crearon.
// Ejecutarlo varias veces no duplica filas ni cambia contraseñas existentes.
func SeedUsers(ctx context.Context, repo repository.UserRepository, users []SeedUser) (int, error) {
	created := 0
	for _, su := range users {
		if su.Username == "" || su.Password == "" || !entity.ValidRole(su.Role) {
			return created, fmt.Errorf("seed %q: %w", su.Username, domain.ErrInvalidInput)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcryptCost)
		if err != nil {
			return created, fmt.Errorf("seed %q: hash: %w", su.Username, err)
		}
		ok, err := repo.CreateIfAbsent(ctx, &entity.User{
			Username:     su.Username,
			PasswordHash: string(hash),
			Role:         su.Role,
		})
		if err != nil {
			return created, fmt.Errorf("seed %q: %w", su.Username, err)
		}
		if ok {
			created++
		}
	}
	return created, nil
}
