package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/dto"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/entity"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/repository"
	"github.com/jhoicas/cuentas-por-pagar/internal/infrastructure/sessionstore"
	"github.com/jhoicas/cuentas-por-pagar/internal/infrastructure/sqlite"
	"github.com/jhoicas/cuentas-por-pagar/pkg/config"
)

func TestMain(m *testing.M) {
	bcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

var testSeed = config.SeedConfig{AdminPassword: "admin123", UserPassword: "user123"}

func newUserRepo(t *testing.T) repository.UserRepository {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlite.NewUserRepository(db)
}

func newSeededUseCase(t *testing.T) (*AuthUseCase, repository.UserRepository) {
	t.Helper()
	repo := newUserRepo(t)
	_, err := SeedUsers(context.Background(), repo, DefaultSeedUsers(testSeed))
	require.NoError(t, err)
	store := sessionstore.NewMemory(0)
	t.Cleanup(func() { _ = store.Close() })
	uc := NewAuthUseCase(repo, sessionstore.NewBlacklist(store), TokenConfig{
		Secret: "secret-de-pruebas",
		TTL:    time.Hour,
		Issuer: "cxp-test",
	})
	return uc, repo
}

func TestAuthenticate_UsuariosSembrados(t *testing.T) {
	uc, _ := newSeededUseCase(t)
	ctx := context.Background()

	for _, su := range DefaultSeedUsers(testSeed) {
		s, err := uc.Authenticate(ctx, su.Username, su.Password)
		require.NoError(t, err, su.Username)
		assert.Equal(t, su.Role, s.Role)
		assert.Equal(t, su.Username, s.Username)
		assert.NotZero(t, s.UserID)
	}
}

func TestAuthenticate_FallosIndistinguibles(t *testing.T) {
	uc, _ := newSeededUseCase(t)
	ctx := context.Background()

	_, wrongPass := uc.Authenticate(ctx, "admin", "incorrecta")
	_, noUser := uc.Authenticate(ctx, "fantasma", "incorrecta")

	assert.ErrorIs(t, wrongPass, domain.ErrBadCredential)
	assert.ErrorIs(t, noUser, domain.ErrUserNotFound)
	assert.ErrorIs(t, wrongPass, domain.ErrUnauthorized)
	assert.ErrorIs(t, noUser, domain.ErrUnauthorized)
}

func TestAuthenticate_UsernameExacto(t *testing.T) {
	uc, _ := newSeededUseCase(t)
	ctx := context.Background()

	for _, name := range []string{"admin ", " admin", "ADMIN"} {
		_, err := uc.Authenticate(ctx, name, testSeed.AdminPassword)
		assert.ErrorIs(t, err, domain.ErrUserNotFound, "username %q", name)
	}
}

func TestAuthenticate_CamposVacios(t *testing.T) {
	uc, _ := newSeededUseCase(t)
	_, err := uc.Authenticate(context.Background(), " ", "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"username", "password"}, verr.Fields)
}

func TestLogin_EmiteTokenValido(t *testing.T) {
	uc, _ := newSeededUseCase(t)
	ctx := context.Background()

	session, resp, err := uc.Login(ctx, dto.LoginRequest{Username: "user", Password: "user123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, resp.User.Role)
	assert.NotEmpty(t, resp.ExpiresAt)

	parsed, info, err := uc.ParseToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, session, parsed)
	assert.NotEmpty(t, info.JTI)
	assert.True(t, info.ExpiresAt.After(time.Now()))
}

func TestLogout_RevocaElToken(t *testing.T) {
	uc, _ := newSeededUseCase(t)
	ctx := context.Background()

	_, resp, err := uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	_, info, err := uc.ParseToken(ctx, resp.Token)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, info))

	_, _, err = uc.ParseToken(ctx, resp.Token)
	assert.ErrorIs(t, err, domain.ErrSessionInvalid)
}

func TestParseToken_Invalido(t *testing.T) {
	uc, _ := newSeededUseCase(t)
	_, _, err := uc.ParseToken(context.Background(), "no-es-un-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh_UsuarioInexistenteInvalidaSesion(t *testing.T) {
	uc, repo := newSeededUseCase(t)
	ctx := context.Background()

	admin, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	s, err := uc.Refresh(ctx, sessionFor(admin))
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, s.Role)

	ghost := sessionFor(&entity.User{ID: 9999, Username: "borrado", Role: entity.RoleAdmin})
	u, err := uc.CurrentUser(ctx, ghost)
	require.NoError(t, err)
	assert.Nil(t, u)

	_, err = uc.Refresh(ctx, ghost)
	assert.ErrorIs(t, err, domain.ErrSessionInvalid)
}

func TestSeedUsers_Idempotente(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	created, err := SeedUsers(ctx, repo, DefaultSeedUsers(testSeed))
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	created, err = SeedUsers(ctx, repo, DefaultSeedUsers(testSeed))
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSeedUsers_RolInvalido(t *testing.T) {
	repo := newUserRepo(t)
	_, err := SeedUsers(context.Background(), repo, []SeedUser{{Username: "x", Password: "y", Role: "root"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
