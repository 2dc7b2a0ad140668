package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/dto"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/access"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/entity"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/repository"
	"github.com/jhoicas/cuentas-por-pagar/pkg/jwt"
)

// TokenConfig configuración para generación de tokens.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// TokenBlacklist registra los tokens revocados en logout.
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// TokenInfo datos del token presentado, necesarios para revocarlo.
type TokenInfo struct {
	JTI       string
	ExpiresAt time.Time
}

// AuthUseCase casos de uso de autenticación: login, sesión actual, tokens y logout.
type AuthUseCase struct {
	users     repository.UserRepository
	blacklist TokenBlacklist
	tokenCfg  TokenConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, blacklist TokenBlacklist, tokenCfg TokenConfig) *AuthUseCase {
	return &AuthUseCase{users: users, blacklist: blacklist, tokenCfg: tokenCfg}
}

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// dummyPasswordHash hash de referencia para igualar el costo cuando el usuario no existe.
func dummyPasswordHash() []byte {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("cxp-dummy-password"), bcryptCost)
	})
	return dummyHash
}

// Authenticate verifica username/password. El username se compara tal cual, sin recortar
// espacios. Devuelve domain.ErrUserNotFound o
// domain.ErrBadCredential (ambos envuelven domain.ErrUnauthorized); el transporte no debe distinguirlos.
func (uc *AuthUseCase) Authenticate(ctx context.Context, username, password string) (*access.Session, error) {
	var verr domain.ValidationError
	if strings.TrimSpace(username) == "" {
		verr.Add("username")
	}
	if password == "" {
		verr.Add("password")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash(), []byte(password))
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrBadCredential
	}
	return sessionFor(user), nil
}

// Login autentica y emite el token para clientes API.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*access.Session, *dto.LoginResponse, error) {
	session, err := uc.Authenticate(ctx, in.Username, in.Password)
	if err != nil {
		return nil, nil, err
	}
	token, expiresAt, err := uc.IssueToken(session)
	if err != nil {
		return nil, nil, err
	}
	return session, &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		User:      ToUserResponse(session),
	}, nil
}

// CurrentUser resuelve la sesión a su usuario. Devuelve (nil, nil) si la sesión
// apunta a un usuario que ya no existe; el llamador debe invalidarla.
func (uc *AuthUseCase) CurrentUser(ctx context.Context, s *access.Session) (*entity.User, error) {
	if s == nil || s.UserID == 0 {
		return nil, nil
	}
	return uc.users.GetByID(ctx, s.UserID)
}

// Refresh devuelve una sesión construida con los datos actuales del usuario, o
// domain.ErrSessionInvalid si el usuario ya no existe.
func (uc *AuthUseCase) Refresh(ctx context.Context, s *access.Session) (*access.Session, error) {
	user, err := uc.CurrentUser(ctx, s)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrSessionInvalid
	}
	return sessionFor(user), nil
}

// IssueToken firma un JWT para la sesión.
func (uc *AuthUseCase) IssueToken(s *access.Session) (string, time.Time, error) {
	if s == nil {
		return "", time.Time{}, domain.ErrUnauthorized
	}
	expiresAt := time.Now().Add(uc.tokenCfg.TTL)
	token, err := jwt.Generate(uc.tokenCfg.Secret, s.UserID, s.Username, s.Role, uc.tokenCfg.Issuer, uc.tokenCfg.TTL)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// ParseToken valida el token y que no haya sido revocado.
func (uc *AuthUseCase) ParseToken(ctx context.Context, token string) (*access.Session, *TokenInfo, error) {
	claims, err := jwt.Parse(uc.tokenCfg.Secret, token)
	if err != nil {
		return nil, nil, errors.Join(domain.ErrSessionInvalid, err)
	}
	info := &TokenInfo{JTI: claims.ID}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	if uc.blacklist != nil {
		revoked, err := uc.blacklist.IsRevoked(ctx, info.JTI)
		if err != nil {
			return nil, nil, err
		}
		if revoked {
			return nil, nil, domain.ErrSessionInvalid
		}
	}
	return &access.Session{UserID: claims.UserID, Username: claims.Username, Role: claims.Role}, info, nil
}

// Logout revoca el token presentado (si lo hay) hasta su expiración.
// La sesión por cookie la destruye el transporte.
func (uc *AuthUseCase) Logout(ctx context.Context, info *TokenInfo) error {
	if info == nil || uc.blacklist == nil {
		return nil
	}
	return uc.blacklist.Revoke(ctx, info.JTI, info.ExpiresAt)
}

// ToUserResponse convierte la sesión en la salida pública del usuario.
func ToUserResponse(s *access.Session) dto.UserResponse {
	if s == nil {
		return dto.UserResponse{}
	}
	return dto.UserResponse{ID: s.UserID, Username: s.Username, Role: s.Role}
}

func sessionFor(u *entity.User) *access.Session {
	return &access.Session{UserID: u.ID, Username: u.Username, Role: u.Role}
}
