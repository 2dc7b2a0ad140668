package entity

// Roles válidos para User. Admin es superconjunto de User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole indica si el rol es uno de los dos admitidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User representa un usuario del sistema. Solo se crea por seeding.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt hash
	Role         string // admin, user
}

// IsAdmin indica si el usuario tiene rol admin.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
