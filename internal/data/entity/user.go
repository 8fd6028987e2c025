package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

type AuthProvider string

const (
	ProviderLocal     AuthProvider = "local"
	ProviderGoogle    AuthProvider = "google"
	ProviderMicrosoft AuthProvider = "microsoft"
)

type User struct {
	Base
	Name         string       `db:"name"`
	Email        string       `db:"email"`
	PasswordHash string       `db:"password"`
	Phone        *string      `db:"phone"`
	Provider     AuthProvider `db:"provider"`
	ProviderID   *string      `db:"provider_id"`
	Role         UserRole     `db:"role"`
	IsActive     bool         `db:"is_active"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
