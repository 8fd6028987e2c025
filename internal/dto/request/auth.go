package request

import "strings"

// RegisterRequest accepts either firstName+lastName or a single name.
type RegisterRequest struct {
	FirstName            string  `json:"firstName" validate:"omitempty,max=255"`
	LastName             string  `json:"lastName" validate:"omitempty,max=255"`
	Name                 string  `json:"name" validate:"omitempty,max=255"`
	Email                string  `json:"email" validate:"required,email,max=255"`
	Phone                *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Password             string  `json:"password" validate:"required,min=6"`
	PasswordConfirmation string  `json:"password_confirmation,omitempty" validate:"omitempty,eqfield=Password"`
	Provider             string  `json:"provider,omitempty" validate:"omitempty,oneof=local google microsoft"`
}

// FullName joins firstName and lastName, falling back to name.
func (r RegisterRequest) FullName() string {
	full := strings.TrimSpace(strings.TrimSpace(r.FirstName) + " " + strings.TrimSpace(r.LastName))
	if full != "" {
		return full
	}
	return strings.TrimSpace(r.Name)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// OAuthLoginRequest carries the identity the client obtained from the provider.
type OAuthLoginRequest struct {
	Token      string  `json:"token" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Name       string  `json:"name" validate:"omitempty,max=255"`
	ProviderID *string `json:"provider_id,omitempty"`
}

type UpdateProfileRequest struct {
	Name  string  `json:"name" validate:"required,max=255"`
	Email string  `json:"email" validate:"required,email,max=255"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

type ChangePasswordRequest struct {
	CurrentPassword         string `json:"current_password" validate:"required"`
	NewPassword             string `json:"new_password" validate:"required,min=6"`
	NewPasswordConfirmation string `json:"new_password_confirmation" validate:"required,eqfield=NewPassword"`
}
