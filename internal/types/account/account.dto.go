package account

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     Role   `json:"role,omitempty" validate:"omitempty,oneof=client gym_owner super_admin"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User  Account `json:"user"`
	Token string  `json:"token"`
}

type ListFilter struct {
	Role     Role
	IsActive *bool
}

type ActivationResult struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	User    Account `json:"user"`
}
