package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type CreateUserRequest struct {
	Username    string `json:"username"     validate:"required"`
	DisplayName string `json:"display_name" validate:"required"`
	Password    string `json:"password"     validate:"required,min=6"`
	Role        string `json:"role"         validate:"required,oneof=admin staff"`
}

type UpdateUserRequest struct {
	DisplayName string `json:"display_name"`
	Password    string `json:"password" validate:"omitempty,min=6"`
	Role        string `json:"role"     validate:"omitempty,oneof=admin staff"`
}

type UserResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Active      bool   `json:"active"`
}
