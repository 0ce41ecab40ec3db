package transport

type ProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

type RegisterRequest struct {
	Email           string          `json:"email"`
	Password        string          `json:"password"`
	PasswordConfirm string          `json:"passwordConfirm"`
	RoleID          string          `json:"roleId"`
	Profile         *ProfileRequest `json:"profile"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenRefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ValidateTokenRequest struct {
	Token string `json:"token"`
}

type LogoutRequest struct {
	UserID string `json:"userId"`
}

type JwtResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	ID           string `json:"id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
}

type TokenRefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type RoleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UserResponse struct {
	ID        string       `json:"id"`
	Email     string       `json:"email"`
	Role      RoleResponse `json:"role"`
	CreatedAt string       `json:"createdAt"`
	UpdatedAt string       `json:"updatedAt"`
}
