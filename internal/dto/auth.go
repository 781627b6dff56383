package dto

// ── auth ──

// LoginRequest admin login.
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=40"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest exchanges a refresh token for a new pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest optionally revokes the refresh token as well.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse issued token pair.
type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int           `json:"expires_in"` // access token lifetime in seconds
	Admin        AdminResponse `json:"admin"`
}

// AdminResponse back-office account, without the password hash.
type AdminResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
