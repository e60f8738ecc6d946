package models

// AuthUser is the identity-provider view of a user. This service never stores
// user records itself.
type AuthUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// Session is an issued bearer token plus the user it belongs to.
type Session struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
	User        AuthUser
}

// AuthResponse is the signup/login response body.
type AuthResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        AuthUser `json:"user"`
	ExpiresIn   int64    `json:"expires_in"`
}
