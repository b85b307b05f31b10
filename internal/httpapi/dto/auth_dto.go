package dto

// Data Transfer Objects for the signup and token-exchange endpoints

// SignupRequest: payload for POST /v1/auth/signup/
type SignupRequest struct {
	Username string `json:"username" binding:"required,max=150,username"`
	Email    string `json:"email" binding:"required,email,max=254"`
}

// SignupResponse echoes the accepted identity; the confirmation code travels
// by mail, never in the response.
type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenRequest: payload for POST /v1/auth/token/
type TokenRequest struct {
	Username         string `json:"username" binding:"required,max=150,username"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
