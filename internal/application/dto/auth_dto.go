package dto

// VerifyTokenRequest cuerpo de POST /api/auth/verify-token.
type VerifyTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// TokenInfo datos decodificados de un token.
type TokenInfo struct {
	UID           string `json:"uid"`
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
}

// UserProfile perfil del usuario autenticado (GET /api/auth/me).
type UserProfile struct {
	UID           string `json:"uid"`
	Email         string `json:"email,omitempty"`
	DisplayName   string `json:"displayName,omitempty"`
	PhotoURL      string `json:"photoURL,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
}
