package dto

import "time"

// LoginRequest body de POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// IdentityResponse datos del operador leídos del token.
type IdentityResponse struct {
	Username  string    `json:"username"`
	FullName  string    `json:"fullname"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// LoginResponse token emitido por el backend de bodega + identidad decodificada.
type LoginResponse struct {
	Token string           `json:"token"`
	User  IdentityResponse `json:"user"`
}

// SessionResponse GET /api/session (temporizador de sesión).
type SessionResponse struct {
	User        IdentityResponse `json:"user"`
	SecondsLeft int              `json:"secondsLeft"`
}
