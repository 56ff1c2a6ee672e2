// Package auth login contra el servicio de bodega y lectura de la sesión activa.
package auth

import (
	"context"
	"strings"

	"github.com/DaTT2001/warehouse-web/internal/application/dto"
	"github.com/DaTT2001/warehouse-web/internal/application/session"
	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/internal/domain/repository"
)

// AuthUseCase el token lo emite el backend; aquí solo se decodifica.
type AuthUseCase struct {
	gw       repository.AuthGateway
	sessions *session.Reader
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(gw repository.AuthGateway, sessions *session.Reader) *AuthUseCase {
	return &AuthUseCase{gw: gw, sessions: sessions}
}

// Login reenvía las credenciales y devuelve el token con la identidad decodificada.
// Un token ilegible o ya vencido se rechaza.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	token, err := uc.gw.Login(ctx, in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	id, err := uc.sessions.RequireActive(token)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: ToIdentityResponse(id)}, nil
}

// Session identidad y segundos restantes (temporizador de sesión).
func (uc *AuthUseCase) Session(id entity.Identity) dto.SessionResponse {
	return dto.SessionResponse{
		User:        ToIdentityResponse(id),
		SecondsLeft: int(id.Remaining(uc.sessions.Now()).Seconds()),
	}
}

// ToIdentityResponse vista pública de la identidad.
func ToIdentityResponse(id entity.Identity) dto.IdentityResponse {
	return dto.IdentityResponse{
		Username:  id.Username,
		FullName:  id.FullName,
		Role:      id.Role,
		ExpiresAt: id.ExpiresAt,
	}
}
