package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/DaTT2001/warehouse-web/internal/application/dto"
	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/pkg/i18n"
)

type authService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
	Session(id entity.Identity) dto.SessionResponse
}

// AuthHandler login y sesión.
type AuthHandler struct {
	uc authService
	tr *i18n.Translator
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc authService, tr *i18n.Translator) *AuthHandler {
	return &AuthHandler{uc: uc, tr: tr}
}

// Login godoc
// @Summary      Iniciar sesión contra el servicio de bodega
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: h.tr.T(GetLang(c, h.tr), i18n.MsgInvalidInput)})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		var be *domain.BackendError
		if errors.As(err, &be) && be.Message == "" && !be.NotFound() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "LOGIN_FAILED", Message: h.tr.T(GetLang(c, h.tr), i18n.MsgLoginFailed)})
		}
		return writeError(c, h.tr, err)
	}
	return c.JSON(out)
}

// Session godoc
// @Summary      Identidad y segundos restantes de la sesión
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	return c.JSON(h.uc.Session(GetIdentity(c)))
}
