package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/pkg/i18n"
)

// Locals keys en Fiber.
const (
	LocalIdentity = "identity"
	LocalLang     = "lang"
	LocalCause    = "error_cause" // error interno; lo registra RequestLogger
)

// IdentityReader lee y valida el token del operador (session.Reader).
type IdentityReader interface {
	RequireActive(token string) (entity.Identity, error)
}

// LanguageMiddleware resuelve el idioma: ?lang=, luego Accept-Language, luego el por defecto.
func LanguageMiddleware(tr *i18n.Translator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalLang, tr.Match(c.Query("lang"), c.Get(fiber.HeaderAcceptLanguage)))
		return c.Next()
	}
}

// GetLang idioma del request (por defecto el del traductor).
func GetLang(c *fiber.Ctx, tr *i18n.Translator) language.Tag {
	if tag, ok := c.Locals(LocalLang).(language.Tag); ok {
		return tag
	}
	return tr.Default()
}

// AuthMiddleware exige Bearer token legible y no vencido; deja la identidad en c.Locals.
// El token se reenvía luego a la API de bodega en cada llamada.
func AuthMiddleware(reader IdentityReader, tr *i18n.Translator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return writeError(c, tr, domain.ErrUnauthorized)
		}
		id, err := reader.RequireActive(strings.TrimSpace(parts[1]))
		if err != nil {
			return writeError(c, tr, err)
		}
		c.Locals(LocalIdentity, id)
		return c.Next()
	}
}

// GetIdentity identidad cargada por AuthMiddleware (vacía si no pasó por él).
func GetIdentity(c *fiber.Ctx) entity.Identity {
	id, _ := c.Locals(LocalIdentity).(entity.Identity)
	return id
}

// GetRole rol del operador.
func GetRole(c *fiber.Ctx) string {
	return GetIdentity(c).Role
}

// RequireRole 403 si el rol del token no está entre los permitidos. Va después de AuthMiddleware.
func RequireRole(tr *i18n.Translator, roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		if _, ok := allowed[GetRole(c)]; !ok {
			return writeError(c, tr, domain.ErrForbidden)
		}
		return c.Next()
	}
}

// VisitRecorder diario de actividad sin bloqueo.
type VisitRecorder interface {
	Log(id entity.Identity, action string)
}

// VisitTrail registra "Truy cập {ruta}" cuando el operador abre una vista (GET exitoso).
func VisitTrail(rec VisitRecorder, tr *i18n.Translator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil && c.Method() == fiber.MethodGet && c.Response().StatusCode() < fiber.StatusBadRequest {
			rec.Log(GetIdentity(c), tr.TDefault(i18n.ActionVisit, c.Path()))
		}
		return err
	}
}

// RequestLogger una línea por request.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Warn()
		}
		if cause, ok := c.Locals(LocalCause).(error); ok {
			ev = log.Error().Err(cause)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("elapsed", time.Since(start)).
			Str("user", GetIdentity(c).Username).
			Msg("request")
		return err
	}
}
