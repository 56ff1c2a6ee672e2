package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/DaTT2001/warehouse-web/internal/application/dto"
	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/pkg/i18n"
)

// writeError traduce errores de dominio a status + dto.ErrorResponse en el idioma del request.
// El orden importa: ErrPreviewExpired también es ErrNoActiveOrder.
func writeError(c *fiber.Ctx, tr *i18n.Translator, err error) error {
	lang := GetLang(c, tr)
	msg := func(key string, args ...interface{}) string { return tr.T(lang, key, args...) }
	send := func(status int, code, message string) error {
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
	}

	var (
		verr      *dto.ValidationError
		partial   *domain.PartialCommitError
		exhausted *domain.ExhaustedError
		backend   *domain.BackendError
	)
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: msg(i18n.MsgInvalidInput),
			Details: verr.Details,
		})
	case errors.As(err, &partial):
		return c.Status(fiber.StatusBadGateway).JSON(dto.PartialCommitResponse{
			Code:          "PARTIAL_COMMIT",
			Message:       msg(i18n.MsgPartialCommit, partial.OrderID, partial.FailedStep),
			RunID:         partial.RunID,
			OrderID:       partial.OrderID,
			FailedStep:    partial.FailedStep,
			Completed:     nonNil(partial.Completed),
			Compensated:   nonNil(partial.Compensated),
			Uncompensated: nonNil(partial.Uncompensated),
		})
	case errors.As(err, &exhausted):
		return send(fiber.StatusServiceUnavailable, "ORDER_ID_EXHAUSTED", msg(i18n.MsgExhausted, exhausted.Attempts))
	case errors.Is(err, domain.ErrPreviewExpired):
		return send(fiber.StatusGone, "PREVIEW_EXPIRED", msg(i18n.MsgPreviewExpired))
	case errors.Is(err, domain.ErrNoActiveOrder):
		return send(fiber.StatusConflict, "NO_ACTIVE_ORDER", msg(i18n.MsgNoActiveOrder))
	case errors.Is(err, domain.ErrInsufficientStock):
		return send(fiber.StatusUnprocessableEntity, "INSUFFICIENT_STOCK", msg(i18n.MsgInsufficient))
	case errors.Is(err, domain.ErrInvalidInput):
		return send(fiber.StatusBadRequest, "INVALID_INPUT", msg(i18n.MsgInvalidInput))
	case errors.Is(err, domain.ErrProductNotFound):
		return send(fiber.StatusNotFound, "PRODUCT_NOT_FOUND", msg(i18n.MsgProductNotFound))
	case errors.Is(err, domain.ErrNotFound):
		return send(fiber.StatusNotFound, "NOT_FOUND", msg(i18n.MsgNotFound))
	case errors.Is(err, domain.ErrSessionExpired):
		return send(fiber.StatusUnauthorized, "SESSION_EXPIRED", msg(i18n.MsgSessionExpired))
	case errors.Is(err, domain.ErrUnauthorized):
		return send(fiber.StatusUnauthorized, "UNAUTHORIZED", msg(i18n.MsgUnauthorized))
	case errors.Is(err, domain.ErrForbidden):
		return send(fiber.StatusForbidden, "FORBIDDEN", msg(i18n.MsgForbidden))
	case errors.Is(err, domain.ErrUndoWindowClosed):
		return send(fiber.StatusConflict, "UNDO_WINDOW_CLOSED", msg(i18n.MsgUndoClosed))
	case errors.As(err, &backend):
		return backendError(c, backend, msg)
	case errors.Is(err, context.DeadlineExceeded):
		return send(fiber.StatusGatewayTimeout, "BACKEND_TIMEOUT", msg(i18n.MsgBackendFailure))
	default:
		c.Locals(LocalCause, err)
		return send(fiber.StatusInternalServerError, "INTERNAL", msg(i18n.MsgInternal))
	}
}

// backendError usa el mensaje del backend si lo trae; si no, el texto genérico traducido.
func backendError(c *fiber.Ctx, be *domain.BackendError, msg func(string, ...interface{}) string) error {
	status, code, fallback := fiber.StatusBadGateway, "BACKEND_ERROR", i18n.MsgBackendFailure
	switch {
	case be.NotFound():
		status, code, fallback = fiber.StatusNotFound, "NOT_FOUND", i18n.MsgNotFound
	case be.Status == fiber.StatusUnauthorized:
		status, code, fallback = fiber.StatusUnauthorized, "UNAUTHORIZED", i18n.MsgUnauthorized
	case be.Status == fiber.StatusForbidden:
		status, code, fallback = fiber.StatusForbidden, "FORBIDDEN", i18n.MsgForbidden
	case be.Service == "erp":
		fallback = i18n.MsgInventoryFailure
	}
	message := be.Message
	if message == "" {
		message = msg(fallback)
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
