package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/DaTT2001/warehouse-web/internal/application/dto"
	"github.com/DaTT2001/warehouse-web/pkg/i18n"
)

type logService interface {
	List(ctx context.Context, page int) (*dto.LogListResponse, error)
}

// LogHandler diario de actividad.
type LogHandler struct {
	uc logService
	tr *i18n.Translator
}

// NewLogHandler construye el handler.
func NewLogHandler(uc logService, tr *i18n.Translator) *LogHandler {
	return &LogHandler{uc: uc, tr: tr}
}

// List godoc
// @Summary      Diario de actividad
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Param        page  query  int  false  "Página"  default(1)
// @Success      200  {object}  dto.LogListResponse
// @Router       /api/logs [get]
func (h *LogHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.QueryInt("page", 1))
	if err != nil {
		return writeError(c, h.tr, err)
	}
	return c.JSON(out)
}
