package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/DaTT2001/warehouse-web/internal/application/dto"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/pkg/i18n"
)

type commitService interface {
	Get(ctx context.Context, id entity.Identity, runID string) (*entity.CommitRun, error)
	Recent(ctx context.Context, id entity.Identity, limit int) ([]*entity.CommitRun, error)
}

// CommitHandler consulta del diario de commits.
type CommitHandler struct {
	uc commitService
	tr *i18n.Translator
}

// NewCommitHandler construye el handler.
func NewCommitHandler(uc commitService, tr *i18n.Translator) *CommitHandler {
	return &CommitHandler{uc: uc, tr: tr}
}

// Get godoc
// @Summary      Corrida del diario de commits
// @Tags         commits
// @Security     Bearer
// @Produce      json
// @Param        runId  path  string  true  "Run ID"
// @Success      200  {object}  dto.CommitRunResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/commits/{runId} [get]
func (h *CommitHandler) Get(c *fiber.Ctx) error {
	run, err := h.uc.Get(c.UserContext(), GetIdentity(c), c.Params("runId"))
	if err != nil {
		return writeError(c, h.tr, err)
	}
	return c.JSON(dto.NewCommitRunResponse(run))
}

// List godoc
// @Summary      Corridas recientes del diario de commits
// @Tags         commits
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de corridas"  default(50)
// @Success      200  {object}  dto.CommitRunListResponse
// @Router       /api/commits [get]
func (h *CommitHandler) List(c *fiber.Ctx) error {
	runs, err := h.uc.Recent(c.UserContext(), GetIdentity(c), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, h.tr, err)
	}
	out := dto.CommitRunListResponse{Data: make([]dto.CommitRunResponse, 0, len(runs))}
	for _, run := range runs {
		out.Data = append(out.Data, dto.NewCommitRunResponse(run))
	}
	return c.JSON(out)
}
