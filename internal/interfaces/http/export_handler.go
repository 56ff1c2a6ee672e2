package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/DaTT2001/warehouse-web/internal/application/dto"
	"github.com/DaTT2001/warehouse-web/internal/application/export"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/pkg/i18n"
)

type exportService interface {
	Check(ctx context.Context, id entity.Identity, productID string) (*entity.ExportDraft, error)
	Preview(ctx context.Context, id entity.Identity, draftID string, qty int) (*entity.ExportDraft, error)
	Get(ctx context.Context, id entity.Identity, draftID string) (*entity.ExportDraft, error)
	Cancel(ctx context.Context, id entity.Identity, draftID string) (*entity.ExportDraft, error)
	Confirm(ctx context.Context, id entity.Identity, draftID string) (*export.ConfirmResult, error)
}

// ExportHandler salida de stock: verificar, vista previa, confirmar, cancelar.
type ExportHandler struct {
	uc  exportService
	tr  *i18n.Translator
	now func() time.Time
}

// NewExportHandler now nil = time.Now (la cuenta regresiva se calcula con este reloj).
func NewExportHandler(uc exportService, tr *i18n.Translator, now func() time.Time) *ExportHandler {
	if now == nil {
		now = time.Now
	}
	return &ExportHandler{uc: uc, tr: tr, now: now}
}

// Check godoc
// @Summary      Verificar producto e iniciar una salida
// @Tags         exports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckProductRequest  true  "Código de producto"
// @Success      201   {object}  dto.ExportDraftResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/exports [post]
func (h *ExportHandler) Check(c *fiber.Ctx) error {
	var in dto.CheckProductRequest
	if err := c.BodyParser(&in); err != nil {
		return h.invalid(c)
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, h.tr, err)
	}
	d, err := h.uc.Check(c.UserContext(), GetIdentity(c), in.ProductID)
	if err != nil {
		return writeError(c, h.tr, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.draftResponse(d))
}

// Get godoc
// @Summary      Estado del borrador y segundos restantes
// @Tags         exports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.ExportDraftResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      410  {object}  dto.ErrorResponse
// @Router       /api/exports/{id} [get]
func (h *ExportHandler) Get(c *fiber.Ctx) error {
	d, err := h.uc.Get(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.tr, err)
	}
	return c.JSON(h.draftResponse(d))
}

// Preview godoc
// @Summary      Vista previa con cuenta regresiva
// @Tags         exports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del borrador"
// @Param        body  body  dto.PreviewRequest  true  "Cantidad"
// @Success      200   {object}  dto.ExportDraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/exports/{id}/preview [post]
func (h *ExportHandler) Preview(c *fiber.Ctx) error {
	var in dto.PreviewRequest
	if err := c.BodyParser(&in); err != nil {
		return h.invalid(c)
	}
	d, err := h.uc.Preview(c.UserContext(), GetIdentity(c), c.Params("id"), in.Quantity)
	if err != nil {
		return writeError(c, h.tr, err)
	}
	return c.JSON(h.draftResponse(d))
}

// Confirm godoc
// @Summary      Confirmar la salida (commit de varios pasos)
// @Tags         exports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.ExportConfirmResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      410  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.PartialCommitResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/exports/{id}/confirm [post]
func (h *ExportHandler) Confirm(c *fiber.Ctx) error {
	res, err := h.uc.Confirm(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.tr, err)
	}
	return c.JSON(dto.ExportConfirmResponse{
		RunID:     res.RunID,
		OrderID:   res.OrderID,
		EmailSent: res.EmailSent,
		Message:   h.tr.T(GetLang(c, h.tr), i18n.MsgExportSuccess),
	})
}

// Cancel godoc
// @Summary      Cancelar la salida
// @Tags         exports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.ExportDraftResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/exports/{id} [delete]
func (h *ExportHandler) Cancel(c *fiber.Ctx) error {
	d, err := h.uc.Cancel(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.tr, err)
	}
	return c.JSON(h.draftResponse(d))
}

func (h *ExportHandler) draftResponse(d *entity.ExportDraft) dto.ExportDraftResponse {
	out := dto.ExportDraftResponse{
		ID:          d.ID,
		State:       d.State,
		Product:     d.Product,
		Preview:     d.Preview,
		SecondsLeft: d.SecondsLeft(h.now()),
	}
	if !d.ExpiresAt.IsZero() {
		exp := d.ExpiresAt
		out.ExpiresAt = &exp
	}
	return out
}

func (h *ExportHandler) invalid(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: h.tr.T(GetLang(c, h.tr), i18n.MsgInvalidInput)})
}
