package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"

	"github.com/DaTT2001/warehouse-web/internal/application/dto"
	"github.com/DaTT2001/warehouse-web/internal/application/report"
	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/pkg/i18n"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

type reportService interface {
	List(ctx context.Context, id entity.Identity, q dto.ReportQuery) (*dto.ReportListResponse, error)
	Undo(ctx context.Context, id entity.Identity, orderID string) (*report.UndoResult, error)
	ExportXLSX(ctx context.Context, id entity.Identity, q dto.ReportQuery, tag language.Tag) ([]byte, error)
	ExportPDF(ctx context.Context, id entity.Identity, q dto.ReportQuery, tag language.Tag) ([]byte, error)
}

// UndoResponse orden revertida con mensaje traducido.
type UndoResponse struct {
	*report.UndoResult
	Message string `json:"message"`
}

// ReportHandler reporte de transacciones.
type ReportHandler struct {
	uc  reportService
	tr  *i18n.Translator
	now func() time.Time
}

// NewReportHandler now nil = time.Now (nombre del archivo exportado).
func NewReportHandler(uc reportService, tr *i18n.Translator, now func() time.Time) *ReportHandler {
	if now == nil {
		now = time.Now
	}
	return &ReportHandler{uc: uc, tr: tr, now: now}
}

// List godoc
// @Summary      Reporte de transacciones filtrado
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        type       query  string  false  "Add | Export"
// @Param        name       query  string  false  "Nombre contiene"
// @Param        productId  query  string  false  "ID exacto"
// @Param        startDate  query  string  false  "yyyy-MM-dd"
// @Param        endDate    query  string  false  "yyyy-MM-dd (inclusivo)"
// @Param        page       query  int     false  "Página"  default(1)
// @Success      200  {object}  dto.ReportListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	q, err := reportQuery(c)
	if err != nil {
		return writeError(c, h.tr, err)
	}
	out, err := h.uc.List(c.UserContext(), GetIdentity(c), q)
	if err != nil {
		return writeError(c, h.tr, err)
	}
	return c.JSON(out)
}

// Undo godoc
// @Summary      Deshacer una orden (dentro de la ventana)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  UndoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.PartialCommitResponse
// @Router       /api/reports/{id}/undo [post]
func (h *ReportHandler) Undo(c *fiber.Ctx) error {
	res, err := h.uc.Undo(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.tr, err)
	}
	return c.JSON(UndoResponse{UndoResult: res, Message: h.tr.T(GetLang(c, h.tr), i18n.MsgUndoSuccess)})
}

// ExportXLSX godoc
// @Summary      Reporte en Excel (hoja de datos + hoja de filtros)
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/reports/export.xlsx [get]
func (h *ReportHandler) ExportXLSX(c *fiber.Ctx) error {
	return h.download(c, "xlsx", mimeXLSX, h.uc.ExportXLSX)
}

// ExportPDF godoc
// @Summary      Reporte en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/export.pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	return h.download(c, "pdf", mimePDF, h.uc.ExportPDF)
}

type renderFunc func(ctx context.Context, id entity.Identity, q dto.ReportQuery, tag language.Tag) ([]byte, error)

func (h *ReportHandler) download(c *fiber.Ctx, ext, mime string, render renderFunc) error {
	q, err := reportQuery(c)
	if err != nil {
		return writeError(c, h.tr, err)
	}
	body, err := render(c.UserContext(), GetIdentity(c), q, GetLang(c, h.tr))
	if err != nil {
		return writeError(c, h.tr, err)
	}
	name := fmt.Sprintf("report_%s.%s", h.now().In(entity.LocalZone).Format("20060102_150405"), ext)
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, mime)
	return c.Send(body)
}

func reportQuery(c *fiber.Ctx) (dto.ReportQuery, error) {
	var q dto.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return q, fmt.Errorf("query del reporte: %w", domain.ErrInvalidInput)
	}
	return q, nil
}
