package http

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/DaTT2001/warehouse-web/internal/application/dto"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/pkg/i18n"
)

type inventoryService interface {
	List(ctx context.Context, filter entity.InventoryFilter) (*entity.InventoryPage, error)
	GetByID(ctx context.Context, productID string) (*entity.InventoryItem, error)
	TotalQuantity(ctx context.Context) (int, error)
	Dashboard(ctx context.Context) (*entity.Dashboard, error)
}

// InventoryHandler consultas al inventario del ERP.
type InventoryHandler struct {
	uc inventoryService
	tr *i18n.Translator
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc inventoryService, tr *i18n.Translator) *InventoryHandler {
	return &InventoryHandler{uc: uc, tr: tr}
}

// List godoc
// @Summary      Inventario del ERP con filtros
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id        query  string  false  "ID de producto"
// @Param        category  query  string  false  "Categoría"
// @Param        minQty    query  int     false  "Cantidad mínima"
// @Param        maxQty    query  int     false  "Cantidad máxima"
// @Param        search    query  string  false  "Texto"
// @Param        page      query  int     false  "Página"  default(1)
// @Param        limit     query  int     false  "Límite"  default(50)
// @Success      200  {object}  dto.InventoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	filter := entity.InventoryFilter{
		ID:       c.Query("id"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     c.QueryInt("page", entity.DefaultInventoryPage),
		Limit:    c.QueryInt("limit", entity.DefaultInventoryLimit),
	}
	var err error
	if filter.MinQty, err = optionalInt("minQty", c.Query("minQty")); err != nil {
		return writeError(c, h.tr, err)
	}
	if filter.MaxQty, err = optionalInt("maxQty", c.Query("maxQty")); err != nil {
		return writeError(c, h.tr, err)
	}
	out, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return writeError(c, h.tr, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Producto del ERP por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  entity.InventoryItem
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.tr, err)
	}
	return c.JSON(out)
}

// TotalQuantity godoc
// @Summary      Cantidad total en el ERP
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TotalQuantityResponse
// @Router       /api/inventory/total-qty [get]
func (h *InventoryHandler) TotalQuantity(c *fiber.Ctx) error {
	total, err := h.uc.TotalQuantity(c.UserContext())
	if err != nil {
		return writeError(c, h.tr, err)
	}
	return c.JSON(dto.TotalQuantityResponse{TotalQty: total})
}

// Dashboard godoc
// @Summary      Contadores del tablero
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *InventoryHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext())
	if err != nil {
		return writeError(c, h.tr, err)
	}
	return c.JSON(out)
}

func optionalInt(field, s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, &dto.ValidationError{Details: []dto.ValidationDetail{{Field: field, Message: "debe ser un entero"}}}
	}
	return &n, nil
}
