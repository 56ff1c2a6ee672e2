// Package erpapi adaptador de la API REST del ERP (inventario y asientos de salida).
package erpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/internal/domain/repository"
	"github.com/DaTT2001/warehouse-web/internal/infrastructure/restclient"
)

var (
	_ repository.InventoryGateway = (*Client)(nil)
	_ repository.LedgerGateway    = (*Client)(nil)
)

// Client adaptador del ERP. El ERP no exige token.
type Client struct {
	rest *restclient.Client
}

// New construye el adaptador sobre un cliente REST ya configurado con API_ERP_URL.
func New(rest *restclient.Client) *Client {
	return &Client{rest: rest}
}

// QueryValues serializa el filtro quitando campos vacíos o nil; search en blanco no se envía.
func QueryValues(f entity.InventoryFilter) url.Values {
	q := url.Values{}
	if id := strings.TrimSpace(f.ID); id != "" {
		q.Set("id", id)
	}
	if cat := strings.TrimSpace(f.Category); cat != "" {
		q.Set("category", cat)
	}
	if f.MinQty != nil {
		q.Set("minQty", strconv.Itoa(*f.MinQty))
	}
	if f.MaxQty != nil {
		q.Set("maxQty", strconv.Itoa(*f.MaxQty))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q.Set("search", f.Search)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// ListInventory GET /inventory con filtros (page=1, limit=50 por defecto).
func (c *Client) ListInventory(ctx context.Context, filter entity.InventoryFilter) (*entity.InventoryPage, error) {
	var page entity.InventoryPage
	err := c.rest.Do(ctx, restclient.Request{
		Method: http.MethodGet,
		Path:   "/inventory",
		Query:  QueryValues(filter.WithDefaults()),
	}, &page)
	if err != nil {
		return nil, err
	}
	if page.Data == nil {
		page.Data = []entity.InventoryItem{}
	}
	return &page, nil
}

// TotalQuantity GET /inventory/total-qty → {totalQty}.
func (c *Client) TotalQuantity(ctx context.Context) (int, error) {
	var out struct {
		TotalQty *int `json:"totalQty"`
	}
	if err := c.rest.Do(ctx, restclient.Request{Method: http.MethodGet, Path: "/inventory/total-qty"}, &out); err != nil {
		return 0, err
	}
	if out.TotalQty == nil {
		return 0, fmt.Errorf("erp: respuesta sin totalQty")
	}
	return *out.TotalQty, nil
}

type quantityBody struct {
	Quantity int `json:"quantity"`
}

// SubtractQuantity PUT /inventory/:id/qty.
func (c *Client) SubtractQuantity(ctx context.Context, productID string, qty int) error {
	return c.rest.Do(ctx, restclient.Request{
		Method: http.MethodPut,
		Path:   "/inventory/" + url.PathEscape(productID) + "/qty",
		Body:   quantityBody{Quantity: qty},
	}, nil)
}

// AddQuantity PUT /inventory/:id/add-qty.
func (c *Client) AddQuantity(ctx context.Context, productID string, qty int) error {
	return c.rest.Do(ctx, restclient.Request{
		Method: http.MethodPut,
		Path:   "/inventory/" + url.PathEscape(productID) + "/add-qty",
		Body:   quantityBody{Quantity: qty},
	}, nil)
}

// OrderIDExists POST /check-order-id {order_id} → {exists}.
func (c *Client) OrderIDExists(ctx context.Context, orderID string) (bool, error) {
	var out struct {
		Exists *bool `json:"exists"`
	}
	err := c.rest.Do(ctx, restclient.Request{
		Method: http.MethodPost,
		Path:   "/check-order-id",
		Body:   map[string]string{"order_id": orderID},
	}, &out)
	if err != nil {
		return false, err
	}
	if out.Exists == nil {
		return false, fmt.Errorf("erp: respuesta de check-order-id sin exists")
	}
	return *out.Exists, nil
}

// Employee GET /get-gen/:employeeId. Sin deptID = empleado no encontrado.
func (c *Client) Employee(ctx context.Context, employeeID string) (*entity.Employee, error) {
	var emp entity.Employee
	err := c.rest.Do(ctx, restclient.Request{
		Method: http.MethodGet,
		Path:   "/get-gen/" + url.PathEscape(employeeID),
	}, &emp)
	if err != nil {
		return nil, err
	}
	if emp.DeptID.Empty() {
		return nil, fmt.Errorf("erp: empleado %s sin departamento: %w", employeeID, domain.ErrNotFound)
	}
	return &emp, nil
}

// InsertHeader POST /insert.
func (c *Client) InsertHeader(ctx context.Context, h entity.LedgerHeader) error {
	return c.rest.Do(ctx, restclient.Request{Method: http.MethodPost, Path: "/insert", Body: h}, nil)
}

// InsertLine POST /insert-inb.
func (c *Client) InsertLine(ctx context.Context, l entity.LedgerLine) error {
	return c.rest.Do(ctx, restclient.Request{Method: http.MethodPost, Path: "/insert-inb", Body: l}, nil)
}
