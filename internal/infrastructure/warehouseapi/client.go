// Package warehouseapi adaptador del servicio REST local de bodega
// (productos, proveedores, órdenes, diario de actividad y login).
package warehouseapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/internal/domain/repository"
	"github.com/DaTT2001/warehouse-web/internal/infrastructure/restclient"
)

var (
	_ repository.ProductGateway     = (*Client)(nil)
	_ repository.SupplierGateway    = (*Client)(nil)
	_ repository.OrderGateway       = (*Client)(nil)
	_ repository.ActivityLogGateway = (*Client)(nil)
	_ repository.AuthGateway        = (*Client)(nil)
)

// Client adaptador del servicio de bodega.
type Client struct {
	rest *restclient.Client
}

// New construye el adaptador sobre un cliente REST configurado con API_URL.
func New(rest *restclient.Client) *Client {
	return &Client{rest: rest}
}

// do ejecuta la llamada y normaliza las fechas a UTC+7 antes de decodificar.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	raw, err := c.rest.DoRaw(ctx, restclient.Request{Method: method, Path: path, Token: token, Body: body})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	local, err := toLocalTimestamps(raw)
	if err != nil {
		return fmt.Errorf("%s: normalizar fechas: %w", c.rest.Service(), err)
	}
	return restclient.Decode(c.rest.Service(), local, out)
}

func path(resource, id string) string {
	return "/" + resource + "/" + url.PathEscape(id)
}

// ── Productos ────────────────────────────────────────────────────────────────

func (c *Client) ListProducts(ctx context.Context, token string) ([]entity.Product, error) {
	var out []entity.Product
	if err := c.do(ctx, http.MethodGet, "/products", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, token, id string) (*entity.Product, error) {
	var p entity.Product
	if err := c.do(ctx, http.MethodGet, path("products", id), token, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, p entity.Product) (*entity.Product, error) {
	var out entity.Product
	if err := c.do(ctx, http.MethodPost, "/products", token, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct PUT de registro completo.
func (c *Client) UpdateProduct(ctx context.Context, token, id string, p entity.Product) (*entity.Product, error) {
	var out entity.Product
	if err := c.do(ctx, http.MethodPut, path("products", id), token, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, path("products", id), token, nil, nil)
}

// ── Proveedores ──────────────────────────────────────────────────────────────

func (c *Client) ListSuppliers(ctx context.Context, token string) ([]entity.Supplier, error) {
	var out []entity.Supplier
	if err := c.do(ctx, http.MethodGet, "/suppliers", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSupplier(ctx context.Context, token, id string) (*entity.Supplier, error) {
	var s entity.Supplier
	if err := c.do(ctx, http.MethodGet, path("suppliers", id), token, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) CreateSupplier(ctx context.Context, token string, s entity.Supplier) (*entity.Supplier, error) {
	var out entity.Supplier
	if err := c.do(ctx, http.MethodPost, "/suppliers", token, s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSupplier(ctx context.Context, token, id string, s entity.Supplier) (*entity.Supplier, error) {
	var out entity.Supplier
	if err := c.do(ctx, http.MethodPut, path("suppliers", id), token, s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSupplier(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, path("suppliers", id), token, nil, nil)
}

// ── Órdenes ──────────────────────────────────────────────────────────────────

func (c *Client) ListOrders(ctx context.Context, token string) ([]entity.Order, error) {
	var out []entity.Order
	if err := c.do(ctx, http.MethodGet, "/orders", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SaveOrder(ctx context.Context, token string, o entity.Order) (*entity.Order, error) {
	var out entity.Order
	if err := c.do(ctx, http.MethodPost, "/orders", token, o, &out); err != nil {
		return nil, err
	}
	if out.ID.Empty() && out.ProductID.Empty() {
		// backend que responde sin cuerpo: se devuelve lo enviado
		out = o
	}
	return &out, nil
}

func (c *Client) DeleteOrder(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, path("orders", id), token, nil, nil)
}

// ── Diario de actividad (sin token) ──────────────────────────────────────────

func (c *Client) ListLogs(ctx context.Context) ([]entity.ActivityLog, error) {
	var out []entity.ActivityLog
	if err := c.do(ctx, http.MethodGet, "/logs", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SendLog(ctx context.Context, username, action string) error {
	return c.do(ctx, http.MethodPost, "/logs", "", entity.ActivityLog{Username: username, Action: action}, nil)
}

// ── Login ────────────────────────────────────────────────────────────────────

// Login POST /login {username, password} → {token}.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", "", body, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("%s: respuesta de login sin token", c.rest.Service())
	}
	return out.Token, nil
}
