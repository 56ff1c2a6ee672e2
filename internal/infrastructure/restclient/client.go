// Package restclient cliente JSON común para las APIs de bodega y ERP.
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/infrastructure/metrics"
)

// maxBody límite de lectura de respuestas (listas de inventario incluidas).
const maxBody = 8 << 20

// Client llama a una API REST con JSON. Cada respuesta no-2xx se convierte en *domain.BackendError.
type Client struct {
	service    string
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

// New construye el cliente. timeout <= 0 = 15 s.
func New(service, baseURL string, timeout time.Duration, m *metrics.Metrics, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		service:    service,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		metrics:    m,
		log:        log,
	}
}

// Service nombre del backend (warehouse | erp).
func (c *Client) Service() string { return c.service }

// Request una llamada. Token vacío = sin Authorization.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Token  string
	Body   interface{}
}

// Do ejecuta la llamada y decodifica la respuesta en out (si no es nil).
func (c *Client) Do(ctx context.Context, r Request, out interface{}) error {
	raw, err := c.DoRaw(ctx, r)
	if err != nil {
		return err
	}
	return Decode(c.service, raw, out)
}

// Decode deserializa raw en out; cuerpo vacío o out nil no es error.
func Decode(service string, raw []byte, out interface{}) error {
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: deserializar respuesta: %w", service, err)
	}
	return nil
}

// DoRaw ejecuta la llamada y devuelve el cuerpo sin decodificar.
func (c *Client) DoRaw(ctx context.Context, r Request) ([]byte, error) {
	target := c.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: serializar request: %w", c.service, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%s: crear HTTP request: %w", c.service, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveBackend(c.service, r.Method, 0, time.Since(start))
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s: timeout o cancelación: %w", c.service, ctx.Err())
		}
		return nil, fmt.Errorf("%s: llamada HTTP fallida: %w", c.service, err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveBackend(c.service, r.Method, resp.StatusCode, time.Since(start))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%s: leer respuesta: %w", c.service, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := backendMessage(raw)
		c.log.Debug().
			Str("method", r.Method).
			Str("path", r.Path).
			Int("status", resp.StatusCode).
			Str("message", msg).
			Msg("respuesta no-2xx")
		return nil, &domain.BackendError{Service: c.service, Status: resp.StatusCode, Message: msg}
	}
	return raw, nil
}

// backendMessage extrae {"error": "..."} o {"message": "..."} si el backend los trae.
func backendMessage(raw []byte) string {
	var payload struct {
		Error   interface{} `json:"error"`
		Message string      `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if s, ok := payload.Error.(string); ok && s != "" {
		return s
	}
	return payload.Message
}
