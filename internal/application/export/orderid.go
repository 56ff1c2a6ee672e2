package export

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"

	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
)

// OrderIDChecker consulta de unicidad (LedgerGateway.OrderIDExists).
type OrderIDChecker interface {
	OrderIDExists(ctx context.Context, orderID string) (bool, error)
}

// Valores por defecto del generador.
const (
	DefaultOrderIDPrefix      = "XK"
	DefaultOrderIDMaxAttempts = 20
	orderIDDigits             = 1_000_000
)

// OrderIDGenerator candidato = prefijo + yyMMdd (hora local) + 6 dígitos aleatorios.
// Reintenta ante colisión hasta maxAttempts; un error del backend corta de inmediato.
type OrderIDGenerator struct {
	checker     OrderIDChecker
	prefix      string
	maxAttempts int
	limiter     *rate.Limiter
	now         func() time.Time
	digits      func() int
	metrics     Metrics
}

// GeneratorOption ajustes del generador.
type GeneratorOption func(*OrderIDGenerator)

// WithClock fija el reloj (fecha del prefijo).
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *OrderIDGenerator) { g.now = now }
}

// WithDigits fija la fuente de los 6 dígitos (tests).
func WithDigits(digits func() int) GeneratorOption {
	return func(g *OrderIDGenerator) { g.digits = digits }
}

// WithMetrics registra intentos por id generado.
func WithMetrics(m Metrics) GeneratorOption {
	return func(g *OrderIDGenerator) { g.metrics = m }
}

// NewOrderIDGenerator retryRPS <= 0 = reintentos sin pausa.
func NewOrderIDGenerator(checker OrderIDChecker, prefix string, maxAttempts int, retryRPS float64, opts ...GeneratorOption) *OrderIDGenerator {
	if prefix == "" {
		prefix = DefaultOrderIDPrefix
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultOrderIDMaxAttempts
	}
	limit := rate.Inf
	if retryRPS > 0 {
		limit = rate.Limit(retryRPS)
	}
	g := &OrderIDGenerator{
		checker:     checker,
		prefix:      prefix,
		maxAttempts: maxAttempts,
		limiter:     rate.NewLimiter(limit, 1),
		now:         time.Now,
		digits:      func() int { return rand.IntN(orderIDDigits) },
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Candidate arma un id sin consultar al backend.
func (g *OrderIDGenerator) Candidate() string {
	return fmt.Sprintf("%s%s%06d", g.prefix, g.now().In(entity.LocalZone).Format("060102"), g.digits()%orderIDDigits)
}

// Next devuelve un id que el ERP reporta como libre.
func (g *OrderIDGenerator) Next(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", err
		}
		id := g.Candidate()
		exists, err := g.checker.OrderIDExists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("verificar order id %s: %w", id, err)
		}
		if !exists {
			if g.metrics != nil {
				g.metrics.OrderIDGenerated(attempt)
			}
			return id, nil
		}
	}
	return "", &domain.ExhaustedError{Attempts: g.maxAttempts}
}
