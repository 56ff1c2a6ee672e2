package export

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaTT2001/warehouse-web/internal/domain"
)

func pad6(n int) string { return fmt.Sprintf("%06d", n) }

func fixedNow() time.Time {
	// 23:30 UTC del 13 = 06:30 del 14 en UTC+7
	return time.Date(2025, 3, 13, 23, 30, 0, 0, time.UTC)
}

func TestCandidate_PrefijoFechaLocalYSeisDigitos(t *testing.T) {
	g := NewOrderIDGenerator(newFakeLedger(), "XK", 3, 0, WithClock(fixedNow), WithDigits(func() int { return 42 }))
	assert.Equal(t, "XK250314000042", g.Candidate())
}

func TestNext_NuncaDevuelveUnIdOcupado(t *testing.T) {
	ledger := newFakeLedger()
	ledger.taken["XK250314000001"] = true
	ledger.taken["XK250314000002"] = true
	n := 0
	g := NewOrderIDGenerator(ledger, "XK", 10, 0, WithClock(fixedNow), WithDigits(func() int { n++; return n }))

	id, err := g.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "XK250314000003", id)
	assert.False(t, ledger.taken[id])
	assert.Len(t, ledger.checked, 3, "termina en cuanto el backend reporta el id libre")
}

func TestNext_Agotado(t *testing.T) {
	ledger := newFakeLedger()
	g := NewOrderIDGenerator(ledger, "XK", 4, 0, WithClock(fixedNow), WithDigits(func() int { return 7 }))
	ledger.taken[g.Candidate()] = true

	_, err := g.Next(context.Background())
	var exhausted *domain.ExhaustedError
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, 4, exhausted.Attempts)
	assert.Len(t, ledger.checked, 4)
}

func TestNext_ErrorDelBackendNoSeReintenta(t *testing.T) {
	ledger := newFakeLedger()
	ledger.checkErr = &domain.BackendError{Service: "erp", Status: 502}
	g := NewOrderIDGenerator(ledger, "XK", 10, 0, WithClock(fixedNow))

	_, err := g.Next(context.Background())
	var be *domain.BackendError
	assert.True(t, errors.As(err, &be))
	assert.Len(t, ledger.checked, 1)
}

func TestNext_RespetaCancelacion(t *testing.T) {
	ledger := newFakeLedger()
	g := NewOrderIDGenerator(ledger, "XK", 10, 0.001, WithClock(fixedNow), WithDigits(func() int { return 1 }))
	ledger.taken[g.Candidate()] = true

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := g.Next(ctx)
	assert.Error(t, err)
	assert.Len(t, ledger.checked, 1)
}

func TestNewOrderIDGenerator_Defaults(t *testing.T) {
	g := NewOrderIDGenerator(newFakeLedger(), "", 0, 0)
	assert.Equal(t, DefaultOrderIDPrefix, g.prefix)
	assert.Equal(t, DefaultOrderIDMaxAttempts, g.maxAttempts)
	assert.Len(t, g.Candidate(), len("XK")+6+6)
}
