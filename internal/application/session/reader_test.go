package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/pkg/jwt"
)

const secret = "test-secret"

func TestRead_SinSecretSoloDecodifica(t *testing.T) {
	tok, err := jwt.Generate("firmado-por-otro-backend", "NV001", "Nguyen Van A", "Admin", time.Hour)
	require.NoError(t, err)

	id, err := NewReader("", nil).Read(tok)
	require.NoError(t, err)
	assert.Equal(t, "NV001", id.Username)
	assert.Equal(t, "Nguyen Van A", id.FullName)
	assert.Equal(t, "Admin", id.Role)
	assert.Equal(t, tok, id.Token)
}

func TestRead_ConSecretVerificaFirma(t *testing.T) {
	tok, err := jwt.Generate("otro", "NV001", "A", "Admin", time.Hour)
	require.NoError(t, err)

	_, err = NewReader(secret, nil).Read(tok)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRead_TokenVacioOMalFormado(t *testing.T) {
	r := NewReader("", nil)
	_, err := r.Read("  ")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = r.Read("no-es-un-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRequireActive_TokenExpiradoSeRechaza(t *testing.T) {
	tok, err := jwt.Generate(secret, "NV001", "A", "Staff", time.Hour)
	require.NoError(t, err)

	later := func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = NewReader("", later).RequireActive(tok)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)

	id, err := NewReader("", nil).RequireActive(tok)
	require.NoError(t, err)
	assert.InDelta(t, time.Hour.Seconds(), id.Remaining(time.Now()).Seconds(), 5)
}
