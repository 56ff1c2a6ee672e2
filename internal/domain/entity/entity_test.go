package entity_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
)

func TestID_AceptaNumeroTextoYNull(t *testing.T) {
	var v struct {
		A entity.ID `json:"a"`
		B entity.ID `json:"b"`
		C entity.ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"P1","b":17,"c":null}`), &v))
	assert.Equal(t, entity.ID("P1"), v.A)
	assert.Equal(t, entity.ID("17"), v.B)
	assert.True(t, v.C.Empty())
}

func TestExportDraft_SecondsLeftRedondeaHaciaArriba(t *testing.T) {
	now := time.Date(2025, 3, 14, 2, 32, 0, 0, time.UTC)
	d := &entity.ExportDraft{State: entity.ExportPreviewing, ExpiresAt: now.Add(300 * time.Second)}

	assert.Equal(t, 300, d.SecondsLeft(now))
	assert.Equal(t, 1, d.SecondsLeft(now.Add(299*time.Second+time.Millisecond)))
	assert.Equal(t, 0, d.SecondsLeft(now.Add(300*time.Second)))
	assert.False(t, d.Expired(now.Add(299*time.Second)))
	assert.True(t, d.Expired(now.Add(300*time.Second)))

	checked := &entity.ExportDraft{State: entity.ExportProductChecked}
	assert.Equal(t, 0, checked.SecondsLeft(now))
	assert.False(t, checked.Expired(now))
}

func TestOrder_QuantityDelta(t *testing.T) {
	d, err := entity.Order{Type: entity.OrderTypeExport, Quantity: 5}.QuantityDelta()
	require.NoError(t, err)
	assert.Equal(t, 5, d)

	d, err = entity.Order{Type: entity.OrderTypeAdd, Quantity: 5}.QuantityDelta()
	require.NoError(t, err)
	assert.Equal(t, -5, d)

	_, err = entity.Order{Type: "Transfer", Quantity: 5}.QuantityDelta()
	assert.Error(t, err)
}

func TestParseTimestamp_LocalYRFC3339(t *testing.T) {
	local, err := entity.ParseTimestamp("2025-03-14 09:32:00")
	require.NoError(t, err)
	utc, err := entity.ParseTimestamp("2025-03-14T02:32:00Z")
	require.NoError(t, err)
	assert.True(t, local.Equal(utc))
	assert.Equal(t, "2025-03-14 09:32:00", entity.FormatLocal(utc))

	_, err = entity.ParseTimestamp("14/03/2025")
	assert.Error(t, err)
}

func TestIdentity_ExpiracionYRoles(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	id := entity.Identity{Username: "NV001", Role: entity.RoleWarehouseManager, ExpiresAt: now.Add(90 * time.Second)}

	assert.False(t, id.Expired(now))
	assert.Equal(t, 90*time.Second, id.Remaining(now))
	assert.True(t, id.Expired(now.Add(2*time.Minute)))
	assert.Equal(t, time.Duration(0), id.Remaining(now.Add(2*time.Minute)))
	assert.True(t, id.CanManageProducts())
	assert.False(t, entity.Identity{Role: "Staff"}.CanManageProducts())

	assert.Equal(t, entity.UnknownUser, entity.Identity{}.LogName())
	assert.False(t, entity.Identity{}.Expired(now), "sin exp nunca expira")
}

func TestExportPreview_OrderEnUTC(t *testing.T) {
	p := entity.ExportPreview{
		EmployeeName: "Nguyen Van A",
		EmployeeID:   "NV001",
		ProductID:    "P1",
		Quantity:     5,
		Timestamp:    time.Date(2025, 3, 14, 9, 32, 0, 0, entity.LocalZone),
	}
	o := p.Order("XK250314000001")
	assert.Equal(t, entity.OrderTypeExport, o.Type)
	assert.Equal(t, "2025-03-14T02:32:00Z", o.Timestamp)
	assert.Equal(t, "XK250314000001", o.ERPOrderID)
}

func TestPrice_SeSerializaComoNumero(t *testing.T) {
	p := entity.Product{ProductName: "Ốc vít", Price: entity.NewPrice(decimal.RequireFromString("12.50")), Quantity: 3}
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"price":12.5`)

	var back entity.Product
	require.NoError(t, json.Unmarshal([]byte(`{"productname":"x","price":"7.25"}`), &back))
	assert.True(t, back.Price.Equal(decimal.RequireFromString("7.25")))
	require.NoError(t, json.Unmarshal([]byte(`{"productname":"x","price":7.25}`), &back))
	assert.True(t, back.Price.Equal(decimal.RequireFromString("7.25")))

	// Otros decimales conservan el formato por defecto.
	raw, err = json.Marshal(entity.CommitRun{Quantity: decimal.NewFromInt(3)})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"quantity":"3"`)
}
