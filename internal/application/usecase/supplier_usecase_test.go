package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaTT2001/warehouse-web/internal/application/dto"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
)

func TestSupplierList_BuscaPorNombreOContacto(t *testing.T) {
	uc := NewSupplierUseCase(sampleSuppliers(), nil, nil)

	res, err := uc.List(context.Background(), manager, dto.SupplierListQuery{Search: "lê"})
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Hòa Phát", res.Data[0].SupplierName)

	res, err = uc.List(context.Background(), manager, dto.SupplierListQuery{Search: "công"})
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, entity.ID("10"), res.Data[0].SupplierID)
}

func TestSupplierList_DiezPorPagina(t *testing.T) {
	fs := &fakeSuppliers{}
	for i := 0; i < 23; i++ {
		fs.items = append(fs.items, entity.Supplier{SupplierID: entity.ID(fmt.Sprint(i)), SupplierName: "NCC"})
	}
	uc := NewSupplierUseCase(fs, nil, nil)

	res, err := uc.List(context.Background(), manager, dto.SupplierListQuery{Page: 3})
	require.NoError(t, err)
	assert.Len(t, res.Data, 3)
	assert.Equal(t, 3, res.Pagination.TotalPages)
}

func TestSupplierCreate_Validacion(t *testing.T) {
	fs := sampleSuppliers()
	act := &fakeActivity{}
	uc := NewSupplierUseCase(fs, act, nil)

	_, err := uc.Create(context.Background(), manager, dto.SupplierRequest{SupplierName: "NCC", Email: "no-es-correo"})
	var verr *dto.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "email", verr.Details[0].Field)

	_, err = uc.Create(context.Background(), manager, dto.SupplierRequest{Email: "a@b.vn"})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "suppliername", verr.Details[0].Field)
	assert.Empty(t, fs.saved)

	s, err := uc.Create(context.Background(), manager, dto.SupplierRequest{SupplierName: "Thép Việt", Email: "lienhe@thepviet.vn"})
	require.NoError(t, err)
	assert.Equal(t, entity.ID("99"), s.SupplierID)
	assert.Equal(t, []string{"Thêm nhà cung cấp Thép Việt"}, act.actions)
}

func TestSupplierUpdate_FijaElID(t *testing.T) {
	fs := sampleSuppliers()
	uc := NewSupplierUseCase(fs, nil, nil)

	_, err := uc.Update(context.Background(), manager, "20", dto.SupplierRequest{SupplierName: "Hòa Phát", Email: "hp@hp.vn"})
	require.NoError(t, err)
	assert.Equal(t, entity.ID("20"), fs.saved[0].SupplierID)
}
