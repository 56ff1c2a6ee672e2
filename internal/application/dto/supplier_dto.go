package dto

import "github.com/DaTT2001/warehouse-web/internal/domain/entity"

// SupplierListQuery búsqueda por nombre o contacto, 10 por página.
type SupplierListQuery struct {
	Search string `query:"search"`
	Page   int    `query:"page"`
}

// SupplierRequest body de creación/actualización.
type SupplierRequest struct {
	SupplierName string `json:"suppliername" validate:"required"`
	ContactName  string `json:"contactname"`
	Phone        string `json:"phone"`
	Email        string `json:"email" validate:"required,email"`
	Address      string `json:"address"`
}

// ToEntity convierte el request.
func (r SupplierRequest) ToEntity() entity.Supplier {
	return entity.Supplier{
		SupplierName: r.SupplierName,
		ContactName:  r.ContactName,
		Phone:        r.Phone,
		Email:        r.Email,
		Address:      r.Address,
	}
}

// SupplierListResponse página de proveedores.
type SupplierListResponse struct {
	Data       []entity.Supplier `json:"data"`
	Pagination PageResponse      `json:"pagination"`
}
