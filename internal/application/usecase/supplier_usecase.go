package usecase

import (
	"context"
	"strings"

	"github.com/DaTT2001/warehouse-web/internal/application/dto"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/internal/domain/repository"
	"github.com/DaTT2001/warehouse-web/pkg/i18n"
)

// SuppliersPerPage tamaño de página del directorio.
const SuppliersPerPage = 10

// SupplierUseCase directorio de proveedores.
type SupplierUseCase struct {
	repo     repository.SupplierGateway
	activity ActivityRecorder
	messages *i18n.Translator
}

// NewSupplierUseCase activity puede ser nil.
func NewSupplierUseCase(repo repository.SupplierGateway, activity ActivityRecorder, messages *i18n.Translator) *SupplierUseCase {
	if messages == nil {
		messages = i18n.New("vi")
	}
	return &SupplierUseCase{repo: repo, activity: activity, messages: messages}
}

// List búsqueda por nombre o contacto (sin distinguir mayúsculas), 10 por página.
func (uc *SupplierUseCase) List(ctx context.Context, id entity.Identity, q dto.SupplierListQuery) (*dto.SupplierListResponse, error) {
	all, err := uc.repo.ListSuppliers(ctx, id.Token)
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]entity.Supplier, 0, len(all))
	for _, s := range all {
		if search == "" ||
			strings.Contains(strings.ToLower(s.SupplierName), search) ||
			strings.Contains(strings.ToLower(s.ContactName), search) {
			out = append(out, s)
		}
	}
	data, meta := dto.Paginate(out, q.Page, SuppliersPerPage)
	return &dto.SupplierListResponse{Data: data, Pagination: meta}, nil
}

// GetByID proveedor.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id entity.Identity, supplierID string) (*entity.Supplier, error) {
	return uc.repo.GetSupplier(ctx, id.Token, supplierID)
}

// Create valida nombre y correo.
func (uc *SupplierUseCase) Create(ctx context.Context, id entity.Identity, in dto.SupplierRequest) (*entity.Supplier, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	s, err := uc.repo.CreateSupplier(ctx, id.Token, in.ToEntity())
	if err != nil {
		return nil, err
	}
	uc.log(id, i18n.ActionSupplierCreate, in.SupplierName)
	return s, nil
}

// Update reemplaza el registro.
func (uc *SupplierUseCase) Update(ctx context.Context, id entity.Identity, supplierID string, in dto.SupplierRequest) (*entity.Supplier, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	s := in.ToEntity()
	s.SupplierID = entity.ID(supplierID)
	updated, err := uc.repo.UpdateSupplier(ctx, id.Token, supplierID, s)
	if err != nil {
		return nil, err
	}
	uc.log(id, i18n.ActionSupplierUpdate, in.SupplierName)
	return updated, nil
}

// Delete borra el proveedor.
func (uc *SupplierUseCase) Delete(ctx context.Context, id entity.Identity, supplierID string) error {
	if err := uc.repo.DeleteSupplier(ctx, id.Token, supplierID); err != nil {
		return err
	}
	uc.log(id, i18n.ActionSupplierDelete, supplierID)
	return nil
}

func (uc *SupplierUseCase) log(id entity.Identity, key, subject string) {
	if uc.activity != nil {
		uc.activity.Log(id, uc.messages.TDefault(key, subject))
	}
}
