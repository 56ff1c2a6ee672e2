package dto

import (
	"time"

	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
)

// CheckProductRequest body de POST /api/exports.
type CheckProductRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// PreviewRequest body de POST /api/exports/:id/preview.
type PreviewRequest struct {
	Quantity int `json:"quantity"`
}

// ExportDraftResponse estado del borrador y cuenta regresiva.
type ExportDraftResponse struct {
	ID          string                `json:"id"`
	State       entity.ExportState    `json:"state"`
	Product     entity.InventoryItem  `json:"product"`
	Preview     *entity.ExportPreview `json:"preview,omitempty"`
	SecondsLeft int                   `json:"secondsLeft"`
	ExpiresAt   *time.Time            `json:"expiresAt,omitempty"`
}

// ExportConfirmResponse resultado del commit.
type ExportConfirmResponse struct {
	RunID     string `json:"runId"`
	OrderID   string `json:"orderId"`
	EmailSent bool   `json:"emailSent"`
	Message   string `json:"message"`
}

// PartialCommitResponse cuerpo 502 cuando quedaron pasos aplicados o revertidos.
type PartialCommitResponse struct {
	Code          string   `json:"code"`
	Message       string   `json:"message"`
	RunID         string   `json:"runId"`
	OrderID       string   `json:"orderId,omitempty"`
	FailedStep    string   `json:"failedStep"`
	Completed     []string `json:"completed"`
	Compensated   []string `json:"compensated"`
	Uncompensated []string `json:"uncompensated"`
}
