package dto

import (
	"time"

	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
)

// CommitStepResponse paso de una corrida.
type CommitStepResponse struct {
	Name   string    `json:"name"`
	Status string    `json:"status"`
	Error  string    `json:"error,omitempty"`
	At     time.Time `json:"at"`
}

// CommitRunResponse corrida del diario de commits (salida, alta de stock o deshacer).
type CommitRunResponse struct {
	RunID      string               `json:"runId"`
	Kind       string               `json:"kind"`
	DraftID    string               `json:"draftId,omitempty"`
	OrderID    string               `json:"orderId,omitempty"`
	Username   string               `json:"username"`
	ProductID  string               `json:"productId"`
	Quantity   string               `json:"quantity"`
	Outcome    string               `json:"outcome"`
	Steps      []CommitStepResponse `json:"steps"`
	StartedAt  time.Time            `json:"startedAt"`
	FinishedAt *time.Time           `json:"finishedAt,omitempty"`
}

// CommitRunListResponse corridas recientes.
type CommitRunListResponse struct {
	Data []CommitRunResponse `json:"data"`
}

// NewCommitRunResponse arma la respuesta desde la entidad.
func NewCommitRunResponse(run *entity.CommitRun) CommitRunResponse {
	steps := make([]CommitStepResponse, 0, len(run.Steps))
	for _, s := range run.Steps {
		steps = append(steps, CommitStepResponse{Name: s.Name, Status: string(s.Status), Error: s.Error, At: s.At})
	}
	return CommitRunResponse{
		RunID:      run.RunID,
		Kind:       run.Kind,
		DraftID:    run.DraftID,
		OrderID:    run.OrderID,
		Username:   run.Username,
		ProductID:  run.ProductID,
		Quantity:   run.Quantity.String(),
		Outcome:    string(run.Outcome),
		Steps:      steps,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
	}
}
