package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estado de un paso del commit.
type StepStatus string

const (
	StepDone               StepStatus = "done"
	StepFailed             StepStatus = "failed"
	StepCompensated        StepStatus = "compensated"
	StepCompensationFailed StepStatus = "compensation_failed"
	StepSkipped            StepStatus = "skipped"
)

// Resultado de una corrida.
type CommitOutcome string

const (
	OutcomeRunning     CommitOutcome = "running"
	OutcomeSucceeded   CommitOutcome = "succeeded"
	OutcomeFailed      CommitOutcome = "failed"      // nada mutado
	OutcomeCompensated CommitOutcome = "compensated" // falló y todo se revirtió
	OutcomePartial     CommitOutcome = "partial"     // quedaron mutaciones aplicadas
)

// CommitStep registro de un paso.
type CommitStep struct {
	Name   string     `json:"name"`
	Status StepStatus `json:"status"`
	Error  string     `json:"error,omitempty"`
	At     time.Time  `json:"at"`
}

// CommitRun diario de una corrida del commit de varios pasos (salida o deshacer).
type CommitRun struct {
	RunID      string          `json:"run_id"`
	Kind       string          `json:"kind"` // export | undo
	DraftID    string          `json:"draft_id,omitempty"`
	OrderID    string          `json:"order_id,omitempty"`
	Username   string          `json:"username"`
	ProductID  string          `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Steps      []CommitStep    `json:"steps"`
	Outcome    CommitOutcome   `json:"outcome"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
}

// Record agrega o reemplaza el estado de un paso.
func (r *CommitRun) Record(name string, status StepStatus, err error, at time.Time) {
	s := CommitStep{Name: name, Status: status, At: at}
	if err != nil {
		s.Error = err.Error()
	}
	for i := range r.Steps {
		if r.Steps[i].Name == name {
			r.Steps[i] = s
			return
		}
	}
	r.Steps = append(r.Steps, s)
}
