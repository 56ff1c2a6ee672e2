package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrSessionExpired    = errors.New("sesión expirada")
	ErrForbidden         = errors.New("acceso denegado")
	ErrNoActiveOrder     = errors.New("no hay orden de salida activa")
	ErrUndoWindowClosed  = errors.New("ventana de deshacer cerrada")

	// ErrPreviewExpired la cuenta regresiva terminó; también es ErrNoActiveOrder.
	ErrPreviewExpired = fmt.Errorf("%w: vista previa vencida", ErrNoActiveOrder)
)

// BackendError respuesta no-2xx de una de las APIs orquestadas.
// Message es el mensaje del backend si lo trae; vacío = usar texto localizado genérico.
type BackendError struct {
	Service string // warehouse | erp | emailjs
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", e.Service, e.Status)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Service, e.Status, e.Message)
}

// NotFound indica un 404 del backend.
func (e *BackendError) NotFound() bool { return e.Status == 404 }

// ExhaustedError el generador de order id agotó sus intentos.
type ExhaustedError struct {
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("order id: sin candidato único tras %d intentos", e.Attempts)
}

// PartialCommitError un commit de varios pasos falló después de que algún paso mutante tuvo éxito.
// Compensated son los pasos revertidos; Uncompensated los que quedaron aplicados.
type PartialCommitError struct {
	RunID         string
	OrderID       string
	FailedStep    string
	Completed     []string
	Compensated   []string
	Uncompensated []string
	Cause         error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("commit parcial %s (orden %s): falló %q; aplicados sin revertir [%s]; revertidos [%s]: %v",
		e.RunID, e.OrderID, e.FailedStep,
		strings.Join(e.Uncompensated, ","), strings.Join(e.Compensated, ","), e.Cause)
}

func (e *PartialCommitError) Unwrap() error { return e.Cause }

// Consistent indica que todas las mutaciones aplicadas se revirtieron.
func (e *PartialCommitError) Consistent() bool { return len(e.Uncompensated) == 0 }
