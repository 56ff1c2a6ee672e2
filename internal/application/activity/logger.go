// Package activity diario de actividad del operador: envío sin bloqueo y listado.
package activity

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/DaTT2001/warehouse-web/internal/application/dto"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/internal/domain/repository"
)

// LogsPerPage tamaño de página del diario.
const LogsPerPage = 20

// defaultSendTimeout tope de cada envío.
const defaultSendTimeout = 5 * time.Second

// Logger envía acciones al backend en segundo plano. Un fallo solo se registra en el log.
type Logger struct {
	gw      repository.ActivityLogGateway
	log     zerolog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewLogger timeout <= 0 = 5 s.
func NewLogger(gw repository.ActivityLogGateway, log zerolog.Logger, timeout time.Duration) *Logger {
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &Logger{gw: gw, log: log, timeout: timeout}
}

// Log registra action para la identidad sin bloquear al llamador.
func (l *Logger) Log(id entity.Identity, action string) {
	l.LogAs(id.LogName(), action)
}

// LogAs igual que Log con el nombre ya resuelto; vacío = "Unknown User".
func (l *Logger) LogAs(username, action string) {
	if username == "" {
		username = entity.UnknownUser
	}
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
		defer cancel()
		if err := l.gw.SendLog(ctx, username, action); err != nil {
			l.log.Warn().Err(err).Str("username", username).Str("action", action).Msg("gửi log thất bại")
		}
	}()
}

// Wait espera los envíos en curso (apagado ordenado y tests).
func (l *Logger) Wait() {
	l.wg.Wait()
}

// List página del diario (20 por página, en el orden que devuelve el backend).
func (l *Logger) List(ctx context.Context, page int) (*dto.LogListResponse, error) {
	logs, err := l.gw.ListLogs(ctx)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []entity.ActivityLog{}
	}
	data, meta := dto.Paginate(logs, page, LogsPerPage)
	return &dto.LogListResponse{Data: data, Pagination: meta}, nil
}
