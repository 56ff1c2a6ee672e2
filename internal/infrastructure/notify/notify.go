// Package notify envía la notificación de salida de stock (EmailJS, SMTP o ninguno).
package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/internal/infrastructure/restclient"
)

// Notifier puerto de notificación; el flujo de salida lo trata como mejor esfuerzo.
type Notifier interface {
	NotifyExport(ctx context.Context, n entity.ExportNotification) error
}

var (
	_ Notifier = (*EmailJS)(nil)
	_ Notifier = (*SMTP)(nil)
	_ Notifier = Noop{}
)

// ── EmailJS ──────────────────────────────────────────────────────────────────

// EmailJS envía con la API REST de EmailJS (misma plantilla que usaba la consola).
type EmailJS struct {
	rest       *restclient.Client
	serviceID  string
	templateID string
	publicKey  string
}

// NewEmailJS rest debe apuntar al endpoint completo de envío.
func NewEmailJS(rest *restclient.Client, serviceID, templateID, publicKey string) *EmailJS {
	return &EmailJS{rest: rest, serviceID: serviceID, templateID: templateID, publicKey: publicKey}
}

type emailJSRequest struct {
	ServiceID      string                    `json:"service_id"`
	TemplateID     string                    `json:"template_id"`
	UserID         string                    `json:"user_id"`
	TemplateParams entity.ExportNotification `json:"template_params"`
}

func (e *EmailJS) NotifyExport(ctx context.Context, n entity.ExportNotification) error {
	if e.serviceID == "" || e.templateID == "" || e.publicKey == "" {
		return fmt.Errorf("emailjs: EMAILJS_SERVICE_ID, EMAILJS_TEMPLATE_ID y EMAILJS_PUBLIC_KEY son obligatorios")
	}
	return e.rest.Do(ctx, restclient.Request{
		Method: http.MethodPost,
		Body: emailJSRequest{
			ServiceID:      e.serviceID,
			TemplateID:     e.templateID,
			UserID:         e.publicKey,
			TemplateParams: n,
		},
	}, nil)
}

// ── SMTP ─────────────────────────────────────────────────────────────────────

// Sender abstrae gomail.Dialer para tests.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTP envía el correo por SMTP con gomail.
type SMTP struct {
	sender Sender
	from   string
	to     []string
}

// NewSMTP construye el notificador con un gomail.Dialer. to admite varias direcciones separadas por coma.
func NewSMTP(host string, port int, user, password, from, to string) *SMTP {
	return NewSMTPWithSender(gomail.NewDialer(host, port, user, password), from, to)
}

// NewSMTPWithSender permite inyectar el emisor.
func NewSMTPWithSender(s Sender, from, to string) *SMTP {
	var rcpts []string
	for _, addr := range strings.Split(to, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			rcpts = append(rcpts, addr)
		}
	}
	return &SMTP{sender: s, from: from, to: rcpts}
}

func (s *SMTP) NotifyExport(ctx context.Context, n entity.ExportNotification) error {
	if len(s.to) == 0 || s.from == "" {
		return fmt.Errorf("smtp: SMTP_FROM y SMTP_TO son obligatorios")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to...)
	m.SetHeader("Subject", Subject(n))
	m.SetBody("text/plain", Body(n))
	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp: enviar correo: %w", err)
	}
	return nil
}

// Subject asunto del correo de salida.
func Subject(n entity.ExportNotification) string {
	return fmt.Sprintf("Đơn xuất kho %s", n.ERPOrderID)
}

// Body cuerpo en texto plano con los mismos campos de la plantilla EmailJS.
func Body(n entity.ExportNotification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mã đơn ERP: %s\n", n.ERPOrderID)
	fmt.Fprintf(&b, "Sản phẩm: %s (%s)\n", n.ProductName, n.ProductID)
	fmt.Fprintf(&b, "Số lượng: %d\n", n.Quantity)
	fmt.Fprintf(&b, "Thời gian: %s\n", n.Time)
	fmt.Fprintf(&b, "Nhân viên: %s (%s)\n", n.EmployeeName, n.EmployeeID)
	return b.String()
}

// ── Noop ─────────────────────────────────────────────────────────────────────

// Noop EMAIL_PROVIDER=none.
type Noop struct{}

func (Noop) NotifyExport(context.Context, entity.ExportNotification) error { return nil }
