package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/internal/infrastructure/restclient"
)

var sample = entity.ExportNotification{
	ERPOrderID:   "XK250301123456",
	ProductID:    "P1",
	ProductName:  "Tornillo",
	Quantity:     5,
	Time:         "2025-03-01 17:00:00",
	EmployeeID:   "NV001",
	EmployeeName: "Nguyen Van A",
}

func TestEmailJS_EnviaPlantilla(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "service_x", body["service_id"])
		assert.Equal(t, "template_y", body["template_id"])
		assert.Equal(t, "pub", body["user_id"])
		params, _ := body["template_params"].(map[string]interface{})
		assert.Equal(t, "XK250301123456", params["erp_order_id"])
		assert.Equal(t, "NV001", params["employeeID"])
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	n := NewEmailJS(restclient.New("emailjs", srv.URL, time.Second, nil, zerolog.Nop()), "service_x", "template_y", "pub")
	require.NoError(t, n.NotifyExport(context.Background(), sample))
}

func TestEmailJS_SinCredenciales(t *testing.T) {
	n := NewEmailJS(restclient.New("emailjs", "http://127.0.0.1:1", time.Second, nil, zerolog.Nop()), "", "", "")
	assert.Error(t, n.NotifyExport(context.Background(), sample))
}

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func TestSMTP_ArmaMensaje(t *testing.T) {
	fs := &fakeSender{}
	n := NewSMTPWithSender(fs, "kho@example.com", "a@example.com, b@example.com")
	require.NoError(t, n.NotifyExport(context.Background(), sample))
	require.Len(t, fs.sent, 1)

	msg := fs.sent[0]
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, msg.GetHeader("To"))
	require.Len(t, msg.GetHeader("Subject"), 1)
	assert.Contains(t, msg.GetHeader("Subject")[0], "XK250301123456")

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "NV001")
}

func TestSMTP_ErrorDelServidor(t *testing.T) {
	fs := &fakeSender{err: errors.New("conexión rechazada")}
	n := NewSMTPWithSender(fs, "kho@example.com", "a@example.com")
	assert.Error(t, n.NotifyExport(context.Background(), sample))
}

func TestBody_IncluyeCampos(t *testing.T) {
	body := Body(sample)
	for _, s := range []string{"XK250301123456", "Tornillo", "5", "Nguyen Van A"} {
		assert.Contains(t, body, s)
	}
}
