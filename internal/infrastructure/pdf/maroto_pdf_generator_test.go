package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaTT2001/warehouse-web/internal/application/report"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
)

func TestFold_QuitaDiacriticos(t *testing.T) {
	assert.Equal(t, "Bao cao xuat nhap kho", Fold("Báo cáo xuất nhập kho"))
	assert.Equal(t, "Don xuat kho", Fold("Đơn xuất kho"))
	assert.Equal(t, "plain", Fold("plain"))
}

func TestRenderPDF_GeneraDocumento(t *testing.T) {
	doc := report.Document{
		Title:        "Báo cáo xuất nhập kho",
		FilterHeader: [2]string{"Bộ lọc", "Giá trị"},
		Columns:      report.Columns{ProductID: "ID", Name: "Tên sản phẩm", Type: "Loại", Quantity: "Số lượng", Date: "Ngày", Employee: "Nhân viên"},
		Rows: []entity.Order{
			{ProductID: "P1", ProductName: "Tornillo", Type: "Export", Quantity: 5, Timestamp: "2025-03-01 17:00:00"},
		},
		Filters:     []report.AppliedFilter{{Label: "type", Value: "Export"}},
		GeneratedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		GeneratedBy: "NV001",
	}
	raw, err := NewReportPDFGenerator().RenderPDF(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}
