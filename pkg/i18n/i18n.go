// Package i18n resuelve el idioma del operador y traduce los textos que la API
// devuelve (mensajes de error, notificaciones y acciones del diario de actividad).
// Idiomas soportados: vi (por defecto) y en.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Claves del catálogo.
const (
	MsgBackendFailure   = "backend.failure"
	MsgInventoryFailure = "inventory.failure"
	MsgProductNotFound  = "product.not_found"
	MsgNotFound         = "resource.not_found"
	MsgInvalidInput     = "input.invalid"
	MsgInsufficient     = "stock.insufficient"
	MsgNoActiveOrder    = "export.no_active_order"
	MsgPreviewExpired   = "export.preview_expired"
	MsgExportSuccess    = "export.success"
	MsgExhausted        = "export.order_id_exhausted"
	MsgPartialCommit    = "export.partial_commit"
	MsgSessionExpired   = "session.expired"
	MsgUnauthorized     = "session.unauthorized"
	MsgForbidden        = "session.forbidden"
	MsgLoginFailed      = "auth.login_failed"
	MsgUndoSuccess      = "report.undo_success"
	MsgUndoClosed       = "report.undo_closed"
	MsgInternal         = "internal.error"

	ActionExport         = "action.export"
	ActionAddStock       = "action.add_stock"
	ActionUndo           = "action.undo"
	ActionVisit          = "action.visit"
	ActionProductCreate  = "action.product_create"
	ActionProductUpdate  = "action.product_update"
	ActionProductDelete  = "action.product_delete"
	ActionSupplierCreate = "action.supplier_create"
	ActionSupplierUpdate = "action.supplier_update"
	ActionSupplierDelete = "action.supplier_delete"

	SheetReport  = "sheet.report"
	SheetFilters = "sheet.filters"
	ColProductID = "col.product_id"
	ColName      = "col.product_name"
	ColType      = "col.type"
	ColQuantity  = "col.quantity"
	ColDate      = "col.date"
	ColEmployee  = "col.employee"
	ColFilter    = "col.filter"
	ColValue     = "col.value"
	ReportTitle  = "report.title"
	FilterAll    = "filter.all"
	FilterFrom   = "filter.from"
	FilterTo     = "filter.to"
)

var catalog = map[string][2]string{
	// clave: {vi, en}
	MsgBackendFailure:   {"Lỗi khi thực hiện request!", "Request to backend failed!"},
	MsgInventoryFailure: {"Lỗi khi gọi API Inventory!", "Inventory API call failed!"},
	MsgProductNotFound:  {"Mã sản phẩm không tồn tại!", "Product code does not exist!"},
	MsgNotFound:         {"Không tìm thấy dữ liệu!", "Resource not found!"},
	MsgInvalidInput:     {"Dữ liệu không hợp lệ!", "Invalid data!"},
	MsgInsufficient:     {"Số lượng nhập vào vượt quá số lượng tối đa!", "Requested quantity exceeds the available quantity!"},
	MsgNoActiveOrder:    {"Không có đơn xuất kho đang chờ xác nhận!", "There is no active order awaiting confirmation!"},
	MsgPreviewExpired:   {"Hết thời gian xác nhận, đơn xuất kho đã bị hủy! ⏳", "Confirmation time is over, the export order was cancelled! ⏳"},
	MsgExportSuccess:    {"Lấy hàng thành công! ✅", "Stock export completed! ✅"},
	MsgExhausted:        {"Không thể sinh mã đơn hàng duy nhất sau %d lần thử!", "Could not generate a unique order id after %d attempts!"},
	MsgPartialCommit:    {"Đơn xuất kho %s chỉ hoàn tất một phần (lỗi ở bước %s)!", "Export %s was only partially committed (failed at step %s)!"},
	MsgSessionExpired:   {"Phiên làm việc đã hết hạn! ⏳", "Your session has expired! ⏳"},
	MsgUnauthorized:     {"Không tìm thấy token!", "Missing or invalid token!"},
	MsgForbidden:        {"Bạn không có quyền thực hiện thao tác này!", "You are not allowed to perform this action!"},
	MsgLoginFailed:      {"Lỗi khi đăng nhập", "Login failed"},
	MsgUndoSuccess:      {"Hoàn tác báo cáo thành công!", "Report entry reverted!"},
	MsgUndoClosed:       {"Không thể hoàn tác báo cáo!", "The undo window for this entry has closed!"},
	MsgInternal:         {"Lỗi hệ thống, vui lòng thử lại!", "Internal error, please try again!"},

	ActionExport:         {"Lấy sản phẩm %s số lượng %d thành công", "Exported product %s quantity %d"},
	ActionAddStock:       {"Thêm sản phẩm %s số lượng %d", "Added product %s quantity %d"},
	ActionUndo:           {"Hoàn tác báo cáo %s", "Reverted report entry %s"},
	ActionVisit:          {"Truy cập %s", "Visited %s"},
	ActionProductCreate:  {"Thêm sản phẩm %s", "Created product %s"},
	ActionProductUpdate:  {"Cập nhật sản phẩm %s", "Updated product %s"},
	ActionProductDelete:  {"Xóa sản phẩm %s", "Deleted product %s"},
	ActionSupplierCreate: {"Thêm nhà cung cấp %s", "Created supplier %s"},
	ActionSupplierUpdate: {"Cập nhật nhà cung cấp %s", "Updated supplier %s"},
	ActionSupplierDelete: {"Xóa nhà cung cấp %s", "Deleted supplier %s"},

	SheetReport:  {"Báo cáo", "Report"},
	SheetFilters: {"Bộ lọc", "Filters"},
	ColProductID: {"ID", "ID"},
	ColName:      {"Tên sản phẩm", "Product name"},
	ColType:      {"Loại", "Type"},
	ColQuantity:  {"Số lượng", "Quantity"},
	ColDate:      {"Ngày", "Date"},
	ColEmployee:  {"Nhân viên", "Employee"},
	ColFilter:    {"Bộ lọc", "Filter"},
	ColValue:     {"Giá trị", "Value"},
	ReportTitle:  {"Báo cáo xuất nhập kho", "Stock movement report"},
	FilterAll:    {"Tất cả", "All"},
	FilterFrom:   {"Từ ngày", "From"},
	FilterTo:     {"Đến ngày", "To"},
}

var supported = []language.Tag{language.Vietnamese, language.English}

var matcher = language.NewMatcher(supported)

func init() {
	for key, texts := range catalog {
		_ = message.SetString(language.Vietnamese, key, texts[0])
		_ = message.SetString(language.English, key, texts[1])
	}
}

// Translator traduce claves del catálogo con un idioma por defecto.
type Translator struct {
	fallback language.Tag
}

// New construye el traductor; defaultLang desconocido = vi.
func New(defaultLang string) *Translator {
	return &Translator{fallback: parse(defaultLang, language.Vietnamese)}
}

// Default idioma por defecto configurado.
func (t *Translator) Default() language.Tag { return t.fallback }

// Match elige el idioma: primero el parámetro explícito (?lang=), luego Accept-Language,
// y por último el idioma por defecto.
func (t *Translator) Match(explicit, acceptLanguage string) language.Tag {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return parse(explicit, t.fallback)
	}
	if acceptLanguage != "" {
		prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil && len(prefs) > 0 {
			_, idx, conf := matcher.Match(prefs...)
			if conf != language.No {
				return supported[idx]
			}
		}
	}
	return t.fallback
}

// T traduce key al idioma tag.
func (t *Translator) T(tag language.Tag, key string, args ...interface{}) string {
	return message.NewPrinter(tag).Sprintf(key, args...)
}

// TDefault traduce en el idioma por defecto (textos del diario de actividad, correos).
func (t *Translator) TDefault(key string, args ...interface{}) string {
	return t.T(t.fallback, key, args...)
}

func parse(s string, def language.Tag) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return def
	}
	return supported[idx]
}
