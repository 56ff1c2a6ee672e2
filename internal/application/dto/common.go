package dto

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Paginate corta items a la página pedida (1-based). page fuera de rango = lista vacía.
func Paginate[T any](items []T, page, perPage int) ([]T, PageResponse) {
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}
	total := len(items)
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	meta := PageResponse{Page: page, PerPage: perPage, Total: total, TotalPages: pages}

	if page > pages {
		return []T{}, meta
	}
	start := (page - 1) * perPage
	end := start + perPage
	if end > total {
		end = total
	}
	return items[start:end], meta
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Details []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail error de un campo.
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con mensaje traducido.
type MessageResponse struct {
	Message string `json:"message"`
}
