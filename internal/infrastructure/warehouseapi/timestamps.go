package warehouseapi

import (
	"bytes"
	"encoding/json"
	"regexp"
	"time"

	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
)

var isoPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`)

// toLocalTimestamps convierte los campos de fecha ISO del primer nivel (objeto o lista de objetos)
// a "yyyy-MM-dd HH:mm:ss" en UTC+7. Cualquier otro valor queda igual.
func toLocalTimestamps(raw []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
		return raw, nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var data interface{}
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	return json.Marshal(convertValue(data))
}

func convertValue(v interface{}) interface{} {
	switch t := v.(type) {
	case []interface{}:
		for i := range t {
			t[i] = convertValue(t[i])
		}
		return t
	case map[string]interface{}:
		for k, field := range t {
			if s, ok := field.(string); ok {
				t[k] = convertTime(s)
			}
		}
		return t
	default:
		return v
	}
}

func convertTime(s string) string {
	if !isoPrefix.MatchString(s) {
		return s
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		// sin zona: se interpreta como UTC
		t, err = time.ParseInLocation("2006-01-02T15:04:05", s[:19], time.UTC)
		if err != nil {
			return s
		}
	}
	return entity.FormatLocal(t)
}
