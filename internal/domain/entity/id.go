package entity

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ID identificador tal como lo devuelven los backends: a veces número, a veces texto.
// Se normaliza a texto para comparar y armar rutas.
type ID string

// UnmarshalJSON acepta "P1", 17 o null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Empty indica un ID sin valor.
func (id ID) Empty() bool { return strings.TrimSpace(string(id)) == "" }
