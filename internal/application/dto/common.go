package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FormValue acepta string o número JSON y conserva el texto tal cual llegó,
// para que la validación vea lo mismo que escribió el usuario en el formulario.
type FormValue string

// UnmarshalJSON implementa json.Unmarshaler.
func (f *FormValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FormValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("valor de formulario inválido: %s", b)
	}
	*f = FormValue(n.String())
	return nil
}
