package reconcile

import (
	"fmt"
	"strconv"
	"strings"
)

// companyKeyWidth ancho fijo de la clave de empresa. El sistema de bodega
// almacena la unidad como texto rellenado a 3 dígitos (LPAD(id, 3, '0')).
const companyKeyWidth = 3

// CompanyKey normaliza un id numérico de empresa a la clave canónica de join:
// cadena de ancho fijo rellenada con ceros a la izquierda. La misma empresa
// debe producir una clave idéntica venga de la fuente que venga.
func CompanyKey(id int) string {
	return fmt.Sprintf("%0*d", companyKeyWidth, id)
}

// ParseCompanyKey recupera el id numérico desde una clave de empresa
// (quitando ceros a la izquierda). Devuelve nil si la clave no es parseable:
// la fila conciliada puede viajar solo con la clave.
func ParseCompanyKey(key string) *int {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return nil
	}
	id, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil
	}
	return &id
}
