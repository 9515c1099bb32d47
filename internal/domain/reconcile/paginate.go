package reconcile

import "sort"

// SortRows ordena in place por (id de empresa ascendente, material
// ascendente). Las filas sin id numérico (clave de bodega no parseable)
// ordenan por su clave textual al final del bloque de ids conocidos. El sort
// es estable: con la unicidad por (empresa, material) el orden resultante es
// total y determinista.
func SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch {
		case a.CompanyID != nil && b.CompanyID != nil:
			if *a.CompanyID != *b.CompanyID {
				return *a.CompanyID < *b.CompanyID
			}
		case a.CompanyID == nil && b.CompanyID != nil:
			return false
		case a.CompanyID != nil && b.CompanyID == nil:
			return true
		default:
			if a.CompanyKey != b.CompanyKey {
				return a.CompanyKey < b.CompanyKey
			}
		}
		return a.Material < b.Material
	})
}

// Paginate devuelve la ventana de la página pedida (1-based) y el total de
// filas del conjunto completo. Items y total salen del mismo slice ya
// filtrado: no hay carrera entre las dos medidas dentro de una petición.
func Paginate(rows []Row, page, size int) (items []Row, total int) {
	total = len(rows)
	offset := (page - 1) * size
	if offset >= total {
		return []Row{}, total
	}
	end := offset + size
	if end > total {
		end = total
	}
	return rows[offset:end], total
}

// Pages número de páginas para un total y tamaño dados (ceil(total/size)).
func Pages(total, size int) int {
	if size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
