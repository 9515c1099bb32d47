package reconcile

import "sort"

// CollapseLedger reduce las filas crudas del kárdex a exactamente una por
// (empresa, material). Los duplicados vienen del fan-out de los joins
// upstream, no de datos de negocio duplicados: se conserva la fila que
// ordena primero por código de material dentro de su partición, el mismo
// criterio del ROW_NUMBER() ... WHERE RN = 1 de la consulta de origen.
// El sort estable hace el resultado reproducible dado el mismo orden de
// entrada. Las filas sin código de material se descartan.
func CollapseLedger(rows []LedgerRow) map[Key]LedgerRow {
	sorted := make([]LedgerRow, 0, len(rows))
	for _, r := range rows {
		if r.Material == "" {
			continue
		}
		sorted = append(sorted, r)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CompanyID != sorted[j].CompanyID {
			return sorted[i].CompanyID < sorted[j].CompanyID
		}
		return sorted[i].Material < sorted[j].Material
	})

	out := make(map[Key]LedgerRow, len(sorted))
	for _, r := range sorted {
		k := r.Key()
		if _, ok := out[k]; ok {
			continue // ya quedó la primera de la partición
		}
		out[k] = r
	}
	return out
}

// AggregateStock agrupa las filas crudas de bodega por (empresa, material)
// sumando las cantidades de las filas físicas (una por ubicación). La
// descripción se toma de cualquiera de las filas agrupadas: las fuentes se
// asumen consistentes. Las filas sin código de material se descartan.
func AggregateStock(rows []StockRow) map[Key]StockRow {
	out := make(map[Key]StockRow, len(rows))
	for _, r := range rows {
		if r.Material == "" {
			continue
		}
		k := r.Key()
		acc, ok := out[k]
		if !ok {
			out[k] = r
			continue
		}
		acc.Quantity = acc.Quantity.Add(r.Quantity)
		out[k] = acc
	}
	return out
}
