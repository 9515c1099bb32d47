package repository

import (
	"context"

	"github.com/jhoicas/saldos-api/internal/domain/reconcile"
)

// SourceQuery filtros opcionales que se empujan a las consultas de ambas
// fuentes. nil / vacío significa sin filtro. Material es un código exacto;
// la validación de longitud mínima ocurre antes, en el caso de uso.
type SourceQuery struct {
	Company  *int
	Group    *int
	Subgroup *int
	Material string
}

// LedgerBalanceRepository fuente A: saldos calculados por (empresa, material)
// en el sistema de kárdex. FetchRaw devuelve las filas tal como salen de la
// consulta, posiblemente con duplicados por llave (fan-out de joins); la
// deduplicación es responsabilidad del motor de conciliación.
type LedgerBalanceRepository interface {
	FetchRaw(ctx context.Context, q SourceQuery) ([]reconcile.LedgerRow, error)
}

// StockBalanceRepository fuente B: existencias almacenadas por ubicación en
// el sistema de bodega. FetchRaw devuelve filas físicas sin agregar; la suma
// por (empresa, material) es responsabilidad del motor de conciliación.
type StockBalanceRepository interface {
	FetchRaw(ctx context.Context, q SourceQuery) ([]reconcile.StockRow, error)
}
