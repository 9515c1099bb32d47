package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/saldos-api/internal/domain/reconcile"
	"github.com/jhoicas/saldos-api/internal/domain/repository"
)

var _ repository.StockBalanceRepository = (*StockBalanceRepo)(nil)

// StockBalanceRepo fuente B sobre la base de bodega. Las existencias están
// almacenadas por ubicación; se devuelven las filas físicas tal cual y la
// suma por (empresa, material) ocurre en memoria.
type StockBalanceRepo struct {
	pool *pgxpool.Pool
}

// NewStockBalanceRepository construye el adaptador de la fuente bodega.
func NewStockBalanceRepository(pool *pgxpool.Pool) *StockBalanceRepo {
	return &StockBalanceRepo{pool: pool}
}

// FetchRaw devuelve las filas físicas de existencias. company_key ya viene
// en su forma nativa rellenada a 3 dígitos; el filtro de empresa normaliza
// el id con lpad para comparar contra ella.
func (r *StockBalanceRepo) FetchRaw(ctx context.Context, q repository.SourceQuery) ([]reconcile.StockRow, error) {
	query := `
		SELECT
			TRIM(s.company_key),
			s.material_code,
			COALESCE(m.description, ''),
			s.quantity
		FROM stock_balances s
		LEFT JOIN stock_materials m ON m.material_code = s.material_code
		WHERE ($1::int  IS NULL OR TRIM(s.company_key) = lpad($1::text, 3, '0'))
		  AND ($2::text IS NULL OR s.material_code = $2)`

	rows, err := r.pool.Query(ctx, query, q.Company, nullIfEmpty(q.Material))
	if err != nil {
		return nil, fmt.Errorf("fetch existencias bodega: %w", err)
	}
	defer rows.Close()

	var out []reconcile.StockRow
	for rows.Next() {
		var sr reconcile.StockRow
		if err := rows.Scan(&sr.CompanyKey, &sr.Material, &sr.Description, &sr.Quantity); err != nil {
			return nil, fmt.Errorf("scan fila bodega: %w", err)
		}
		out = append(out, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar filas bodega: %w", err)
	}
	return out, nil
}
