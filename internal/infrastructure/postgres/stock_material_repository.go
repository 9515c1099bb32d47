package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/saldos-api/internal/domain/repository"
)

var _ repository.StockMaterialRepository = (*StockMaterialRepo)(nil)

// StockMaterialRepo maestro de materiales del sistema de bodega. Solo se le
// replica la clasificación fiscal; el resto del maestro de bodega no se toca
// desde aquí.
type StockMaterialRepo struct {
	pool *pgxpool.Pool
}

// NewStockMaterialRepository construye el adaptador.
func NewStockMaterialRepository(pool *pgxpool.Pool) *StockMaterialRepo {
	return &StockMaterialRepo{pool: pool}
}

// UpdateFiscalClass escribe la clasificación fiscal en el material de bodega.
// No distingue "no existe" de "sin cambios": la réplica es best-effort.
func (r *StockMaterialRepo) UpdateFiscalClass(ctx context.Context, code, fiscalClass string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE stock_materials
		SET fiscal_classification = $2
		WHERE material_code = $1`,
		code, fiscalClass,
	)
	if err != nil {
		return fmt.Errorf("update clasificación fiscal bodega: %w", err)
	}
	return nil
}
