package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/saldos-api/internal/domain/reconcile"
	"github.com/jhoicas/saldos-api/internal/domain/repository"
)

var _ repository.LedgerBalanceRepository = (*LedgerBalanceRepo)(nil)

// LedgerBalanceRepo fuente A sobre la base del kárdex. El saldo por
// (empresa, material) se calcula sumando los movimientos del kárdex; la
// elegibilidad (tipo 'U' y allow-list de grupos) es regla de negocio de esta
// consulta, no del motor de conciliación.
type LedgerBalanceRepo struct {
	pool *pgxpool.Pool
}

// NewLedgerBalanceRepository construye el adaptador de la fuente kárdex.
func NewLedgerBalanceRepository(pool *pgxpool.Pool) *LedgerBalanceRepo {
	return &LedgerBalanceRepo{pool: pool}
}

// FetchRaw devuelve las filas crudas de saldos. El CROSS JOIN con empresas y
// el LEFT JOIN con la tabla fiscal pueden producir más de una fila por
// (empresa, material); los duplicados se colapsan después, en memoria.
func (r *LedgerBalanceRepo) FetchRaw(ctx context.Context, q repository.SourceQuery) ([]reconcile.LedgerRow, error) {
	query := `
		SELECT
			c.id,
			m.group_code,
			m.subgroup_code,
			m.code,
			m.description,
			m.status,
			m.unit,
			COALESCE(f.fiscal_classification, m.fiscal_classification, '') AS fiscal_classification,
			m.item_type,
			m.material_kind,
			COALESCE((
				SELECT SUM(mv.quantity)
				FROM ledger_movements mv
				WHERE mv.company_id = c.id AND mv.material_code = m.code
			), 0) AS balance
		FROM materials m
		CROSS JOIN companies c
		LEFT JOIN material_fiscal f ON f.material_code = m.code
		WHERE m.material_kind = 'U'
		  AND m.group_code IN (80, 81, 83, 84, 85, 86, 87)
		  AND ($1::int  IS NULL OR c.id = $1)
		  AND ($2::int  IS NULL OR m.group_code = $2)
		  AND ($3::int  IS NULL OR m.subgroup_code = $3)
		  AND ($4::text IS NULL OR m.code = $4)`

	rows, err := r.pool.Query(ctx, query, q.Company, q.Group, q.Subgroup, nullIfEmpty(q.Material))
	if err != nil {
		return nil, fmt.Errorf("fetch saldos kárdex: %w", err)
	}
	defer rows.Close()

	var out []reconcile.LedgerRow
	for rows.Next() {
		var lr reconcile.LedgerRow
		if err := rows.Scan(
			&lr.CompanyID, &lr.Group, &lr.Subgroup, &lr.Material, &lr.Description,
			&lr.Status, &lr.Unit, &lr.FiscalClass, &lr.ItemType, &lr.MaterialKind,
			&lr.Balance,
		); err != nil {
			return nil, fmt.Errorf("scan fila kárdex: %w", err)
		}
		out = append(out, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar filas kárdex: %w", err)
	}
	return out, nil
}
