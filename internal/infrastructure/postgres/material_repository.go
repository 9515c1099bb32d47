package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/saldos-api/internal/domain"
	"github.com/jhoicas/saldos-api/internal/domain/entity"
	"github.com/jhoicas/saldos-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo maestro de materiales del sistema de registro (base kárdex).
type MaterialRepo struct {
	pool *pgxpool.Pool
}

// NewMaterialRepository construye el adaptador del maestro de materiales.
func NewMaterialRepository(pool *pgxpool.Pool) *MaterialRepo {
	return &MaterialRepo{pool: pool}
}

// GetByCode obtiene el material con su clasificación fiscal resuelta
// (tabla fiscal manda sobre el campo del maestro). nil si no existe.
func (r *MaterialRepo) GetByCode(ctx context.Context, code string) (*entity.Material, error) {
	query := `
		SELECT
			m.code, m.description, m.status, m.group_code, m.subgroup_code,
			m.unit, COALESCE(f.fiscal_classification, m.fiscal_classification, ''),
			m.item_type, m.material_kind
		FROM materials m
		LEFT JOIN material_fiscal f ON f.material_code = m.code
		WHERE m.code = $1`
	var m entity.Material
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&m.Code, &m.Description, &m.Status, &m.Group, &m.Subgroup,
		&m.Unit, &m.FiscalClass, &m.ItemType, &m.MaterialKind,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}

// Update aplica la corrección en una transacción: maestro de materiales y,
// si viene clasificación fiscal, upsert en la tabla fiscal. rowcount 0 en el
// maestro significa que el código no existe.
func (r *MaterialRepo) Update(ctx context.Context, code string, ch repository.MaterialChanges) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE materials SET
			description   = $2,
			status        = $3,
			unit          = COALESCE($4, unit),
			group_code    = COALESCE($5, group_code),
			subgroup_code = COALESCE($6, subgroup_code),
			item_type     = COALESCE($7, item_type)
		WHERE code = $1`,
		code, ch.Description, ch.Status, ch.Unit, ch.Group, ch.Subgroup, ch.ItemType,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if ch.FiscalClass != nil && *ch.FiscalClass != "" {
		_, err = tx.Exec(ctx, `
			INSERT INTO material_fiscal (material_code, fiscal_classification)
			VALUES ($1, $2)
			ON CONFLICT (material_code)
			DO UPDATE SET fiscal_classification = EXCLUDED.fiscal_classification`,
			code, *ch.FiscalClass,
		)
		if err != nil {
			return fmt.Errorf("upsert clasificación fiscal: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Search busca materiales elegibles por término en la descripción,
// case-insensitive, con narrowing opcional por grupo y subgrupo. El término
// llega ya sin acentos desde el caso de uso.
func (r *MaterialRepo) Search(ctx context.Context, term string, group, subgroup *int, limit int) ([]entity.Material, error) {
	query := `
		SELECT
			m.code, m.description, m.status, m.group_code, m.subgroup_code,
			m.unit, COALESCE(m.fiscal_classification, ''), m.item_type, m.material_kind
		FROM materials m
		WHERE m.material_kind = 'U'
		  AND m.group_code IN (80, 81, 83, 84, 85, 86, 87)
		  AND UPPER(m.description) LIKE UPPER('%' || $1 || '%')
		  AND ($2::int IS NULL OR m.group_code = $2)
		  AND ($3::int IS NULL OR m.subgroup_code = $3)
		ORDER BY m.description
		LIMIT $4`
	rows, err := r.pool.Query(ctx, query, term, group, subgroup, limit)
	if err != nil {
		return nil, fmt.Errorf("search materiales: %w", err)
	}
	defer rows.Close()

	var out []entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(
			&m.Code, &m.Description, &m.Status, &m.Group, &m.Subgroup,
			&m.Unit, &m.FiscalClass, &m.ItemType, &m.MaterialKind,
		); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
