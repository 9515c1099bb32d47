package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/saldos-api/internal/domain/entity"
	"github.com/jhoicas/saldos-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo catálogos de empresas y grupos sobre la base del kárdex.
type CatalogRepo struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository construye el adaptador de catálogos.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{pool: pool}
}

// ListCompanies empresas activas ordenadas por nombre.
func (r *CatalogRepo) ListCompanies(ctx context.Context) ([]entity.Company, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, status
		FROM companies
		WHERE status = 'A'
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list empresas: %w", err)
	}
	defer rows.Close()

	var out []entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Status); err != nil {
			return nil, fmt.Errorf("scan empresa: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListGroups grupos del allow-list de conciliación ordenados por descripción.
func (r *CatalogRepo) ListGroups(ctx context.Context) ([]entity.MaterialGroup, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT code, description
		FROM material_groups
		WHERE code IN (80, 81, 83, 84, 85, 86, 87)
		ORDER BY description`)
	if err != nil {
		return nil, fmt.Errorf("list grupos: %w", err)
	}
	defer rows.Close()

	var out []entity.MaterialGroup
	for rows.Next() {
		var g entity.MaterialGroup
		if err := rows.Scan(&g.Code, &g.Description); err != nil {
			return nil, fmt.Errorf("scan grupo: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// ListSubgroups subgrupos activos del grupo con al menos un material
// elegible, ordenados por código.
func (r *CatalogRepo) ListSubgroups(ctx context.Context, group int) ([]entity.MaterialSubgroup, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.code, s.description
		FROM material_subgroups s
		WHERE s.group_code = $1
		  AND s.status = 'A'
		  AND EXISTS (
			SELECT 1
			FROM materials m
			WHERE m.subgroup_code = s.code
			  AND m.group_code = s.group_code
			  AND m.material_kind = 'U'
			  AND m.status = 'A')
		ORDER BY s.code`, group)
	if err != nil {
		return nil, fmt.Errorf("list subgrupos: %w", err)
	}
	defer rows.Close()

	var out []entity.MaterialSubgroup
	for rows.Next() {
		var s entity.MaterialSubgroup
		if err := rows.Scan(&s.Code, &s.Description); err != nil {
			return nil, fmt.Errorf("scan subgrupo: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
