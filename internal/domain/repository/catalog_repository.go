package repository

import (
	"context"

	"github.com/jhoicas/saldos-api/internal/domain/entity"
)

// CatalogRepository catálogos de apoyo para los filtros de la UI.
type CatalogRepository interface {
	// ListCompanies empresas activas ordenadas por nombre.
	ListCompanies(ctx context.Context) ([]entity.Company, error)
	// ListGroups grupos de materiales del allow-list, ordenados por descripción.
	ListGroups(ctx context.Context) ([]entity.MaterialGroup, error)
	// ListSubgroups subgrupos activos de un grupo que tienen al menos un
	// material elegible, ordenados por código.
	ListSubgroups(ctx context.Context, group int) ([]entity.MaterialSubgroup, error)
}
