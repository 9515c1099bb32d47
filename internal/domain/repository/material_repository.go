package repository

import (
	"context"

	"github.com/jhoicas/saldos-api/internal/domain/entity"
)

// MaterialChanges campos a corregir en el maestro de materiales. Los
// punteros nil se dejan como están; Description y Status siempre se escriben.
type MaterialChanges struct {
	Description string
	Status      string // "A" | "I"
	Unit        *string
	FiscalClass *string
	Group       *int
	Subgroup    *int
	ItemType    *string
}

// MaterialRepository maestro de materiales del sistema de registro (kárdex).
type MaterialRepository interface {
	// GetByCode devuelve el material o nil si no existe.
	GetByCode(ctx context.Context, code string) (*entity.Material, error)
	// Update aplica las correcciones en una transacción (maestro + tabla
	// fiscal). Devuelve domain.ErrNotFound si el código no existe.
	Update(ctx context.Context, code string, changes MaterialChanges) error
	// Search busca materiales elegibles por término en la descripción
	// (case-insensitive, término ya normalizado por el caso de uso), con
	// narrowing opcional por grupo y subgrupo (nil = sin filtro).
	Search(ctx context.Context, term string, group, subgroup *int, limit int) ([]entity.Material, error)
}

// StockMaterialRepository maestro de materiales del sistema de bodega. Solo
// se escribe la clasificación fiscal, como réplica best-effort de la
// corrección hecha en el sistema de registro.
type StockMaterialRepository interface {
	UpdateFiscalClass(ctx context.Context, code, fiscalClass string) error
}
