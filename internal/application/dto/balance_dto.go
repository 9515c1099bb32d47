package dto

import "github.com/shopspring/decimal"

// BalanceQueryRequest filtros y paginación de la consulta de conciliación.
// Los punteros nil significan "sin filtro".
type BalanceQueryRequest struct {
	Company         *int   `query:"company"`
	Group           *int   `query:"group"`
	Subgroup        *int   `query:"subgroup"`
	Material        string `query:"material"` // código exacto; mínimo 3 caracteres si se envía
	DivergenceOnly  bool   `query:"divergence_only"`
	AdvantageLedger bool   `query:"advantage_ledger"` // solo filas donde el kárdex supera a bodega
	AdvantageStock  bool   `query:"advantage_stock"`  // solo filas donde bodega supera al kárdex
	Page            int    `query:"page"`
	Size            int    `query:"size"`
}

// DefaultPage aplica los valores por defecto de paginación.
func (r *BalanceQueryRequest) DefaultPage() {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.Size <= 0 {
		r.Size = 50
	}
}

// BalanceItem fila conciliada en la respuesta.
type BalanceItem struct {
	Company       *int            `json:"company,omitempty"`
	CompanyKey    string          `json:"company_key"`
	Group         *int            `json:"group,omitempty"`
	Subgroup      *int            `json:"subgroup,omitempty"`
	Material      string          `json:"material"`
	Description   string          `json:"description"`
	Status        string          `json:"status"` // "A" | "I"
	Unit          string          `json:"unit,omitempty"`
	FiscalClass   string          `json:"fiscal_classification,omitempty"`
	ItemType      string          `json:"item_type,omitempty"`
	MaterialKind  string          `json:"material_kind,omitempty"`
	BalanceLedger decimal.Decimal `json:"balance_ledger"`
	BalanceStock  decimal.Decimal `json:"balance_stock"`
	Difference    decimal.Decimal `json:"difference"`
	OriginLedger  bool            `json:"origin_ledger"`
	OriginStock   bool            `json:"origin_stock"`
}

// BalancePageResponse respuesta paginada de la conciliación.
type BalancePageResponse struct {
	Items []BalanceItem `json:"items"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Size  int           `json:"size"`
	Pages int           `json:"pages"`
}
