// Package reconcile implementa el motor de conciliación de saldos entre el
// sistema de kárdex (ledger, saldo calculado por empresa y material) y el
// sistema de bodega (stock, cantidad en existencia almacenada directamente).
//
// El pipeline completo:
//
//	filas crudas ledger ──CollapseLedger──┐
//	                                      ├── Merge (full outer join) ── Filter ── Sort ── Paginate
//	filas crudas stock ───AggregateStock──┘
//
// Todo el paquete es puro: sin estado compartido, sin I/O. Las cantidades son
// decimal.Decimal para aritmética exacta.
package reconcile

import "github.com/shopspring/decimal"

// Status situación de un material: activo o inactivo.
type Status string

const (
	StatusActive   Status = "A"
	StatusInactive Status = "I"
)

// ParseStatus normaliza el estado crudo de la fuente. Cualquier valor fuera
// de A/I se trata como activo, igual que hace el sistema de origen.
func ParseStatus(raw string) Status {
	switch Status(raw) {
	case StatusActive, StatusInactive:
		return Status(raw)
	default:
		return StatusActive
	}
}

// Key identifica una fila conciliada: clave de empresa normalizada + código
// de material. Es la llave del full outer join.
type Key struct {
	Company  string // clave de empresa normalizada (ver CompanyKey)
	Material string
}

// LedgerRow fila cruda del sistema de kárdex (fuente A). El fetch upstream
// puede traer duplicados por el mismo (empresa, material) debido al fan-out
// de los joins; CollapseLedger los reduce a uno.
type LedgerRow struct {
	CompanyID    int
	Group        int
	Subgroup     int
	Material     string
	Description  string
	Status       string // crudo; se normaliza con ParseStatus al mergear
	Unit         string
	FiscalClass  string
	ItemType     string
	MaterialKind string
	Balance      decimal.Decimal
}

// Key devuelve la llave de join de la fila, con la empresa ya normalizada.
func (r LedgerRow) Key() Key {
	return Key{Company: CompanyKey(r.CompanyID), Material: r.Material}
}

// StockRow fila cruda del sistema de bodega (fuente B). La clave de empresa
// ya viene en su forma nativa rellenada con ceros. Puede haber varias filas
// físicas por (empresa, material) — una por ubicación — que AggregateStock
// suma.
type StockRow struct {
	CompanyKey  string
	Material    string
	Description string
	Quantity    decimal.Decimal
}

// Key devuelve la llave de join de la fila.
func (r StockRow) Key() Key {
	return Key{Company: r.CompanyKey, Material: r.Material}
}

// Row fila conciliada: resultado del full outer join por (empresa, material).
type Row struct {
	CompanyID     *int   // id numérico; nil si solo vino del stock y la clave no es parseable
	CompanyKey    string // clave normalizada, siempre presente
	Group         *int
	Subgroup      *int
	Material      string
	Description   string
	Status        Status
	Unit          string
	FiscalClass   string
	ItemType      string
	MaterialKind  string
	BalanceLedger decimal.Decimal
	BalanceStock  decimal.Decimal
	Difference    decimal.Decimal // BalanceLedger - BalanceStock
	OriginLedger  bool
	OriginStock   bool
}
