package reconcile

// Filter predicado compuesto sobre filas conciliadas. Reemplaza las cláusulas
// WHERE concatenadas de la consulta de origen por un objeto de valor con un
// predicado puro, directamente testeable.
type Filter struct {
	DivergenceOnly  bool
	AdvantageLedger bool // solo filas donde el kárdex supera a bodega
	AdvantageStock  bool // solo filas donde bodega supera al kárdex
	Group           *int
	Subgroup        *int
}

// Matches evalúa el predicado. El álgebra booleana de la cláusula de ventaja
// se conserva tal cual la escribió la consulta original, incluida la rama en
// que ambas banderas están activas: simplificarla a un OR de las dos
// condiciones simples cambia el comportamiento cuando los saldos son iguales.
func (f Filter) Matches(r Row) bool {
	if f.Group != nil && (r.Group == nil || *r.Group != *f.Group) {
		return false
	}
	if f.Subgroup != nil && (r.Subgroup == nil || *r.Subgroup != *f.Subgroup) {
		return false
	}
	if f.DivergenceOnly && r.Difference.IsZero() {
		return false
	}
	return f.advantageClause(r)
}

// advantageClause OR de cuatro ramas:
//  1. ventaja kárdex activa y saldo kárdex > saldo bodega
//  2. ventaja bodega activa y saldo bodega > saldo kárdex
//  3. ambas ventajas activas y (sin divergencia exigida, o saldos distintos)
//  4. ninguna ventaja activa (sin filtro de ventaja)
func (f Filter) advantageClause(r Row) bool {
	if f.AdvantageLedger && r.BalanceLedger.GreaterThan(r.BalanceStock) {
		return true
	}
	if f.AdvantageStock && r.BalanceStock.GreaterThan(r.BalanceLedger) {
		return true
	}
	if f.AdvantageLedger && f.AdvantageStock && (!f.DivergenceOnly || !r.BalanceLedger.Equal(r.BalanceStock)) {
		return true
	}
	if !f.AdvantageLedger && !f.AdvantageStock {
		return true
	}
	return false
}

// Apply filtra un slice de filas conservando el orden.
func (f Filter) Apply(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
