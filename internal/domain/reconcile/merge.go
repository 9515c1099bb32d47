package reconcile

import "github.com/shopspring/decimal"

// Merge realiza el full outer join de los dos mapas por (empresa, material).
// Toda llave presente en cualquiera de las fuentes aparece exactamente una
// vez en la salida; ninguna fila se descarta en esta etapa. Los campos
// descriptivos siguen la precedencia COALESCE de la consulta de origen:
// kárdex si existe, si no bodega.
func Merge(ledger map[Key]LedgerRow, stock map[Key]StockRow) []Row {
	out := make([]Row, 0, len(ledger)+len(stock))

	for k, l := range ledger {
		row := Row{
			CompanyKey:    k.Company,
			Material:      k.Material,
			Description:   l.Description,
			Status:        ParseStatus(l.Status),
			Unit:          l.Unit,
			FiscalClass:   l.FiscalClass,
			ItemType:      l.ItemType,
			MaterialKind:  l.MaterialKind,
			BalanceLedger: l.Balance,
			BalanceStock:  decimal.Zero,
			OriginLedger:  true,
		}
		id := l.CompanyID
		row.CompanyID = &id
		grp, sbg := l.Group, l.Subgroup
		row.Group = &grp
		row.Subgroup = &sbg

		if s, ok := stock[k]; ok {
			row.BalanceStock = s.Quantity
			row.OriginStock = true
			if row.Description == "" {
				row.Description = s.Description
			}
		}
		row.Difference = row.BalanceLedger.Sub(row.BalanceStock)
		out = append(out, row)
	}

	for k, s := range stock {
		if _, ok := ledger[k]; ok {
			continue // ya mergeada arriba
		}
		row := Row{
			CompanyID:     ParseCompanyKey(k.Company),
			CompanyKey:    k.Company,
			Material:      k.Material,
			Description:   s.Description,
			Status:        StatusActive,
			BalanceLedger: decimal.Zero,
			BalanceStock:  s.Quantity,
			OriginStock:   true,
		}
		row.Difference = row.BalanceLedger.Sub(row.BalanceStock)
		out = append(out, row)
	}

	return out
}
