package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findRow(t *testing.T, rows []Row, key Key) Row {
	t.Helper()
	for _, r := range rows {
		if r.CompanyKey == key.Company && r.Material == key.Material {
			return r
		}
	}
	t.Fatalf("fila %v no encontrada", key)
	return Row{}
}

// Escenario 1: material solo en el kárdex → saldo bodega 0, diferencia = saldo.
func TestMerge_SoloEnLedger(t *testing.T) {
	ledger := CollapseLedger([]LedgerRow{ledgerRow(1, "X1", 10)})
	out := Merge(ledger, nil)

	require.Len(t, out, 1)
	r := out[0]
	assert.True(t, r.BalanceLedger.Equal(decimal.NewFromInt(10)))
	assert.True(t, r.BalanceStock.IsZero())
	assert.True(t, r.Difference.Equal(decimal.NewFromInt(10)))
	assert.True(t, r.OriginLedger)
	assert.False(t, r.OriginStock)
	require.NotNil(t, r.CompanyID)
	assert.Equal(t, 1, *r.CompanyID)
}

// Escenario 2: material solo en bodega → saldo kárdex 0, diferencia negativa.
func TestMerge_SoloEnStock(t *testing.T) {
	stock := AggregateStock([]StockRow{
		{CompanyKey: "002", Material: "Y1", Description: "CORREA", Quantity: decimal.NewFromInt(5)},
	})
	out := Merge(nil, stock)

	require.Len(t, out, 1)
	r := out[0]
	assert.True(t, r.BalanceLedger.IsZero())
	assert.True(t, r.BalanceStock.Equal(decimal.NewFromInt(5)))
	assert.True(t, r.Difference.Equal(decimal.NewFromInt(-5)))
	assert.False(t, r.OriginLedger)
	assert.True(t, r.OriginStock)
	// El id numérico se recupera parseando la clave de bodega.
	require.NotNil(t, r.CompanyID)
	assert.Equal(t, 2, *r.CompanyID)
	assert.Equal(t, "CORREA", r.Description)
	assert.Equal(t, StatusActive, r.Status)
}

// Escenario 3: mismo saldo en ambas fuentes → diferencia cero, ambos orígenes.
func TestMerge_SaldosIguales(t *testing.T) {
	ledger := CollapseLedger([]LedgerRow{ledgerRow(3, "Z1", 7)})
	stock := AggregateStock([]StockRow{
		{CompanyKey: "003", Material: "Z1", Quantity: decimal.NewFromInt(7)},
	})
	out := Merge(ledger, stock)

	require.Len(t, out, 1)
	r := out[0]
	assert.True(t, r.Difference.IsZero())
	assert.True(t, r.OriginLedger)
	assert.True(t, r.OriginStock)
}

// Toda llave presente en cualquiera de las fuentes aparece exactamente una vez.
func TestMerge_FullOuterJoinSinPerderLlaves(t *testing.T) {
	ledger := CollapseLedger([]LedgerRow{
		ledgerRow(1, "A", 1),
		ledgerRow(1, "B", 2),
	})
	stock := AggregateStock([]StockRow{
		{CompanyKey: "001", Material: "B", Quantity: decimal.NewFromInt(2)},
		{CompanyKey: "001", Material: "C", Quantity: decimal.NewFromInt(3)},
	})

	out := Merge(ledger, stock)
	require.Len(t, out, 3)

	seen := make(map[Key]int)
	for _, r := range out {
		seen[Key{r.CompanyKey, r.Material}]++
	}
	for k, n := range seen {
		assert.Equal(t, 1, n, "llave %v repetida", k)
	}
}

// Los campos descriptivos siguen la precedencia COALESCE: kárdex primero.
func TestMerge_PrecedenciaDeCamposDescriptivos(t *testing.T) {
	l := ledgerRow(1, "X1", 10)
	l.Description = "DESC KARDEX"
	l.Unit = "UN"
	l.FiscalClass = "8471.30.12"
	ledger := CollapseLedger([]LedgerRow{l})
	stock := AggregateStock([]StockRow{
		{CompanyKey: "001", Material: "X1", Description: "DESC BODEGA", Quantity: decimal.NewFromInt(1)},
	})

	r := findRow(t, Merge(ledger, stock), Key{"001", "X1"})
	assert.Equal(t, "DESC KARDEX", r.Description)
	assert.Equal(t, "UN", r.Unit)
	assert.Equal(t, "8471.30.12", r.FiscalClass)
}

// Estado crudo fuera de A/I se normaliza a activo.
func TestMerge_EstadoNoParseableQuedaActivo(t *testing.T) {
	l := ledgerRow(1, "X1", 10)
	l.Status = "?"
	r := findRow(t, Merge(CollapseLedger([]LedgerRow{l}), nil), Key{"001", "X1"})
	assert.Equal(t, StatusActive, r.Status)

	l.Status = "I"
	r = findRow(t, Merge(CollapseLedger([]LedgerRow{l}), nil), Key{"001", "X1"})
	assert.Equal(t, StatusInactive, r.Status)
}

// Dedup de punta a punta: dos filas crudas por la misma llave producen una
// única fila conciliada.
func TestMerge_DuplicadosDelFetchProducenUnaFila(t *testing.T) {
	raw := []LedgerRow{
		ledgerRow(1, "X1", 10),
		ledgerRow(1, "X1", 10),
	}
	out := Merge(CollapseLedger(raw), nil)
	assert.Len(t, out, 1)
}
