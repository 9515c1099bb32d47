package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortedRows(t *testing.T, keys ...Key) []Row {
	t.Helper()
	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		r := Row{CompanyKey: k.Company, Material: k.Material, CompanyID: ParseCompanyKey(k.Company)}
		rows = append(rows, r)
	}
	SortRows(rows)
	return rows
}

func TestSortRows_PorEmpresaYMaterial(t *testing.T) {
	rows := sortedRows(t,
		Key{"002", "A"},
		Key{"001", "B"},
		Key{"001", "A"},
		Key{"010", "A"},
	)

	got := make([]Key, 0, len(rows))
	for _, r := range rows {
		got = append(got, Key{r.CompanyKey, r.Material})
	}
	assert.Equal(t, []Key{
		{"001", "A"},
		{"001", "B"},
		{"002", "A"},
		{"010", "A"},
	}, got)
}

// Filas sin id numérico (clave de bodega no parseable) ordenan al final,
// por clave textual; el orden sigue siendo total y determinista.
func TestSortRows_ClavesNoParseablesAlFinal(t *testing.T) {
	rows := []Row{
		{CompanyKey: "XYZ", Material: "A"},
		{CompanyKey: "001", Material: "A", CompanyID: ParseCompanyKey("001")},
		{CompanyKey: "ABC", Material: "A"},
	}
	SortRows(rows)
	assert.Equal(t, "001", rows[0].CompanyKey)
	assert.Equal(t, "ABC", rows[1].CompanyKey)
	assert.Equal(t, "XYZ", rows[2].CompanyKey)
}

// Escenario 4 del contrato: page=2, size=2 sobre cinco filas → filas 3 y 4,
// pages == 3.
func TestPaginate_VentanaCorrecta(t *testing.T) {
	rows := sortedRows(t,
		Key{"001", "A"}, Key{"001", "B"}, Key{"001", "C"},
		Key{"001", "D"}, Key{"001", "E"},
	)

	items, total := Paginate(rows, 2, 2)
	require.Len(t, items, 2)
	assert.Equal(t, 5, total)
	assert.Equal(t, "C", items[0].Material)
	assert.Equal(t, "D", items[1].Material)
	assert.Equal(t, 3, Pages(total, 2))
}

// Concatenar todas las páginas reconstruye el conjunto completo sin saltos
// ni duplicados; sum(tamaños de página) == total.
func TestPaginate_ConcatenacionCompleta(t *testing.T) {
	rows := sortedRows(t,
		Key{"001", "A"}, Key{"001", "B"}, Key{"001", "C"},
		Key{"002", "A"}, Key{"002", "B"}, Key{"003", "A"},
		Key{"003", "B"},
	)

	size := 3
	var all []Row
	var total int
	for page := 1; ; page++ {
		items, tot := Paginate(rows, page, size)
		total = tot
		if len(items) == 0 {
			break
		}
		all = append(all, items...)
	}

	require.Len(t, all, total)
	assert.Equal(t, rows, all)
}

func TestPaginate_PaginaFueraDeRango(t *testing.T) {
	rows := sortedRows(t, Key{"001", "A"})
	items, total := Paginate(rows, 5, 50)
	assert.Empty(t, items)
	assert.Equal(t, 1, total)
}

func TestPages_Redondeo(t *testing.T) {
	assert.Equal(t, 0, Pages(0, 50))
	assert.Equal(t, 1, Pages(1, 50))
	assert.Equal(t, 1, Pages(50, 50))
	assert.Equal(t, 2, Pages(51, 50))
}
