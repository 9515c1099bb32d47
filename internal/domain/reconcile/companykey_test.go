package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// La misma empresa debe normalizar a una clave idéntica venga de donde venga:
// el id numérico 1 del kárdex y la clave "001" de bodega deben coincidir.
func TestCompanyKey_RellenaConCeros(t *testing.T) {
	assert.Equal(t, "001", CompanyKey(1))
	assert.Equal(t, "042", CompanyKey(42))
	assert.Equal(t, "123", CompanyKey(123))
}

func TestCompanyKey_NoTruncaIdsLargos(t *testing.T) {
	// Ids de más de 3 dígitos conservan todos sus dígitos.
	assert.Equal(t, "1234", CompanyKey(1234))
}

func TestParseCompanyKey_RecuperaElId(t *testing.T) {
	id := ParseCompanyKey("001")
	require.NotNil(t, id)
	assert.Equal(t, 1, *id)

	id = ParseCompanyKey(" 042 ")
	require.NotNil(t, id)
	assert.Equal(t, 42, *id)
}

// Clave no parseable → nil, sin error: la fila puede viajar solo con la clave.
func TestParseCompanyKey_FallaSuaveEnClavesNoNumericas(t *testing.T) {
	assert.Nil(t, ParseCompanyKey("ABC"))
	assert.Nil(t, ParseCompanyKey(""))
	assert.Nil(t, ParseCompanyKey("  "))
}

func TestCompanyKey_RoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 7, 99, 100, 999} {
		id := ParseCompanyKey(CompanyKey(n))
		require.NotNil(t, id)
		assert.Equal(t, n, *id)
	}
}
