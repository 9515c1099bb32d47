package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/saldos-api/internal/application/dto"
	"github.com/jhoicas/saldos-api/internal/domain"
	"github.com/jhoicas/saldos-api/internal/domain/entity"
	"github.com/jhoicas/saldos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeMaterials struct {
	byCode         map[string]*entity.Material
	searchHits     []entity.Material
	updated        map[string]repository.MaterialChanges
	searchTerm     string
	searchGroup    *int
	searchSubgroup *int
}

func newFakeMaterials() *fakeMaterials {
	return &fakeMaterials{
		byCode:  map[string]*entity.Material{},
		updated: map[string]repository.MaterialChanges{},
	}
}

func (f *fakeMaterials) GetByCode(ctx context.Context, code string) (*entity.Material, error) {
	return f.byCode[code], nil
}

func (f *fakeMaterials) Update(ctx context.Context, code string, ch repository.MaterialChanges) error {
	if _, ok := f.byCode[code]; !ok {
		return domain.ErrNotFound
	}
	f.updated[code] = ch
	return nil
}

func (f *fakeMaterials) Search(ctx context.Context, term string, group, subgroup *int, limit int) ([]entity.Material, error) {
	f.searchTerm = term
	f.searchGroup = group
	f.searchSubgroup = subgroup
	return f.searchHits, nil
}

type fakeStockSide struct {
	written map[string]string
	err     error
}

func (f *fakeStockSide) UpdateFiscalClass(ctx context.Context, code, class string) error {
	if f.err != nil {
		return f.err
	}
	if f.written == nil {
		f.written = map[string]string{}
	}
	f.written[code] = class
	return nil
}

type memCache struct {
	data  map[string][]byte
	wiped []string
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *memCache) DeletePattern(ctx context.Context, pattern string) error {
	c.wiped = append(c.wiped, pattern)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_MaterialInexistenteRetornaNotFound(t *testing.T) {
	uc := NewMaterialUseCase(newFakeMaterials(), nil, nil)
	_, err := uc.Update(context.Background(), "NOEXISTE", dto.UpdateMaterialRequest{
		Description: "X", Status: "A",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_ExitosoEvaporaCachePorPatron(t *testing.T) {
	mats := newFakeMaterials()
	mats.byCode["M001"] = &entity.Material{Code: "M001"}
	cache := newMemCache()
	uc := NewMaterialUseCase(mats, nil, cache)

	out, err := uc.Update(context.Background(), "M001", dto.UpdateMaterialRequest{
		Description: "TORNILLO M8", Status: "I",
	})
	require.NoError(t, err)
	assert.True(t, out.Success)

	// Eviction por patrón, no llave por llave.
	assert.Contains(t, cache.wiped, "balances:*")
	assert.Contains(t, cache.wiped, "materials:*")
	assert.Equal(t, "I", mats.updated["M001"].Status)
}

func TestUpdate_ReplicaClasificacionFiscalABodega(t *testing.T) {
	mats := newFakeMaterials()
	mats.byCode["M001"] = &entity.Material{Code: "M001"}
	stockSide := &fakeStockSide{}
	uc := NewMaterialUseCase(mats, stockSide, nil)

	ncm := "8471.30.12"
	_, err := uc.Update(context.Background(), "M001", dto.UpdateMaterialRequest{
		Description: "X", Status: "A", FiscalClass: &ncm,
	})
	require.NoError(t, err)
	assert.Equal(t, ncm, stockSide.written["M001"])
}

// La réplica a bodega es best-effort: su fallo no revierte la corrección.
func TestUpdate_FalloDeReplicaNoEsFatal(t *testing.T) {
	mats := newFakeMaterials()
	mats.byCode["M001"] = &entity.Material{Code: "M001"}
	stockSide := &fakeStockSide{err: errors.New("bodega caída")}
	uc := NewMaterialUseCase(mats, stockSide, nil)

	ncm := "8471.30.12"
	out, err := uc.Update(context.Background(), "M001", dto.UpdateMaterialRequest{
		Description: "X", Status: "A", FiscalClass: &ncm,
	})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Contains(t, out.Message, "pendiente")
	assert.Contains(t, mats.updated, "M001")
}

func TestUpdate_ValidaEstado(t *testing.T) {
	mats := newFakeMaterials()
	mats.byCode["M001"] = &entity.Material{Code: "M001"}
	uc := NewMaterialUseCase(mats, nil, nil)

	_, err := uc.Update(context.Background(), "M001", dto.UpdateMaterialRequest{
		Description: "X", Status: "Z",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearch_TerminoCortoRechazado(t *testing.T) {
	uc := NewMaterialUseCase(newFakeMaterials(), nil, nil)
	_, err := uc.Search(context.Background(), "ab", nil, nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El mínimo de 3 cuenta caracteres, no bytes: "ño" ocupa 3 bytes pero sigue
// siendo un término de 2 caracteres.
func TestSearch_TerminoCortoConAcentosRechazado(t *testing.T) {
	uc := NewMaterialUseCase(newFakeMaterials(), nil, nil)
	_, err := uc.Search(context.Background(), "ño", nil, nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearch_NormalizaAcentos(t *testing.T) {
	mats := newFakeMaterials()
	uc := NewMaterialUseCase(mats, nil, nil)

	_, err := uc.Search(context.Background(), "tornilló", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "tornillo", mats.searchTerm)
}

func TestSearch_FiltrosOpcionalesLleganAlRepositorio(t *testing.T) {
	mats := newFakeMaterials()
	uc := NewMaterialUseCase(mats, nil, nil)

	group, subgroup := 81, 12
	_, err := uc.Search(context.Background(), "tornillo", &group, &subgroup)
	require.NoError(t, err)
	require.NotNil(t, mats.searchGroup)
	require.NotNil(t, mats.searchSubgroup)
	assert.Equal(t, 81, *mats.searchGroup)
	assert.Equal(t, 12, *mats.searchSubgroup)
}

// Búsquedas con distinto narrowing no comparten entrada de caché.
func TestSearch_CachePorFiltro(t *testing.T) {
	mats := newFakeMaterials()
	cache := newMemCache()
	uc := NewMaterialUseCase(mats, nil, cache)

	group := 81
	_, err := uc.Search(context.Background(), "tornillo", nil, nil)
	require.NoError(t, err)
	_, err = uc.Search(context.Background(), "tornillo", &group, nil)
	require.NoError(t, err)

	assert.Len(t, cache.data, 2)
}

func TestGetDetails_NotFound(t *testing.T) {
	uc := NewMaterialUseCase(newFakeMaterials(), nil, nil)
	_, err := uc.GetDetails(context.Background(), "M404")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
