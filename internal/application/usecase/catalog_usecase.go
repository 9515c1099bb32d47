package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/saldos-api/internal/application/dto"
	"github.com/jhoicas/saldos-api/internal/application/ports"
	"github.com/jhoicas/saldos-api/internal/domain/repository"
)

const (
	companiesCacheKey     = "catalog:companies"
	groupsCacheKey        = "catalog:groups"
	subgroupsCacheKeyBase = "catalog:subgroups:"
	catalogCacheTTL       = time.Hour
)

// CatalogUseCase listas de apoyo para los filtros de la UI (empresas,
// grupos y subgrupos por grupo), cacheadas una hora: cambian con muy poca
// frecuencia.
type CatalogUseCase struct {
	repo  repository.CatalogRepository
	cache ports.Cache // puede ser nil
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.CatalogRepository, cache ports.Cache) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, cache: cache}
}

// Companies empresas activas ordenadas por nombre.
func (uc *CatalogUseCase) Companies(ctx context.Context) ([]dto.CompanyResponse, error) {
	var cached []dto.CompanyResponse
	if uc.cacheGet(ctx, companiesCacheKey, &cached) {
		return cached, nil
	}
	list, err := uc.repo.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CompanyResponse{ID: c.ID, Name: c.Name})
	}
	uc.cacheSet(ctx, companiesCacheKey, out)
	return out, nil
}

// Groups grupos de materiales elegibles ordenados por descripción.
func (uc *CatalogUseCase) Groups(ctx context.Context) ([]dto.GroupResponse, error) {
	var cached []dto.GroupResponse
	if uc.cacheGet(ctx, groupsCacheKey, &cached) {
		return cached, nil
	}
	list, err := uc.repo.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GroupResponse, 0, len(list))
	for _, g := range list {
		out = append(out, dto.GroupResponse{Code: g.Code, Description: g.Description})
	}
	uc.cacheSet(ctx, groupsCacheKey, out)
	return out, nil
}

// Subgroups subgrupos activos del grupo dado, cacheados por grupo.
func (uc *CatalogUseCase) Subgroups(ctx context.Context, group int) ([]dto.SubgroupResponse, error) {
	key := subgroupsCacheKeyBase + strconv.Itoa(group)
	var cached []dto.SubgroupResponse
	if uc.cacheGet(ctx, key, &cached) {
		return cached, nil
	}
	list, err := uc.repo.ListSubgroups(ctx, group)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubgroupResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SubgroupResponse{Code: s.Code, Description: s.Description})
	}
	uc.cacheSet(ctx, key, out)
	return out, nil
}

func (uc *CatalogUseCase) cacheGet(ctx context.Context, key string, dest any) bool {
	if uc.cache == nil {
		return false
	}
	hit, err := uc.cache.Get(ctx, key, dest)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("lectura de caché de catálogo falló")
		return false
	}
	return hit
}

func (uc *CatalogUseCase) cacheSet(ctx context.Context, key string, value any) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, key, value, catalogCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("escritura de caché de catálogo falló")
	}
}
