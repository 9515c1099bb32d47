package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/saldos-api/internal/application/balances"
	"github.com/jhoicas/saldos-api/internal/application/dto"
	"github.com/jhoicas/saldos-api/internal/application/ports"
	"github.com/jhoicas/saldos-api/internal/domain"
	"github.com/jhoicas/saldos-api/internal/domain/entity"
	"github.com/jhoicas/saldos-api/internal/domain/repository"
)

const (
	materialCachePrefix = "materials:"
	minSearchTerm       = 3
	searchCacheTTL      = 30 * time.Minute
	defaultSearchLimit  = 20
)

// MaterialUseCase detalles, búsqueda y corrección de materiales en el sistema
// de registro. Una corrección exitosa invalida todas las páginas de
// conciliación cacheadas (eviction por patrón, no llave por llave).
type MaterialUseCase struct {
	materials repository.MaterialRepository
	stockSide repository.StockMaterialRepository // puede ser nil
	cache     ports.Cache                        // puede ser nil
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(
	materials repository.MaterialRepository,
	stockSide repository.StockMaterialRepository,
	cache ports.Cache,
) *MaterialUseCase {
	return &MaterialUseCase{materials: materials, stockSide: stockSide, cache: cache}
}

// GetDetails devuelve el detalle completo de un material para el modal de
// edición. ErrNotFound si el código no existe.
func (uc *MaterialUseCase) GetDetails(ctx context.Context, code string) (*dto.MaterialResponse, error) {
	m, err := uc.materials.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return toMaterialResponse(m), nil
}

// Search busca materiales elegibles por término de descripción, con
// narrowing opcional por grupo y subgrupo. El término requiere mínimo 3
// caracteres (contados como runas, no bytes); se normaliza quitando acentos
// para que "tornilló" y "TORNILLO" encuentren lo mismo. Resultado cacheado
// 30 minutos.
func (uc *MaterialUseCase) Search(ctx context.Context, term string, group, subgroup *int) ([]dto.MaterialResponse, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < minSearchTerm {
		return nil, fmt.Errorf("%w: término requiere mínimo %d caracteres", domain.ErrInvalidInput, minSearchTerm)
	}
	folded := foldAccents(term)

	key := fmt.Sprintf("%ssearch:%s:%s:%s:%d",
		materialCachePrefix, strings.ToUpper(folded), optKey(group), optKey(subgroup), defaultSearchLimit)
	if uc.cache != nil {
		var cached []dto.MaterialResponse
		hit, err := uc.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Msg("lectura de caché de búsqueda falló")
		} else if hit {
			return cached, nil
		}
	}

	list, err := uc.materials.Search(ctx, folded, group, subgroup, defaultSearchLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialResponse, 0, len(list))
	for i := range list {
		out = append(out, *toMaterialResponse(&list[i]))
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, out, searchCacheTTL); err != nil {
			log.Warn().Err(err).Msg("escritura de caché de búsqueda falló")
		}
	}
	return out, nil
}

// Update aplica la corrección en el sistema de registro (transaccional) y
// replica la clasificación fiscal al sistema de bodega best-effort. Tras un
// update exitoso evapora las páginas de conciliación y búsquedas cacheadas.
func (uc *MaterialUseCase) Update(ctx context.Context, code string, in dto.UpdateMaterialRequest) (*dto.UpdateMaterialResponse, error) {
	if code == "" || in.Description == "" {
		return nil, fmt.Errorf("%w: código y descripción son requeridos", domain.ErrInvalidInput)
	}
	status := in.Status
	if status != "A" && status != "I" {
		return nil, fmt.Errorf("%w: status debe ser A o I", domain.ErrInvalidInput)
	}

	changes := repository.MaterialChanges{
		Description: in.Description,
		Status:      status,
		Unit:        in.Unit,
		FiscalClass: in.FiscalClass,
		Group:       in.Group,
		Subgroup:    in.Subgroup,
		ItemType:    in.ItemType,
	}
	if err := uc.materials.Update(ctx, code, changes); err != nil {
		return nil, err
	}

	// Réplica de clasificación fiscal hacia bodega: la fuente de verdad ya
	// quedó escrita; un fallo aquí se reporta pero no revierte nada.
	stockSynced := true
	if uc.stockSide != nil && in.FiscalClass != nil && *in.FiscalClass != "" {
		if err := uc.stockSide.UpdateFiscalClass(ctx, code, *in.FiscalClass); err != nil {
			stockSynced = false
			log.Warn().Err(err).Str("material", code).Msg("réplica fiscal a bodega falló")
		}
	}

	uc.invalidate(ctx)

	msg := fmt.Sprintf("Material %s actualizado", code)
	if !stockSynced {
		msg += " (réplica fiscal a bodega pendiente)"
	}
	log.Info().Str("material", code).Bool("stock_synced", stockSynced).Msg("material corregido")
	return &dto.UpdateMaterialResponse{
		Success: true,
		Message: msg,
		Data: dto.MaterialResponse{
			Code:        code,
			Description: in.Description,
			Status:      status,
		},
	}, nil
}

// invalidate evapora por patrón los resultados cacheados que dependen del
// maestro de materiales.
func (uc *MaterialUseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	for _, pattern := range []string{balances.CachePrefix + "*", materialCachePrefix + "*"} {
		if err := uc.cache.DeletePattern(ctx, pattern); err != nil {
			log.Warn().Err(err).Str("pattern", pattern).Msg("eviction de caché falló")
		}
	}
}

// optKey representación estable de un filtro opcional para llaves de caché.
func optKey(p *int) string {
	if p == nil {
		return "-"
	}
	return strconv.Itoa(*p)
}

// foldAccents elimina marcas diacríticas: NFD → quitar Mn → NFC.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		Code:         m.Code,
		Description:  m.Description,
		Status:       m.Status,
		Group:        m.Group,
		Subgroup:     m.Subgroup,
		Unit:         m.Unit,
		FiscalClass:  m.FiscalClass,
		ItemType:     m.ItemType,
		MaterialKind: m.MaterialKind,
	}
}
