package balances

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/saldos-api/internal/application/dto"
	"github.com/jhoicas/saldos-api/internal/application/ports"
	"github.com/jhoicas/saldos-api/internal/domain"
	"github.com/jhoicas/saldos-api/internal/domain/reconcile"
	"github.com/jhoicas/saldos-api/internal/domain/repository"
)

// CachePrefix prefijo de todas las llaves de caché de conciliación; la
// corrección de materiales evapora el patrón CachePrefix + "*".
const CachePrefix = "balances:"

const (
	minMaterialTerm = 3
	maxPageSize     = 100
	// maxReportRows tope de filas del reporte PDF; por encima el reporte
	// deja de ser legible y el documento crece sin control.
	maxReportRows = 1000
)

// UseCase orquesta la conciliación: valida, consulta el caché, lanza el
// fan-out paralelo a las dos fuentes, y corre el pipeline puro
// (colapsar/agregar → merge → filtrar → ordenar → paginar).
type UseCase struct {
	ledger        repository.LedgerBalanceRepository
	stock         repository.StockBalanceRepository
	cache         ports.Cache // nil = caché deshabilitado
	report        ReportGenerator
	sourceTimeout time.Duration
	cacheTTL      time.Duration
}

// New construye el caso de uso. cache y report pueden ser nil si la
// instalación no los necesita.
func New(
	ledger repository.LedgerBalanceRepository,
	stock repository.StockBalanceRepository,
	cache ports.Cache,
	report ReportGenerator,
	sourceTimeout, cacheTTL time.Duration,
) *UseCase {
	if sourceTimeout <= 0 {
		sourceTimeout = 30 * time.Second
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &UseCase{
		ledger:        ledger,
		stock:         stock,
		cache:         cache,
		report:        report,
		sourceTimeout: sourceTimeout,
		cacheTTL:      cacheTTL,
	}
}

// Compare ejecuta la consulta de conciliación y devuelve la página pedida
// con el total bajo el mismo filtro.
func (uc *UseCase) Compare(ctx context.Context, req dto.BalanceQueryRequest) (*dto.BalancePageResponse, error) {
	req.DefaultPage()
	if err := validate(req); err != nil {
		return nil, err
	}

	key := cacheKey(req)
	if uc.cache != nil {
		var cached dto.BalancePageResponse
		hit, err := uc.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("lectura de caché falló; recalculando")
		} else if hit {
			return &cached, nil
		}
	}

	rows, err := uc.reconcile(ctx, req)
	if err != nil {
		return nil, err
	}

	items, total := reconcile.Paginate(rows, req.Page, req.Size)
	resp := &dto.BalancePageResponse{
		Items: toItems(items),
		Total: total,
		Page:  req.Page,
		Size:  req.Size,
		Pages: reconcile.Pages(total, req.Size),
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, resp, uc.cacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("escritura de caché falló; se ignora")
		}
	}
	return resp, nil
}

// Report genera el PDF de divergencias con el mismo filtro de Compare, sin
// paginar (tope maxReportRows).
func (uc *UseCase) Report(ctx context.Context, req dto.BalanceQueryRequest) ([]byte, error) {
	req.DefaultPage()
	if err := validate(req); err != nil {
		return nil, err
	}
	if uc.report == nil {
		return nil, fmt.Errorf("generador de reportes no configurado")
	}

	rows, err := uc.reconcile(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(rows) > maxReportRows {
		rows = rows[:maxReportRows]
	}
	return uc.report.DivergenceReport(ctx, time.Now(), rows)
}

// reconcile corre el fan-out a las dos fuentes y el pipeline puro hasta el
// conjunto filtrado y ordenado. Falla atómicamente: si cualquiera de las
// fuentes falla o vence el timeout, no hay resultado parcial.
func (uc *UseCase) reconcile(ctx context.Context, req dto.BalanceQueryRequest) ([]reconcile.Row, error) {
	q := repository.SourceQuery{
		Company:  req.Company,
		Group:    req.Group,
		Subgroup: req.Subgroup,
		Material: req.Material,
	}

	fetchCtx, cancel := context.WithTimeout(ctx, uc.sourceTimeout)
	defer cancel()

	var (
		ledgerRaw []reconcile.LedgerRow
		stockRaw  []reconcile.StockRow
	)
	// Las dos consultas no dependen entre sí; se lanzan en paralelo y se
	// espera a ambas antes de mergear.
	g, gctx := errgroup.WithContext(fetchCtx)
	g.Go(func() error {
		var err error
		ledgerRaw, err = uc.ledger.FetchRaw(gctx, q)
		if err != nil {
			return fmt.Errorf("fuente kárdex: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		stockRaw, err = uc.stock.FetchRaw(gctx, q)
		if err != nil {
			return fmt.Errorf("fuente bodega: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("fan-out a fuentes de saldos falló")
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	merged := reconcile.Merge(
		reconcile.CollapseLedger(ledgerRaw),
		reconcile.AggregateStock(stockRaw),
	)
	filter := reconcile.Filter{
		DivergenceOnly:  req.DivergenceOnly,
		AdvantageLedger: req.AdvantageLedger,
		AdvantageStock:  req.AdvantageStock,
		Group:           req.Group,
		Subgroup:        req.Subgroup,
	}
	rows := filter.Apply(merged)
	reconcile.SortRows(rows)
	return rows, nil
}

func validate(req dto.BalanceQueryRequest) error {
	if req.Material != "" && utf8.RuneCountInString(req.Material) < minMaterialTerm {
		return fmt.Errorf("%w: material requiere mínimo %d caracteres", domain.ErrInvalidInput, minMaterialTerm)
	}
	if req.Size > maxPageSize {
		return fmt.Errorf("%w: size máximo %d", domain.ErrInvalidInput, maxPageSize)
	}
	return nil
}

// cacheKey serialización canónica de (filtro, paginación). El struct JSON
// tiene orden de campos fijo, así que la llave es determinista.
func cacheKey(req dto.BalanceQueryRequest) string {
	b, _ := json.Marshal(req)
	return fmt.Sprintf("%s%s:%d:%d", CachePrefix, b, req.Page, req.Size)
}

func toItems(rows []reconcile.Row) []dto.BalanceItem {
	items := make([]dto.BalanceItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.BalanceItem{
			Company:       r.CompanyID,
			CompanyKey:    r.CompanyKey,
			Group:         r.Group,
			Subgroup:      r.Subgroup,
			Material:      r.Material,
			Description:   r.Description,
			Status:        string(r.Status),
			Unit:          r.Unit,
			FiscalClass:   r.FiscalClass,
			ItemType:      r.ItemType,
			MaterialKind:  r.MaterialKind,
			BalanceLedger: r.BalanceLedger,
			BalanceStock:  r.BalanceStock,
			Difference:    r.Difference,
			OriginLedger:  r.OriginLedger,
			OriginStock:   r.OriginStock,
		})
	}
	return items
}
