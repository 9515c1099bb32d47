package balances

import (
	"context"
	"time"

	"github.com/jhoicas/saldos-api/internal/domain/reconcile"
)

// ReportGenerator genera el reporte PDF de divergencias sobre las filas ya
// conciliadas y filtradas.
type ReportGenerator interface {
	DivergenceReport(ctx context.Context, generatedAt time.Time, rows []reconcile.Row) ([]byte, error)
}
