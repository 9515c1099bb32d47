package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/saldos-api/internal/application/balances"
	"github.com/jhoicas/saldos-api/internal/application/dto"
	"github.com/jhoicas/saldos-api/internal/domain"
)

// BalanceHandler maneja la consulta de conciliación de saldos (protegido).
type BalanceHandler struct {
	uc *balances.UseCase
}

// NewBalanceHandler construye el handler.
func NewBalanceHandler(uc *balances.UseCase) *BalanceHandler {
	return &BalanceHandler{uc: uc}
}

// Compare godoc
// @Summary      Comparar saldos kárdex vs bodega
// @Tags         balances
// @Security     Bearer
// @Produce      json
// @Param        company          query  int     false  "ID de empresa"
// @Param        group            query  int     false  "Grupo de material"
// @Param        subgroup         query  int     false  "Subgrupo de material"
// @Param        material         query  string  false  "Código de material (mínimo 3 caracteres)"
// @Param        divergence_only  query  bool    false  "Solo filas con diferencia"
// @Param        advantage_ledger query  bool    false  "Solo filas donde el kárdex supera a bodega"
// @Param        advantage_stock  query  bool    false  "Solo filas donde bodega supera al kárdex"
// @Param        page             query  int     false  "Página"           default(1)
// @Param        size             query  int     false  "Tamaño de página"  default(50)
// @Success      200  {object}  dto.BalancePageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/balances [get]
func (h *BalanceHandler) Compare(c *fiber.Ctx) error {
	req, err := parseBalanceQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Compare(c.Context(), req)
	if err != nil {
		return balanceError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de la conciliación
// @Tags         balances
// @Security     Bearer
// @Produce      application/pdf
// @Param        company          query  int     false  "ID de empresa"
// @Param        group            query  int     false  "Grupo de material"
// @Param        subgroup         query  int     false  "Subgrupo de material"
// @Param        material         query  string  false  "Código de material (mínimo 3 caracteres)"
// @Param        divergence_only  query  bool    false  "Solo filas con diferencia"
// @Param        advantage_ledger query  bool    false  "Solo filas donde el kárdex supera a bodega"
// @Param        advantage_stock  query  bool    false  "Solo filas donde bodega supera al kárdex"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/balances/report [get]
func (h *BalanceHandler) Report(c *fiber.Ctx) error {
	req, err := parseBalanceQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	pdf, err := h.uc.Report(c.Context(), req)
	if err != nil {
		return balanceError(c, err)
	}
	filename := "conciliacion-" + time.Now().Format("20060102-150405") + ".pdf"
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// optionalIntQuery devuelve nil si el parámetro no viene en el query string
// y error si viene malformado.
func optionalIntQuery(c *fiber.Ctx, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.New(name + " debe ser un número entero")
	}
	return &n, nil
}

// parseBalanceQuery arma el request desde los query params. Los filtros
// numéricos ausentes quedan en nil; los malformados fallan con error.
func parseBalanceQuery(c *fiber.Ctx) (dto.BalanceQueryRequest, error) {
	var req dto.BalanceQueryRequest

	for _, p := range []struct {
		name string
		dest **int
	}{
		{"company", &req.Company},
		{"group", &req.Group},
		{"subgroup", &req.Subgroup},
	} {
		v, err := optionalIntQuery(c, p.name)
		if err != nil {
			return req, err
		}
		*p.dest = v
	}

	req.Material = c.Query("material")
	req.DivergenceOnly = c.QueryBool("divergence_only")
	req.AdvantageLedger = c.QueryBool("advantage_ledger")
	req.AdvantageStock = c.QueryBool("advantage_stock")

	// Paginación: ausente queda en cero (el caso de uso aplica el default),
	// pero un valor explícito fuera de rango se rechaza aquí mismo.
	for _, p := range []struct {
		name string
		dest *int
	}{
		{"page", &req.Page},
		{"size", &req.Size},
	} {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return req, errors.New(p.name + " debe ser un número entero")
		}
		if n < 1 {
			return req, errors.New(p.name + " debe ser mayor o igual a 1")
		}
		*p.dest = n
	}
	return req, nil
}

// balanceError mapea errores del caso de uso a códigos HTTP.
func balanceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrUpstreamUnavailable) {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM_UNAVAILABLE", Message: "fuente de saldos no disponible, intente más tarde"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
