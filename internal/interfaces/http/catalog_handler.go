package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/saldos-api/internal/application/dto"
	"github.com/jhoicas/saldos-api/internal/application/usecase"
)

// CatalogHandler expone los catálogos para los combos del frontend (protegido).
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Companies godoc
// @Summary      Listar empresas activas
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CompanyResponse
// @Router       /api/companies [get]
func (h *CatalogHandler) Companies(c *fiber.Ctx) error {
	out, err := h.uc.Companies(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Groups godoc
// @Summary      Listar grupos de material habilitados
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.GroupResponse
// @Router       /api/groups [get]
func (h *CatalogHandler) Groups(c *fiber.Ctx) error {
	out, err := h.uc.Groups(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Subgroups godoc
// @Summary      Listar subgrupos activos de un grupo
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Param        group  query  int  true  "Código del grupo padre"
// @Success      200  {array}   dto.SubgroupResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/subgroups [get]
func (h *CatalogHandler) Subgroups(c *fiber.Ctx) error {
	group, err := optionalIntQuery(c, "group")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if group == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "group es requerido"})
	}
	out, err := h.uc.Subgroups(c.Context(), *group)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
