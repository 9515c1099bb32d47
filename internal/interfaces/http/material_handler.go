package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/saldos-api/internal/application/dto"
	"github.com/jhoicas/saldos-api/internal/application/usecase"
	"github.com/jhoicas/saldos-api/internal/domain"
)

// MaterialHandler maneja consulta, búsqueda y corrección de materiales (protegido).
type MaterialHandler struct {
	uc *usecase.MaterialUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *usecase.MaterialUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc}
}

// Search godoc
// @Summary      Buscar materiales por código o descripción
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        q         query  string  true   "Término de búsqueda (mínimo 3 caracteres)"
// @Param        group     query  int     false  "Filtrar por grupo"
// @Param        subgroup  query  int     false  "Filtrar por subgrupo"
// @Success      200  {array}   dto.MaterialResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/materials/search [get]
func (h *MaterialHandler) Search(c *fiber.Ctx) error {
	term := c.Query("q")
	group, err := optionalIntQuery(c, "group")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	subgroup, err := optionalIntQuery(c, "subgroup")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Search(c.Context(), term, group, subgroup)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByCode godoc
// @Summary      Obtener detalle de un material
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código del material"
// @Success      200  {object}  dto.MaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{code} [get]
func (h *MaterialHandler) GetByCode(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_CODE", Message: "code es requerido"})
	}
	out, err := h.uc.GetDetails(c.Context(), code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Corregir un material (solo admin)
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Código del material"
// @Param        body  body  dto.UpdateMaterialRequest  true  "Campos a corregir"
// @Success      200   {object}  dto.UpdateMaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials/{code} [put]
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_CODE", Message: "code es requerido"})
	}
	var in dto.UpdateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), code, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
