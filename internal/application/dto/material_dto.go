package dto

// MaterialResponse detalle de un material del sistema de registro.
type MaterialResponse struct {
	Code         string `json:"code"`
	Description  string `json:"description"`
	Status       string `json:"status"`
	Group        int    `json:"group"`
	Subgroup     int    `json:"subgroup"`
	Unit         string `json:"unit,omitempty"`
	FiscalClass  string `json:"fiscal_classification,omitempty"`
	ItemType     string `json:"item_type,omitempty"`
	MaterialKind string `json:"material_kind,omitempty"`
}

// UpdateMaterialRequest corrección de metadatos de un material.
// Description y Status son obligatorios; el resto es opcional.
type UpdateMaterialRequest struct {
	Description string  `json:"description"`
	Status      string  `json:"status"` // "A" | "I"
	Unit        *string `json:"unit,omitempty"`
	FiscalClass *string `json:"fiscal_classification,omitempty"`
	Group       *int    `json:"group,omitempty"`
	Subgroup    *int    `json:"subgroup,omitempty"`
	ItemType    *string `json:"item_type,omitempty"`
}

// UpdateMaterialResponse resultado de la corrección.
type UpdateMaterialResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    MaterialResponse `json:"data"`
}

// CompanyResponse empresa del catálogo de filtros.
type CompanyResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GroupResponse grupo de materiales del catálogo de filtros.
type GroupResponse struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// SubgroupResponse subgrupo de materiales del catálogo de filtros.
type SubgroupResponse struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}
