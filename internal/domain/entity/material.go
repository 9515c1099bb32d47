package entity

// Material maestro de materiales en el sistema de registro (kárdex).
// Code es el identificador de negocio; no hay id sintético.
type Material struct {
	Code         string
	Description  string
	Status       string // "A" activo, "I" inactivo
	Group        int
	Subgroup     int
	Unit         string
	FiscalClass  string // clasificación fiscal (NCM); puede venir de la tabla fiscal
	ItemType     string
	MaterialKind string // "U" = material único (elegible para conciliación)
}
