package entity

// Company empresa (unidad/planta) del catálogo. El id numérico es el que se
// normaliza a clave de join de 3 dígitos.
type Company struct {
	ID     int
	Name   string
	Status string // "A" | "I"
}

// MaterialGroup grupo de materiales del catálogo (solo los del allow-list
// entran a la conciliación; esa regla vive en la consulta del kárdex).
type MaterialGroup struct {
	Code        int
	Description string
}

// MaterialSubgroup subgrupo dentro de un grupo de materiales.
type MaterialSubgroup struct {
	Code        int
	Description string
}
