package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// ErrUpstreamUnavailable una de las dos fuentes de saldos falló o venció
	// su timeout. La conciliación es atómica: nunca se devuelve una página
	// construida con datos de una sola fuente.
	ErrUpstreamUnavailable = errors.New("fuente de saldos no disponible")
)
