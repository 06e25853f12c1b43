package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrInvalidInput = errors.New("entrada inválida")

	// ErrRemoteUnreachable marca fallas de transporte contra el gateway remoto
	// (conexión rechazada, timeout, respuesta corrupta). Es el ÚNICO error que
	// habilita el desvío al dataset de respaldo; un rechazo de aplicación
	// (RUT duplicado, documento malformado) jamás debe clasificarse así.
	ErrRemoteUnreachable = errors.New("gateway remoto inalcanzable")
)
