package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// ErrDataAccess marca cualquier fallo leyendo o escribiendo en el almacén de datos.
	// Es fatal para una corrida MRP: no existen resultados parciales.
	ErrDataAccess = errors.New("error de acceso a datos")

	// ErrInvalidHorizon horizonte de planeación no numérico, fraccionario o fuera de rango.
	ErrInvalidHorizon = fmt.Errorf("%w: planningHorizonDays debe ser un entero positivo", ErrInvalidInput)
)

// DataAccess envuelve err como ErrDataAccess conservando la causa original.
func DataAccess(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrDataAccess, op, err)
}
