package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	// Validación
	ErrInvalidInput = errors.New("entrada inválida")
	ErrMissingField = errors.New("faltan datos requeridos")
	ErrInvalidRange = errors.New("los parámetros desde y hasta deben ser números")

	// Autenticación
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrMissingCredential  = errors.New("no se proporcionó token")
	ErrInvalidCredential  = errors.New("token inválido o expirado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")

	// Inexistentes
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrUserNotFound    = errors.New("usuario no encontrado")
	ErrProductNotFound = errors.New("producto no encontrado")
	ErrSaleNotFound    = errors.New("venta no encontrada")

	// Conflictos
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")

	// Persistencia
	ErrPersistence = errors.New("error de persistencia")
)

// ProductNotFoundError indica qué producto de la venta no existe en el catálogo.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("producto %d no encontrado", e.ProductID)
}

// Is permite errors.Is(err, ErrProductNotFound) y errors.Is(err, ErrNotFound).
func (e *ProductNotFoundError) Is(target error) bool {
	return target == ErrProductNotFound || target == ErrNotFound
}

// UserHasSalesError bloquea el borrado de un usuario con ventas asociadas.
type UserHasSalesError struct {
	UserID  int64
	SaleIDs []int64
}

func (e *UserHasSalesError) Error() string {
	ids := make([]string, len(e.SaleIDs))
	for i, id := range e.SaleIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("el usuario %d tiene ventas asociadas: %s", e.UserID, strings.Join(ids, ", "))
}

func (e *UserHasSalesError) Is(target error) bool {
	return target == ErrConflict
}

// Persistence envuelve un error de almacenamiento para que cumpla errors.Is(err, ErrPersistence)
// sin perder la causa original.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}
