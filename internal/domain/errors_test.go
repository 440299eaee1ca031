package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductNotFoundError(t *testing.T) {
	var err error = &ProductNotFoundError{ProductID: 42}
	wrapped := fmt.Errorf("crear venta: %w", err)

	assert.ErrorIs(t, wrapped, ErrProductNotFound)
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.NotErrorIs(t, wrapped, ErrUserNotFound)

	var pnf *ProductNotFoundError
	assert.True(t, errors.As(wrapped, &pnf))
	assert.Equal(t, int64(42), pnf.ProductID)
	assert.Equal(t, "producto 42 no encontrado", err.Error())
}

func TestUserHasSalesError(t *testing.T) {
	err := &UserHasSalesError{UserID: 3, SaleIDs: []int64{1001, 1004}}
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "el usuario 3 tiene ventas asociadas: 1001, 1004", err.Error())
}

func TestPersistence(t *testing.T) {
	cause := errors.New("disk full")
	err := Persistence("guardar venta", cause)

	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "guardar venta")
	assert.NoError(t, Persistence("x", nil))
}
