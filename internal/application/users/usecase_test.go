package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

type memUsers map[int64]*entity.User

func (m memUsers) Create(_ context.Context, u *entity.User) error { m[u.ID] = u; return nil }
func (m memUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	return m[id], nil
}
func (m memUsers) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (m memUsers) List(context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m {
		out = append(out, u)
	}
	return out, nil
}
func (m memUsers) Delete(_ context.Context, id int64) error {
	if _, ok := m[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m, id)
	return nil
}

type memSales []*entity.Sale

func (m memSales) NextID(context.Context) (int64, error)                  { return 0, nil }
func (m memSales) Create(context.Context, *entity.Sale) error             { return nil }
func (m memSales) GetByID(context.Context, int64) (*entity.Sale, error)   { return nil, nil }
func (m memSales) List(context.Context) ([]*entity.Sale, error)           { return m, nil }
func (m memSales) ListByUser(_ context.Context, userID int64) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range m {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func fixture() (*UserUseCase, memUsers) {
	users := memUsers{
		1: {ID: 1, Name: "Ana", Email: "ana@example.com", PasswordHash: "hash"},
		3: {ID: 3, Name: "Beto", Email: "beto@example.com", PasswordHash: "hash"},
	}
	sales := memSales{
		{ID: 1004, UserID: 3},
		{ID: 1001, UserID: 3},
	}
	return NewUserUseCase(users, sales, logger.Nop()), users
}

func TestList_OrdenadoYSinContraseña(t *testing.T) {
	uc, _ := fixture()

	out, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].ID)
	assert.Equal(t, int64(3), out[1].ID)
}

func TestDelete(t *testing.T) {
	uc, users := fixture()

	require.NoError(t, uc.Delete(context.Background(), 1))
	assert.NotContains(t, users, int64(1))

	assert.ErrorIs(t, uc.Delete(context.Background(), 1), domain.ErrUserNotFound)
}

func TestDelete_ConVentasAsociadas(t *testing.T) {
	uc, users := fixture()

	err := uc.Delete(context.Background(), 3)
	var conflict *domain.UserHasSalesError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []int64{1001, 1004}, conflict.SaleIDs)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, users, int64(3))
}
