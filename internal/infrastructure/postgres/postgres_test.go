package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestRunSale_AsignaIDBajoLock(t *testing.T) {
	mock := newMock(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WithArgs(salesLockKey).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectQuery("SELECT COALESCE").WithArgs(entity.SaleIDBase).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(1001)))
	mock.ExpectExec("INSERT INTO ventas").
		WithArgs(int64(1001), int64(7), pgxmock.AnyArg(), pgxmock.AnyArg(),
			[]int32{1}, []int64{5}, []int32{3}, []string{"10"}).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	sale := &entity.Sale{
		UserID: 7,
		Date:   time.Now().UTC(),
		Total:  decimal.NewFromInt(30),
		Lines:  []entity.SaleLine{{ProductID: 5, Quantity: 3, UnitPrice: decimal.NewFromInt(10)}},
	}
	err := NewTxRunner(mock).RunSale(ctx, func(ledger repository.SaleRepository) error {
		id, err := ledger.NextID(ctx)
		if err != nil {
			return err
		}
		sale.ID = id
		return ledger.Create(ctx, sale)
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1001), sale.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunSale_FalloHaceRollback(t *testing.T) {
	mock := newMock(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WithArgs(salesLockKey).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectExec("INSERT INTO ventas").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := NewTxRunner(mock).RunSale(ctx, func(ledger repository.SaleRepository) error {
		return ledger.Create(ctx, &entity.Sale{ID: 1001, UserID: 7, Total: decimal.Zero})
	})
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create(t *testing.T) {
	mock := newMock(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WithArgs(usersLockKey).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectQuery("FROM usuarios").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(4)))
	mock.ExpectExec("INSERT INTO usuarios").
		WithArgs(int64(4), "Ana", "", "ana@example.com", "hash").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	u := &entity.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "hash"}
	require.NoError(t, NewUserRepository(mock).Create(ctx, u))
	assert.Equal(t, int64(4), u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_CreateEmailDuplicado(t *testing.T) {
	mock := newMock(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WithArgs(usersLockKey).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectExec("INSERT INTO usuarios").
		WithArgs(int64(2), "Ana", "", "ana@example.com", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: usersEmailIndex})
	mock.ExpectRollback()

	u := &entity.User{ID: 2, Name: "Ana", Email: "ana@example.com", PasswordHash: "hash"}
	err := NewUserRepository(mock).Create(ctx, u)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_CreateIDDuplicado(t *testing.T) {
	mock := newMock(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WithArgs(usersLockKey).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectExec("INSERT INTO usuarios").
		WithArgs(int64(7), "Beto", "", "beto@example.com", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "usuarios_pkey"})
	mock.ExpectRollback()

	u := &entity.User{ID: 7, Name: "Beto", Email: "beto@example.com", PasswordHash: "hash"}
	err := NewUserRepository(mock).Create(ctx, u)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NotErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleRepo_CreateRechazaCantidadFueraDeRango(t *testing.T) {
	mock := newMock(t)

	sale := &entity.Sale{
		ID:     1001,
		UserID: 7,
		Total:  decimal.NewFromInt(10),
		Lines:  []entity.SaleLine{{ProductID: 5, Quantity: entity.MaxQuantity + 1, UnitPrice: decimal.NewFromInt(10)}},
	}
	err := NewSaleRepository(mock).Create(context.Background(), sale)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NoError(t, mock.ExpectationsWereMet(), "no llega a ejecutar el INSERT")
}

func TestUserRepo_GetByEmail(t *testing.T) {
	mock := newMock(t)
	ctx := context.Background()
	cols := []string{"id", "nombre", "apellido", "email", "password_hash"}

	mock.ExpectQuery("FROM usuarios WHERE lower").WithArgs("ANA@example.com").
		WillReturnRows(pgxmock.NewRows(cols).AddRow(int64(1), "Ana", "Gómez", "ana@example.com", "hash"))
	mock.ExpectQuery("FROM usuarios WHERE lower").WithArgs("nadie@example.com").
		WillReturnRows(pgxmock.NewRows(cols))

	repo := NewUserRepository(mock)
	u, err := repo.GetByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Gómez", u.Surname)

	missing, err := repo.GetByEmail(ctx, "nadie@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_DeleteInexistente(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("DELETE FROM usuarios").WithArgs(int64(9)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := NewUserRepository(mock).Delete(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_GetByIDInexistente(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("FROM productos WHERE id").WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "nombre", "descripcion", "precio", "imagen", "disponible", "tipo"}))

	p, err := NewProductRepository(mock).GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_SaveError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("INSERT INTO productos").
		WithArgs(int64(5), "Taza", "", pgxmock.AnyArg(), "", true, "").
		WillReturnError(errors.New("conexión cerrada"))

	err := NewProductRepository(mock).Save(context.Background(), &entity.Product{ID: 5, Name: "Taza", Price: decimal.NewFromInt(10), Available: true})
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	mock := newMock(t)
	for range schema {
		mock.ExpectExec("CREATE").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	}
	require.NoError(t, EnsureSchema(context.Background(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}
