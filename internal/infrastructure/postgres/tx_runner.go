package postgres

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.SaleTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db DB
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db DB) *TxRunner {
	return &TxRunner{db: db}
}

// RunSale abre una transacción, toma el advisory lock de ventas y ejecuta fn con un libro atado
// a la tx. Dos RunSale concurrentes no pueden leer el mismo MAX(id).
func (r *TxRunner) RunSale(ctx context.Context, fn func(sales repository.SaleRepository) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Persistence("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, salesLockKey); err != nil {
		return domain.Persistence("lock ventas", err)
	}
	if err := fn(NewSaleRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Persistence("commit transaction", err)
	}
	return nil
}
