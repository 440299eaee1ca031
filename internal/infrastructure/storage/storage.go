// Package storage elige el backend de persistencia según STORAGE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/jsonfile"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/mongo"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Tienda-api/pkg/config"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// Backend puertos de persistencia de un mismo almacén.
type Backend struct {
	Driver   string
	Users    repository.UserRepository
	Products repository.ProductRepository
	Sales    repository.SaleRepository
	Runner   repository.SaleTxRunner

	reset func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Open conecta el backend configurado.
func Open(ctx context.Context, cfg config.Config, log *logger.Logger) (*Backend, error) {
	switch cfg.Storage.Driver {
	case config.DriverJSONFile:
		return OpenJSONFile(cfg.Storage.DataDir, log)

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("storage: %w", err)
		}
		return &Backend{
			Driver:   config.DriverPostgres,
			Users:    postgres.NewUserRepository(pool),
			Products: postgres.NewProductRepository(pool),
			Sales:    postgres.NewSaleRepository(pool),
			Runner:   postgres.NewTxRunner(pool),
			reset:    func(ctx context.Context) error { return postgres.Truncate(ctx, pool) },
			close:    func(context.Context) error { pool.Close(); return nil },
		}, nil

	case config.DriverMongo:
		store, err := mongo.Connect(ctx, cfg.Mongo, log)
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		return &Backend{
			Driver:   config.DriverMongo,
			Users:    mongo.NewUserRepository(store),
			Products: mongo.NewProductRepository(store),
			Sales:    mongo.NewSaleRepository(store),
			Runner:   mongo.NewTxRunner(store),
			reset:    store.Truncate,
			close:    store.Close,
		}, nil
	}
	return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Storage.Driver)
}

// OpenJSONFile backend de archivos planos en dir.
func OpenJSONFile(dir string, log *logger.Logger) (*Backend, error) {
	store, err := jsonfile.Open(dir, log)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return &Backend{
		Driver:   config.DriverJSONFile,
		Users:    jsonfile.NewUserRepository(store),
		Products: jsonfile.NewProductRepository(store),
		Sales:    jsonfile.NewSaleRepository(store),
		Runner:   jsonfile.NewTxRunner(store),
		reset:    func(context.Context) error { return store.Truncate() },
		close:    func(context.Context) error { return store.Close() },
	}, nil
}

// Reset vacía usuarios, productos y ventas.
func (b *Backend) Reset(ctx context.Context) error {
	return b.reset(ctx)
}

// Close libera conexiones.
func (b *Backend) Close(ctx context.Context) error {
	return b.close(ctx)
}
