package postgres

import (
	"context"
	"fmt"
)

// Claves de pg_advisory_xact_lock.
const (
	salesLockKey int64 = 0x76656e746173 // "ventas"
	usersLockKey int64 = 0x7573756172   // "usuar"
)

// usersEmailIndex índice único de email; las demás violaciones de unicidad en usuarios son del id.
const usersEmailIndex = "usuarios_email_key"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS usuarios (
		id            BIGINT PRIMARY KEY,
		nombre        TEXT NOT NULL,
		apellido      TEXT NOT NULL DEFAULT '',
		email         TEXT NOT NULL,
		password_hash TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ` + usersEmailIndex + ` ON usuarios (lower(email))`,
	`CREATE TABLE IF NOT EXISTS productos (
		id          BIGINT PRIMARY KEY,
		nombre      TEXT NOT NULL,
		descripcion TEXT NOT NULL DEFAULT '',
		precio      NUMERIC NOT NULL CHECK (precio >= 0),
		imagen      TEXT NOT NULL DEFAULT '',
		disponible  BOOLEAN NOT NULL DEFAULT TRUE,
		tipo        TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS productos_precio_idx ON productos (precio)`,
	`CREATE TABLE IF NOT EXISTS ventas (
		id         BIGINT PRIMARY KEY,
		id_usuario BIGINT NOT NULL,
		fecha      TIMESTAMPTZ NOT NULL,
		total      NUMERIC NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS ventas_id_usuario_idx ON ventas (id_usuario)`,
	`CREATE TABLE IF NOT EXISTS venta_lineas (
		venta_id        BIGINT NOT NULL REFERENCES ventas (id) ON DELETE CASCADE,
		linea           INT NOT NULL,
		id_producto     BIGINT NOT NULL,
		cantidad        INT NOT NULL CHECK (cantidad > 0),
		precio_unitario NUMERIC NOT NULL,
		PRIMARY KEY (venta_id, linea)
	)`,
}

// EnsureSchema crea las tablas si no existen. No hay migraciones versionadas.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("crear esquema: %w", err)
		}
	}
	return nil
}

// Truncate vacía todas las tablas (seed -reset).
func Truncate(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, `TRUNCATE venta_lineas, ventas, usuarios, productos`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	return nil
}
