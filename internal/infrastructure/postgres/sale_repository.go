package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo libro de ventas (ventas + venta_lineas). Usable con pool o tx.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// NextID max+1 o entity.SaleIDBase con el libro vacío. Sin el advisory lock de RunSale
// el resultado puede quedar obsoleto.
func (r *SaleRepo) NextID(ctx context.Context) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `SELECT COALESCE(MAX(id) + 1, $1) FROM ventas`, entity.SaleIDBase).Scan(&id)
	if err != nil {
		return 0, domain.Persistence("siguiente id de venta", err)
	}
	return id, nil
}

// Create inserta cabecera y líneas en una sola sentencia.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	n := len(sale.Lines)
	lineNo := make([]int32, n)
	productIDs := make([]int64, n)
	quantities := make([]int32, n)
	prices := make([]string, n)
	for i, l := range sale.Lines {
		if l.Quantity <= 0 || int64(l.Quantity) > entity.MaxQuantity {
			return fmt.Errorf("venta %d línea %d: %w", sale.ID, i+1, domain.ErrInvalidInput)
		}
		lineNo[i] = int32(i + 1)
		productIDs[i] = l.ProductID
		quantities[i] = int32(l.Quantity)
		prices[i] = l.UnitPrice.String()
	}

	query := `
		WITH venta AS (
			INSERT INTO ventas (id, id_usuario, fecha, total)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		)
		INSERT INTO venta_lineas (venta_id, linea, id_producto, cantidad, precio_unitario)
		SELECT venta.id, l.linea, l.id_producto, l.cantidad, l.precio::numeric
		FROM venta, unnest($5::int[], $6::bigint[], $7::int[], $8::text[]) AS l(linea, id_producto, cantidad, precio)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.UserID, sale.Date, sale.Total,
		lineNo, productIDs, quantities, prices,
	)
	if err != nil {
		return domain.Persistence("insert venta", err)
	}
	return nil
}

// GetByID obtiene la venta con sus líneas; (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(ctx, `SELECT id, id_usuario, fecha, total FROM ventas WHERE id = $1`, id).
		Scan(&s.ID, &s.UserID, &s.Date, &s.Total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	if err := r.attachLines(ctx, []*entity.Sale{&s}); err != nil {
		return nil, err
	}
	return &s, nil
}

// List todas las ventas por ID.
func (r *SaleRepo) List(ctx context.Context) ([]*entity.Sale, error) {
	return r.list(ctx, `SELECT id, id_usuario, fecha, total FROM ventas ORDER BY id`)
}

// ListByUser ventas de un usuario por ID.
func (r *SaleRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.Sale, error) {
	return r.list(ctx, `SELECT id, id_usuario, fecha, total FROM ventas WHERE id_usuario = $1 ORDER BY id`, userID)
}

func (r *SaleRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	list := make([]*entity.Sale, 0)
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.UserID, &s.Date, &s.Total); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		list = append(list, &s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	if err := r.attachLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// attachLines carga las líneas de todas las ventas en una sola consulta.
func (r *SaleRepo) attachLines(ctx context.Context, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	byID := make(map[int64]*entity.Sale, len(sales))
	ids := make([]int64, 0, len(sales))
	for _, s := range sales {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}

	rows, err := r.q.Query(ctx, `
		SELECT venta_id, id_producto, cantidad, precio_unitario
		FROM venta_lineas WHERE venta_id = ANY($1) ORDER BY venta_id, linea`, ids)
	if err != nil {
		return fmt.Errorf("list lineas: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var saleID int64
		var l entity.SaleLine
		if err := rows.Scan(&saleID, &l.ProductID, &l.Quantity, &l.UnitPrice); err != nil {
			return fmt.Errorf("scan linea: %w", err)
		}
		if s, ok := byID[saleID]; ok {
			s.Lines = append(s.Lines, l)
		}
	}
	return rows.Err()
}
