package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var (
	_ repository.SaleRepository = (*SaleRepo)(nil)
	_ repository.SaleTxRunner   = (*TxRunner)(nil)
)

// SaleRepo libro de ventas; cada venta es un único documento con sus líneas embebidas.
type SaleRepo struct {
	s *Store
}

func NewSaleRepository(s *Store) *SaleRepo {
	return &SaleRepo{s: s}
}

func (r *SaleRepo) coll() *mongo.Collection { return r.s.db.Collection(salesCollection) }

// NextID toma el siguiente valor del contador "ventas" ($inc atómico). El contador arranca
// en entity.SaleIDBase o por encima del mayor ID existente.
func (r *SaleRepo) NextID(ctx context.Context) (int64, error) {
	floor, err := r.s.maxID(ctx, salesCollection)
	if err != nil {
		return 0, domain.Persistence("siguiente id de venta", err)
	}
	if floor < entity.SaleIDBase-1 {
		floor = entity.SaleIDBase - 1
	}
	id, err := r.s.nextSequence(ctx, salesCollection, floor)
	if err != nil {
		return 0, domain.Persistence("siguiente id de venta", err)
	}
	return id, nil
}

func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	doc, err := toSaleDoc(sale)
	if err != nil {
		return domain.Persistence("insert venta", err)
	}
	if _, err := r.coll().InsertOne(ctx, doc); err != nil {
		return domain.Persistence("insert venta", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	var doc saleDoc
	err := r.coll().FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: get venta: %w", err)
	}
	return doc.entity()
}

func (r *SaleRepo) List(ctx context.Context) ([]*entity.Sale, error) {
	return r.find(ctx, bson.M{})
}

func (r *SaleRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.Sale, error) {
	return r.find(ctx, bson.M{"id_usuario": userID})
}

func (r *SaleRepo) find(ctx context.Context, filter bson.M) ([]*entity.Sale, error) {
	cur, err := r.coll().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo: list ventas: %w", err)
	}
	var docs []saleDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: list ventas: %w", err)
	}
	out := make([]*entity.Sale, 0, len(docs))
	for _, d := range docs {
		s, err := d.entity()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// TxRunner no abre transacciones: el contador asigna IDs únicos y cada venta es un solo
// InsertOne, así que no hace falta replica set.
type TxRunner struct {
	s *Store
}

func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) RunSale(ctx context.Context, fn func(sales repository.SaleRepository) error) error {
	return fn(NewSaleRepository(r.s))
}
