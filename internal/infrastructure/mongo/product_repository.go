package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo en la colección "productos".
type ProductRepo struct {
	s *Store
}

func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

func (r *ProductRepo) coll() *mongo.Collection { return r.s.db.Collection(productsCollection) }

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var doc productDoc
	err := r.coll().FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: get producto: %w", err)
	}
	return doc.entity()
}

func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	return r.find(ctx, bson.M{})
}

func (r *ProductRepo) ListByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*entity.Product, error) {
	lo, err := toDecimal128(min)
	if err != nil {
		return nil, err
	}
	hi, err := toDecimal128(max)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.M{"precio": bson.M{"$gte": lo, "$lte": hi}})
}

func (r *ProductRepo) find(ctx context.Context, filter bson.M) ([]*entity.Product, error) {
	cur, err := r.coll().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo: list productos: %w", err)
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: list productos: %w", err)
	}
	out := make([]*entity.Product, 0, len(docs))
	for _, d := range docs {
		p, err := d.entity()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Save reemplaza el documento con el mismo id (upsert).
func (r *ProductRepo) Save(ctx context.Context, p *entity.Product) error {
	doc, err := toProductDoc(p)
	if err != nil {
		return err
	}
	_, err = r.coll().ReplaceOne(ctx, bson.M{"id": p.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return domain.Persistence("guardar producto", err)
	}
	return nil
}
