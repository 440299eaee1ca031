package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en la colección "usuarios".
type UserRepo struct {
	s *Store
}

func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) coll() *mongo.Collection { return r.s.db.Collection(usersCollection) }

// Create asigna el ID con el contador "usuarios"; el índice email_unico rechaza duplicados.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	doc := toUserDoc(u)
	if doc.ID == 0 {
		floor, err := r.s.maxID(ctx, usersCollection)
		if err != nil {
			return domain.Persistence("siguiente id de usuario", err)
		}
		id, err := r.s.nextSequence(ctx, usersCollection, floor)
		if err != nil {
			return domain.Persistence("siguiente id de usuario", err)
		}
		doc.ID = id
	}
	if _, err := r.coll().InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if duplicateEmail(err) {
				return domain.ErrEmailAlreadyExists
			}
			return fmt.Errorf("usuario %d: %w", doc.ID, domain.ErrConflict)
		}
		return domain.Persistence("insert usuario", err)
	}
	u.ID = doc.ID
	return nil
}

// duplicateEmail distingue el índice email_unico del índice único de id.
func duplicateEmail(err error) bool {
	var we mongo.WriteException
	if !errors.As(err, &we) {
		return false
	}
	for _, e := range we.WriteErrors {
		if e.Code == 11000 && strings.Contains(e.Message, usersEmailIndex) {
			return true
		}
	}
	return false
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

// GetByEmail compara sin distinguir mayúsculas.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	pattern := "^" + regexp.QuoteMeta(email) + "$"
	return r.findOne(ctx, bson.M{"email": bson.M{"$regex": pattern, "$options": "i"}})
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDoc
	err := r.coll().FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: get usuario: %w", err)
	}
	return doc.entity(), nil
}

func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	cur, err := r.coll().Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo: list usuarios: %w", err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: list usuarios: %w", err)
	}
	out := make([]*entity.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.coll().DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return domain.Persistence("delete usuario", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
