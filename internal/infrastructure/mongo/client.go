// Package mongo implementa los puertos de persistencia sobre MongoDB (colecciones
// usuarios, productos, ventas y counters).
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/Tienda-api/pkg/config"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

const (
	usersCollection    = "usuarios"
	productsCollection = "productos"
	salesCollection    = "ventas"
	countersCollection = "counters"

	usersEmailIndex = "email_unico"
)

// Store conexión y base de datos.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	log    *logger.Logger
}

// Connect abre el cliente, verifica con ping y crea los índices únicos.
func Connect(ctx context.Context, cfg config.MongoConfig, log *logger.Logger) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}

	s := &Store{client: client, db: client.Database(cfg.Database), log: log.Component("mongo")}
	if err := s.ensureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	s.log.Info().Str("database", cfg.Database).Msg("conectado")
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName(usersEmailIndex)},
		},
		productsCollection: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "precio", Value: 1}}},
		},
		salesCollection: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "id_usuario", Value: 1}}},
		},
	}
	for name, models := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongo: índices de %s: %w", name, err)
		}
	}
	return nil
}

// nextSequence incrementa el contador name de forma atómica. floor es el mayor ID ya usado
// en la colección (datos sembrados) para que el contador nunca quede por debajo.
func (s *Store) nextSequence(ctx context.Context, name string, floor int64) (int64, error) {
	counters := s.db.Collection(countersCollection)
	_, err := counters.UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$max": bson.M{"seq": floor}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return 0, fmt.Errorf("mongo: contador %s: %w", name, err)
	}

	var out struct {
		Seq int64 `bson:"seq"`
	}
	err = counters.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return 0, fmt.Errorf("mongo: contador %s: %w", name, err)
	}
	return out.Seq, nil
}

// maxID mayor valor de "id" en la colección, o 0 si está vacía.
func (s *Store) maxID(ctx context.Context, collection string) (int64, error) {
	var doc struct {
		ID int64 `bson:"id"`
	}
	err := s.db.Collection(collection).FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}}).SetProjection(bson.M{"id": 1}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("mongo: max id de %s: %w", collection, err)
	}
	return doc.ID, nil
}

// Truncate vacía las colecciones y los contadores (seed -reset).
func (s *Store) Truncate(ctx context.Context) error {
	for _, name := range []string{usersCollection, productsCollection, salesCollection, countersCollection} {
		if _, err := s.db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			return fmt.Errorf("mongo: vaciar %s: %w", name, err)
		}
	}
	return nil
}

// Close desconecta el cliente.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
