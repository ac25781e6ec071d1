package repo

import (
	"context"
	"errors"
	"regexp"
	"time"

	dom "Clientes/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const dniIndexName = "dni_unique"

// MongoClienteRepo implements ClienteRepo on a MongoDB collection.
type MongoClienteRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoClienteRepo wraps an already connected client.
func NewMongoClienteRepo(client *mongo.Client, database, collection string) *MongoClienteRepo {
	return &MongoClienteRepo{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}
}

// EnsureIndexes creates the unique dni index. Safe to call on every start.
func (r *MongoClienteRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: dom.FieldDNI, Value: 1}},
		Options: options.Index().SetUnique(true).SetName(dniIndexName),
	})
	return storeErr("ensure indexes", err)
}

func (r *MongoClienteRepo) FindMany(ctx context.Context, f Filter, skip, limit int64) ([]dom.Cliente, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit)
	cur, err := r.coll.Find(ctx, MongoFilter(f), opts)
	if err != nil {
		return nil, storeErr("find", err)
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storeErr("find", err)
	}
	list := make([]dom.Cliente, 0, len(docs))
	for _, d := range docs {
		list = append(list, clienteFromBSON(d))
	}
	return list, nil
}

func (r *MongoClienteRepo) FindOne(ctx context.Context, f Filter) (dom.Cliente, bool, error) {
	var doc bson.M
	err := r.coll.FindOne(ctx, MongoFilter(f)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return dom.Cliente{}, false, nil
	}
	if err != nil {
		return dom.Cliente{}, false, storeErr("find one", err)
	}
	return clienteFromBSON(doc), true, nil
}

func (r *MongoClienteRepo) Insert(ctx context.Context, c dom.Cliente) (dom.Cliente, error) {
	c.DeletedAt = nil
	res, err := r.coll.InsertOne(ctx, bson.M(c.Document()))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return dom.Cliente{}, ErrDuplicateKey
		}
		return dom.Cliente{}, storeErr("insert", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid.Hex()
	}
	return c, nil
}

func (r *MongoClienteRepo) UpdateFields(ctx context.Context, dni string, fields dom.Patch) (int64, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{dom.FieldDNI: dni},
		bson.M{"$set": bson.M(fields)},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, ErrDuplicateKey
		}
		return 0, storeErr("update", err)
	}
	return res.MatchedCount, nil
}

func (r *MongoClienteRepo) SetDeletedAt(ctx context.Context, dni string, at *time.Time) (UpdateResult, error) {
	var v any
	if at != nil {
		v = *at
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{dom.FieldDNI: dni},
		bson.M{"$set": bson.M{dom.FieldDeletedAt: v}},
	)
	if err != nil {
		return UpdateResult{}, storeErr("set deletedAt", err)
	}
	return UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

func (r *MongoClienteRepo) Ping(ctx context.Context) error {
	return storeErr("ping", r.client.Ping(ctx, readpref.Primary()))
}

func (r *MongoClienteRepo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// MongoFilter translates a Filter into a query document.
func MongoFilter(f Filter) bson.M {
	m := bson.M{}
	for _, c := range f.All {
		m[c.Field] = mongoCond(c)
	}
	if len(f.Any) > 0 {
		or := make(bson.A, 0, len(f.Any))
		for _, c := range f.Any {
			or = append(or, bson.M{c.Field: mongoCond(c)})
		}
		m["$or"] = or
	}
	return m
}

func mongoCond(c Cond) any {
	switch c.Op {
	case OpIsNull:
		return nil
	case OpContainsFold:
		return primitive.Regex{Pattern: regexp.QuoteMeta(c.Value), Options: "i"}
	default:
		return c.Value
	}
}

func clienteFromBSON(doc bson.M) dom.Cliente {
	var id string
	switch v := doc[dom.FieldID].(type) {
	case primitive.ObjectID:
		id = v.Hex()
	case string:
		id = v
	}
	plain := make(map[string]any, len(doc))
	for k, v := range doc {
		plain[k] = fromBSONValue(v)
	}
	return dom.FromDocument(id, plain)
}

func fromBSONValue(v any) any {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.ObjectID:
		return t.Hex()
	case bson.M:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = fromBSONValue(vv)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = fromBSONValue(vv)
		}
		return out
	}
	return v
}
