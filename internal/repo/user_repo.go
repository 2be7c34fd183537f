package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/servicehub/account-service/internal/domain"
)

func (s *Store) users() *mongo.Collection { return s.DB.Collection("users") }

// FindByEmail returns (nil, nil) when no account matches.
func (s *Store) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.users.find_by_email")
	defer sp.Finish()

	var a domain.Account
	err := s.users().FindOne(ctx, bson.M{"email": email}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		sp.SetTag("error", err)
		return nil, err
	}
	return &a, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.users.find_by_id")
	defer sp.Finish()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var a domain.Account
	err = s.users().FindOne(ctx, bson.M{"_id": oid}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		sp.SetTag("error", err)
		return nil, err
	}
	return &a, nil
}

// Insert creates the account and fills in its id and timestamps. Returns
// domain.ErrDuplicateEmail when the unique index rejects the write.
func (s *Store) Insert(ctx context.Context, a *domain.Account) error {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.users.insert")
	defer sp.Finish()

	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	res, err := s.users().InsertOne(ctx, a)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		sp.SetTag("error", err)
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return nil
}

// Update replaces the account document by id, refreshing updated_at.
func (s *Store) Update(ctx context.Context, a *domain.Account) error {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.users.update")
	defer sp.Finish()

	a.UpdatedAt = time.Now().UTC()
	res, err := s.users().ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		sp.SetTag("error", err)
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) FindAll(ctx context.Context) ([]domain.Account, error) {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.users.find_all")
	defer sp.Finish()

	cur, err := s.users().Find(ctx, bson.M{})
	if err != nil {
		sp.SetTag("error", err)
		return nil, err
	}
	defer cur.Close(ctx)
	var out []domain.Account
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
