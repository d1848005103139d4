// internal/app/store/profiles/profilestore.go
package profilestore

import (
	"context"
	"errors"

	"github.com/dalemusser/tutorhub/internal/app/system/oid"
	"github.com/dalemusser/tutorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store holds one family of profiles (confirmed tutors, users or students).
// Each family lives in its own collection; the store never crosses them.
type Store struct {
	c    *mongo.Collection
	kind models.ProfileKind
}

// New wraps the collection that holds profiles of the given kind.
func New(c *mongo.Collection, kind models.ProfileKind) *Store {
	return &Store{c: c, kind: kind}
}

// Kind reports which profile family this store holds.
func (s *Store) Kind() models.ProfileKind {
	return s.kind
}

// List returns every profile in server order.
func (s *Store) List(ctx context.Context) ([]models.Profile, error) {
	cur, err := s.c.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Profile{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns the profile with the given hex id, or nil when none matches.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	objID, err := oid.Parse(id)
	if err != nil {
		return nil, err
	}

	var p models.Profile
	if err := s.c.FindOne(ctx, bson.M{"_id": objID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts p under a fresh ObjectID.
func (s *Store) Create(ctx context.Context, p models.Profile) (models.InsertAck, error) {
	p.ID = primitive.NewObjectID()
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.InsertAck{}, err
	}
	return models.InsertAck{Acknowledged: true, InsertedID: p.ID}, nil
}

// Delete removes at most one profile. A missing profile yields DeletedCount 0.
func (s *Store) Delete(ctx context.Context, id string) (models.DeleteAck, error) {
	objID, err := oid.Parse(id)
	if err != nil {
		return models.DeleteAck{}, err
	}

	res, err := s.c.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return models.DeleteAck{}, err
	}
	return models.DeleteAck{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
