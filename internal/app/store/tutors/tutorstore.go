// internal/app/store/tutors/tutorstore.go
package tutorstore

import (
	"context"
	"errors"

	"github.com/dalemusser/tutorhub/internal/app/system/oid"
	"github.com/dalemusser/tutorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store reads and writes tutor listings in a single collection.
type Store struct {
	c *mongo.Collection
}

// New wraps the tutors collection.
func New(c *mongo.Collection) *Store {
	return &Store{c: c}
}

// List returns every tutor in the order the server yields them.
func (s *Store) List(ctx context.Context) ([]models.Tutor, error) {
	cur, err := s.c.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Tutor{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns the tutor with the given hex id, or nil when none matches.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Tutor, error) {
	objID, err := oid.Parse(id)
	if err != nil {
		return nil, err
	}

	var t models.Tutor
	if err := s.c.FindOne(ctx, bson.M{"_id": objID}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts t under a fresh ObjectID.
func (s *Store) Create(ctx context.Context, t models.Tutor) (models.InsertAck, error) {
	t.ID = primitive.NewObjectID()
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.InsertAck{}, err
	}
	return models.InsertAck{Acknowledged: true, InsertedID: t.ID}, nil
}

// Delete removes at most one tutor. A missing tutor yields DeletedCount 0.
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
