package testutil

import (
	"context"
	"net/http"
	"testing"

	"github.com/dalemusser/tutorhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateTutor inserts a tutor with the given name into coll.
func (f *Fixtures) CreateTutor(ctx context.Context, coll, name string) models.Tutor {
	f.t.Helper()

	tutor := models.Tutor{
		ID:         primitive.NewObjectID(),
		Name:       name,
		Dept:       "CS",
		University: "Test University",
		College:    "Test College",
		Exp:        "3",
		Phone:      "555-0100",
		Image:      "https://images.example.com/tutors/" + name + ".png",
	}
	if _, err := f.db.Collection(coll).InsertOne(ctx, tutor); err != nil {
		f.t.Fatalf("failed to create test tutor: %v", err)
	}
	return tutor
}

// CreateProfile inserts a profile with the given name and email into coll.
func (f *Fixtures) CreateProfile(ctx context.Context, coll, name, email string) models.Profile {
	f.t.Helper()

	p := models.Profile{
		ID:    primitive.NewObjectID(),
		Name:  name,
		Email: email,
	}
	if _, err := f.db.Collection(coll).InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test profile: %v", err)
	}
	return p
}
