package tutorstore_test

import (
	"errors"
	"testing"

	tutorstore "github.com/dalemusser/tutorhub/internal/app/store/tutors"
	"github.com/dalemusser/tutorhub/internal/app/system/oid"
	"github.com/dalemusser/tutorhub/internal/domain/models"
	"github.com/dalemusser/tutorhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newStore(t *testing.T) (*tutorstore.Store, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return tutorstore.New(db.Collection("Tutors")), testutil.NewFixtures(t, db)
}

func TestStore_CreateThenGet(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	in := models.Tutor{
		Name:       "Alice",
		Dept:       "CS",
		University: "State University",
		College:    "Engineering",
		Exp:        "5",
		Phone:      "555-0101",
		Image:      "https://res.example.com/tutors/alice.png",
	}

	ack, err := store.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !ack.Acknowledged {
		t.Error("expected acknowledged insert")
	}
	if ack.InsertedID == primitive.NilObjectID {
		t.Fatal("expected InsertedID to be assigned")
	}

	got, err := store.GetByID(ctx, ack.InsertedID.Hex())
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected tutor, got nil")
	}
	in.ID = ack.InsertedID
	if *got != in {
		t.Errorf("GetByID: got %+v, want %+v", *got, in)
	}
}

func TestStore_CreateAcceptsEmptyFields(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ack, err := store.Create(ctx, models.Tutor{})
	if err != nil {
		t.Fatalf("Create with no fields failed: %v", err)
	}
	got, err := store.GetByID(ctx, ack.InsertedID.Hex())
	if err != nil || got == nil {
		t.Fatalf("GetByID: got %v, %v", got, err)
	}
	if got.Name != "" || got.Image != "" {
		t.Errorf("expected empty fields, got %+v", got)
	}
}

func TestStore_ListContainsCreated(t *testing.T) {
	store, fx := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fx.CreateTutor(ctx, "Tutors", "alice")
	b := fx.CreateTutor(ctx, "Tutors", "bob")

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List: got %d tutors, want 2", len(list))
	}
	seen := map[primitive.ObjectID]models.Tutor{}
	for _, tu := range list {
		seen[tu.ID] = tu
	}
	if seen[a.ID] != a || seen[b.ID] != b {
		t.Errorf("List missing fixtures: %+v", list)
	}
}

func TestStore_ListEmptyIsNotNil(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if list == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	got, err := store.GetByID(ctx, primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing tutor, got %+v", got)
	}
}

func TestStore_MalformedID(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, "not-an-id"); !errors.Is(err, oid.ErrMalformed) {
		t.Errorf("GetByID: expected ErrMalformed, got %v", err)
	}
	if _, err := store.Delete(ctx, "12345"); !errors.Is(err, oid.ErrMalformed) {
		t.Errorf("Delete: expected ErrMalformed, got %v", err)
	}
}

func TestStore_DeleteThenGet(t *testing.T) {
	store, fx := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tu := fx.CreateTutor(ctx, "Tutors", "carol")

	ack, err := store.Delete(ctx, tu.ID.Hex())
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if ack.DeletedCount != 1 {
		t.Errorf("DeletedCount: got %d, want 1", ack.DeletedCount)
	}

	got, err := store.GetByID(ctx, tu.ID.Hex())
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Error("expected tutor to be gone after delete")
	}

	// Second delete matches nothing.
	ack, err = store.Delete(ctx, tu.ID.Hex())
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if ack.DeletedCount != 0 {
		t.Errorf("second DeletedCount: got %d, want 0", ack.DeletedCount)
	}
}
