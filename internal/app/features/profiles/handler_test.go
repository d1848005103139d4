package profiles_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	uierrors "github.com/dalemusser/tutorhub/internal/app/features/errors"
	"github.com/dalemusser/tutorhub/internal/app/features/profiles"
	"github.com/dalemusser/tutorhub/internal/app/system/oid"
	"github.com/dalemusser/tutorhub/internal/domain/models"
	"github.com/dalemusser/tutorhub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memStore struct {
	kind models.ProfileKind
	mu   sync.Mutex
	docs []models.Profile
}

func (m *memStore) Kind() models.ProfileKind { return m.kind }

func (m *memStore) List(ctx context.Context) ([]models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Profile{}, m.docs...), nil
}

func (m *memStore) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	objID, err := oid.Parse(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.docs {
		if p.ID == objID {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (m *memStore) Create(ctx context.Context, p models.Profile) (models.InsertAck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = primitive.NewObjectID()
	m.docs = append(m.docs, p)
	return models.InsertAck{Acknowledged: true, InsertedID: p.ID}, nil
}

func (m *memStore) Delete(ctx context.Context, id string) (models.DeleteAck, error) {
	objID, err := oid.Parse(id)
	if err != nil {
		return models.DeleteAck{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.docs {
		if p.ID == objID {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return models.DeleteAck{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return models.DeleteAck{Acknowledged: true}, nil
}

// newRouter mounts the three families the way bootstrap does.
func newRouter(t *testing.T) (http.Handler, map[string]*memStore) {
	t.Helper()
	errLog := uierrors.NewErrorLogger(zap.NewNop())
	stores := map[string]*memStore{
		"confirm":  {kind: models.KindConfirmedTutor},
		"users":    {kind: models.KindUser},
		"students": {kind: models.KindStudent},
	}

	r := chi.NewRouter()
	r.Mount("/confirm", profiles.Routes(profiles.NewHandler(stores["confirm"], errLog, zap.NewNop()),
		profiles.RouteOptions{Get: true, Delete: true}))
	r.Mount("/users", profiles.Routes(profiles.NewHandler(stores["users"], errLog, zap.NewNop()),
		profiles.RouteOptions{Get: true, Delete: true}))
	r.Mount("/students", profiles.Routes(profiles.NewHandler(stores["students"], errLog, zap.NewNop()),
		profiles.RouteOptions{}))
	return r, stores
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func insertedID(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var ack struct {
		Acknowledged bool   `json:"acknowledged"`
		InsertedID   string `json:"insertedId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	require.True(t, ack.Acknowledged)
	require.Len(t, ack.InsertedID, 24)
	return ack.InsertedID
}

func TestCreateListGet(t *testing.T) {
	router, _ := newRouter(t)

	rec := do(router, "POST", "/users", `{"name":"Dana","email":"dana@example.com","plan":"pro"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	id := insertedID(t, rec)

	rec = do(router, "GET", "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0]["_id"])
	assert.Equal(t, "Dana", list[0]["name"])
	assert.Equal(t, "pro", list[0]["plan"])

	rec = do(router, "GET", "/users/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "dana@example.com", got["email"])
	assert.Equal(t, "pro", got["plan"])
}

func TestFamiliesAreSeparate(t *testing.T) {
	router, stores := newRouter(t)

	require.Equal(t, http.StatusOK, do(router, "POST", "/students", `{"name":"Sam","class":"9"}`).Code)
	require.Equal(t, http.StatusOK, do(router, "POST", "/confirm", `{"tutorId":"t1","studentEmail":"sam@example.com"}`).Code)

	assert.Len(t, stores["students"].docs, 1)
	assert.Len(t, stores["confirm"].docs, 1)
	assert.Empty(t, stores["users"].docs)
}

func TestDeleteMissingUser(t *testing.T) {
	router, _ := newRouter(t)

	rec := do(router, "DELETE", "/users/000000000000000000000000", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"acknowledged":true,"deletedCount":0}`, rec.Body.String())
}

func TestDeleteThenGet(t *testing.T) {
	router, _ := newRouter(t)

	id := insertedID(t, do(router, "POST", "/confirm", `{"tutorName":"Alice","status":"confirmed"}`))

	rec := do(router, "DELETE", "/confirm/"+id, "")
	assert.JSONEq(t, `{"acknowledged":true,"deletedCount":1}`, rec.Body.String())

	rec = do(router, "GET", "/confirm/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestMalformedID(t *testing.T) {
	router, _ := newRouter(t)

	for _, target := range []string{"/users/xyz", "/confirm/123"} {
		for _, method := range []string{"GET", "DELETE"} {
			rec := do(router, method, target, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code, "%s %s", method, target)
		}
	}
}

func TestStudentsHaveNoSingleDocumentRoutes(t *testing.T) {
	router, _ := newRouter(t)

	id := primitive.NewObjectID().Hex()
	assert.Equal(t, http.StatusNotFound, do(router, "GET", "/students/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, do(router, "DELETE", "/students/"+id, "").Code)
}

func TestCreate_InvalidBodies(t *testing.T) {
	router, stores := newRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `name=Dana`},
		{"array", `[{"name":"Dana"}]`},
		{"bad email", `{"email":"nope"}`},
		{"operator key", `{"$set":"x"}`},
		{"nested", `{"address":{"city":"Dhaka"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, "POST", "/users", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
	assert.Empty(t, stores["users"].docs)
}

func TestCreate_StoresValuesAsSubmitted(t *testing.T) {
	router, stores := newRouter(t)

	rec := do(router, "POST", "/users", `{"name":"  Alice <b>Smith</b> ","salary":5000,"days":"Sun,Tue"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	id := insertedID(t, rec)

	require.Len(t, stores["users"].docs, 1)
	doc := stores["users"].docs[0]
	assert.Equal(t, "  Alice <b>Smith</b> ", doc.Name)
	assert.Equal(t, float64(5000), doc.Extra["salary"])

	rec = do(router, "GET", "/users/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "  Alice <b>Smith</b> ", got["name"])
	assert.Equal(t, float64(5000), got["salary"])
	assert.Equal(t, "Sun,Tue", got["days"])
}

func TestCreate_ClientIDIgnored(t *testing.T) {
	router, stores := newRouter(t)

	rec := do(router, "POST", "/users", `{"_id":"507f1f77bcf86cd799439011","name":"Dana"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	id := insertedID(t, rec)
	assert.NotEqual(t, "507f1f77bcf86cd799439011", id)
	assert.Equal(t, "Dana", stores["users"].docs[0].Name)
}

func TestList_EmptyIsArray(t *testing.T) {
	router, _ := newRouter(t)

	rec := do(router, "GET", "/students", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandlersWithoutRouter(t *testing.T) {
	store := &memStore{kind: models.KindUser}
	h := profiles.NewHandler(store, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())

	ack, err := store.Create(context.Background(), models.Profile{Name: "Dana"})
	require.NoError(t, err)
	id := ack.InsertedID.Hex()

	rec := httptest.NewRecorder()
	h.ServeProfile(rec, testutil.WithChiURLParam(httptest.NewRequest("GET", "/"+id, nil), "id", id))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Dana"`)

	rec = httptest.NewRecorder()
	h.HandleDelete(rec, testutil.WithChiURLParam(httptest.NewRequest("DELETE", "/"+id, nil), "id", id))
	assert.JSONEq(t, `{"acknowledged":true,"deletedCount":1}`, rec.Body.String())
}
