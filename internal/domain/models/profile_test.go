package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProfileUnmarshal_SplitsExtra(t *testing.T) {
	var p Profile
	err := json.Unmarshal([]byte(`{"_id":"507f1f77bcf86cd799439011","name":"Dana","plan":"pro","age":31}`), &p)
	require.NoError(t, err)

	assert.True(t, p.ID.IsZero(), "client _id must be dropped")
	assert.Equal(t, "Dana", p.Name)
	assert.Equal(t, map[string]any{"plan": "pro", "age": float64(31)}, p.Extra)
}

func TestProfileUnmarshal_NoExtra(t *testing.T) {
	var p Profile
	require.NoError(t, json.Unmarshal([]byte(`{"email":"a@b.co"}`), &p))
	assert.Nil(t, p.Extra)
	assert.Equal(t, "a@b.co", p.Email)
}

func TestProfileUnmarshal_KeepsTextVerbatim(t *testing.T) {
	var p Profile
	require.NoError(t, json.Unmarshal([]byte(`{"name":"  Alice <b>Smith</b> "}`), &p))
	assert.Equal(t, "  Alice <b>Smith</b> ", p.Name)
}

func TestProfileUnmarshal_NonStringNamedValuesGoToExtra(t *testing.T) {
	var p Profile
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Dana","salary":5000,"days":null,"status":true}`), &p))

	assert.Equal(t, "Dana", p.Name)
	assert.Empty(t, p.Salary)
	assert.Equal(t, map[string]any{"salary": float64(5000), "days": nil, "status": true}, p.Extra)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, float64(5000), out["salary"])
	assert.Equal(t, true, out["status"])
	assert.Contains(t, out, "days")
}

func TestProfileUnmarshal_Rejects(t *testing.T) {
	for _, body := range []string{`[]`, `"x"`, `{`} {
		var p Profile
		assert.Error(t, json.Unmarshal([]byte(body), &p), body)
	}
}

func TestProfileMarshal_FlattensExtra(t *testing.T) {
	id := primitive.NewObjectID()
	p := Profile{
		ID:    id,
		Name:  "Dana",
		Extra: map[string]any{"plan": "pro", "name": "shadowed"},
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, id.Hex(), out["_id"])
	assert.Equal(t, "Dana", out["name"])
	assert.Equal(t, "pro", out["plan"])
	assert.NotContains(t, out, "email")
}

func TestProfileBSON_InlinesExtra(t *testing.T) {
	p := Profile{Name: "Sam", Extra: map[string]any{"grade": "9"}}

	raw, err := bson.Marshal(p)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, "Sam", doc["name"])
	assert.Equal(t, "9", doc["grade"])
	assert.NotContains(t, doc, "_id")
	assert.NotContains(t, doc, "Extra")

	var back Profile
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.Equal(t, "Sam", back.Name)
	assert.Equal(t, "9", back.Extra["grade"])
}

func TestProfileBSON_DecodesNonStringNamedValues(t *testing.T) {
	id := primitive.NewObjectID()
	raw, err := bson.Marshal(bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: "Dana"},
		{Key: "salary", Value: int32(5000)},
		{Key: "address", Value: bson.D{{Key: "city", Value: "Dhaka"}}},
	})
	require.NoError(t, err)

	var p Profile
	require.NoError(t, bson.Unmarshal(raw, &p))
	assert.Equal(t, id, p.ID)
	assert.Equal(t, "Dana", p.Name)
	assert.Empty(t, p.Salary)
	assert.Equal(t, int32(5000), p.Extra["salary"])
	assert.Equal(t, bson.M{"city": "Dhaka"}, p.Extra["address"])

	// Writing it back keeps the numeric value under the same key.
	again, err := bson.Marshal(p)
	require.NoError(t, err)
	var doc bson.M
	require.NoError(t, bson.Unmarshal(again, &doc))
	assert.Equal(t, int32(5000), doc["salary"])
	assert.Equal(t, "Dana", doc["name"])
}

func TestProfileBSON_DecodesIntoSlice(t *testing.T) {
	a, err := bson.Marshal(bson.M{"name": "A", "salary": int64(1)})
	require.NoError(t, err)
	b, err := bson.Marshal(bson.M{"name": "B", "salary": "2k"})
	require.NoError(t, err)

	var holder struct {
		Items []Profile `bson:"items"`
	}
	wrapped, err := bson.Marshal(bson.M{"items": bson.A{bson.Raw(a), bson.Raw(b)}})
	require.NoError(t, err)
	require.NoError(t, bson.Unmarshal(wrapped, &holder))

	require.Len(t, holder.Items, 2)
	assert.Equal(t, int64(1), holder.Items[0].Extra["salary"])
	assert.Equal(t, "2k", holder.Items[1].Salary)
}

func TestIsProfileKey(t *testing.T) {
	assert.True(t, IsProfileKey("tutorEmail"))
	assert.True(t, IsProfileKey("_id"))
	assert.False(t, IsProfileKey("plan"))
	assert.False(t, IsProfileKey("Extra"))
}
