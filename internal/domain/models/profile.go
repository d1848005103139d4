// internal/domain/models/profile.go
package models

import (
	"bytes"
	"encoding/json"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileKind names the collection family a Profile belongs to.
type ProfileKind string

const (
	KindConfirmedTutor ProfileKind = "confirmed_tutor"
	KindUser           ProfileKind = "user"
	KindStudent        ProfileKind = "student"
)

// Profile is the record stored for confirmed tutors, users and students.
//
// The common fields are enumerated and all optional. A named key only
// fills its field when the value is a string; any other value, and every
// key Profile does not name, lands in Extra unchanged. Extra is written
// at the top level of the document so the persisted shape is the one the
// client posted. Bounds on Extra are enforced by inputval.ValidateProfile.
type Profile struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id"`

	Name       string `bson:"name,omitempty" json:"name,omitempty" validate:"max=256"`
	Email      string `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email,max=320"`
	Phone      string `bson:"phone,omitempty" json:"phone,omitempty" validate:"max=64"`
	Photo      string `bson:"photo,omitempty" json:"photo,omitempty" validate:"max=2048"`
	Role       string `bson:"role,omitempty" json:"role,omitempty" validate:"max=64"`
	University string `bson:"university,omitempty" json:"university,omitempty" validate:"max=256"`
	College    string `bson:"college,omitempty" json:"college,omitempty" validate:"max=256"`
	Dept       string `bson:"dept,omitempty" json:"dept,omitempty" validate:"max=256"`
	Subject    string `bson:"subject,omitempty" json:"subject,omitempty" validate:"max=256"`
	Class      string `bson:"class,omitempty" json:"class,omitempty" validate:"max=64"`
	Location   string `bson:"location,omitempty" json:"location,omitempty" validate:"max=512"`
	Salary     string `bson:"salary,omitempty" json:"salary,omitempty" validate:"max=64"`
	Days       string `bson:"days,omitempty" json:"days,omitempty" validate:"max=64"`
	Status     string `bson:"status,omitempty" json:"status,omitempty" validate:"max=64"`

	TutorID      string `bson:"tutorId,omitempty" json:"tutorId,omitempty" validate:"max=64"`
	TutorName    string `bson:"tutorName,omitempty" json:"tutorName,omitempty" validate:"max=256"`
	TutorEmail   string `bson:"tutorEmail,omitempty" json:"tutorEmail,omitempty" validate:"omitempty,email,max=320"`
	StudentEmail string `bson:"studentEmail,omitempty" json:"studentEmail,omitempty" validate:"omitempty,email,max=320"`

	Extra map[string]any `bson:",inline" json:"-"`
}

// profileFields lists the named string fields in document order.
var profileFields = []struct {
	key string
	ptr func(*Profile) *string
}{
	{"name", func(p *Profile) *string { return &p.Name }},
	{"email", func(p *Profile) *string { return &p.Email }},
	{"phone", func(p *Profile) *string { return &p.Phone }},
	{"photo", func(p *Profile) *string { return &p.Photo }},
	{"role", func(p *Profile) *string { return &p.Role }},
	{"university", func(p *Profile) *string { return &p.University }},
	{"college", func(p *Profile) *string { return &p.College }},
	{"dept", func(p *Profile) *string { return &p.Dept }},
	{"subject", func(p *Profile) *string { return &p.Subject }},
	{"class", func(p *Profile) *string { return &p.Class }},
	{"location", func(p *Profile) *string { return &p.Location }},
	{"salary", func(p *Profile) *string { return &p.Salary }},
	{"days", func(p *Profile) *string { return &p.Days }},
	{"status", func(p *Profile) *string { return &p.Status }},
	{"tutorId", func(p *Profile) *string { return &p.TutorID }},
	{"tutorName", func(p *Profile) *string { return &p.TutorName }},
	{"tutorEmail", func(p *Profile) *string { return &p.TutorEmail }},
	{"studentEmail", func(p *Profile) *string { return &p.StudentEmail }},
}

var profileFieldIndex = func() map[string]int {
	idx := make(map[string]int, len(profileFields))
	for i, f := range profileFields {
		idx[f.key] = i
	}
	return idx
}()

// field returns the named string field for key, or nil.
func (p *Profile) field(key string) *string {
	i, ok := profileFieldIndex[key]
	if !ok {
		return nil
	}
	return profileFields[i].ptr(p)
}

// IsProfileKey reports whether key is "_id" or one of Profile's named fields.
func IsProfileKey(key string) bool {
	if key == "_id" {
		return true
	}
	_, ok := profileFieldIndex[key]
	return ok
}

func (p *Profile) setExtra(key string, v any) {
	if p.Extra == nil {
		p.Extra = make(map[string]any)
	}
	p.Extra[key] = v
}

// UnmarshalJSON fills the named fields from string values and routes every
// other key into Extra. A client-supplied "_id" is dropped; the store
// assigns IDs.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out Profile
	for k, v := range raw {
		if k == "_id" {
			continue
		}
		if f := out.field(k); f != nil && !bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			var s string
			if err := json.Unmarshal(v, &s); err == nil {
				*f = s
				continue
			}
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return err
		}
		out.setExtra(k, val)
	}
	*p = out
	return nil
}

// MarshalJSON writes the non-empty named fields and flattens Extra
// alongside them.
func (p Profile) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.flatten())
}

func (p Profile) flatten() map[string]any {
	out := make(map[string]any, len(profileFields)+len(p.Extra)+1)
	out["_id"] = p.ID
	for _, f := range profileFields {
		if s := *f.ptr(&p); s != "" {
			out[f.key] = s
		}
	}
	for k, v := range p.Extra {
		if _, taken := out[k]; !taken {
			out[k] = v
		}
	}
	return out
}

// MarshalBSON writes _id (when set), then the non-empty named fields, then
// Extra in key order.
func (p Profile) MarshalBSON() ([]byte, error) {
	doc := make(bson.D, 0, len(profileFields)+len(p.Extra)+1)
	taken := make(map[string]struct{}, len(profileFields)+1)

	if !p.ID.IsZero() {
		doc = append(doc, bson.E{Key: "_id", Value: p.ID})
		taken["_id"] = struct{}{}
	}
	for _, f := range profileFields {
		if s := *f.ptr(&p); s != "" {
			doc = append(doc, bson.E{Key: f.key, Value: s})
			taken[f.key] = struct{}{}
		}
	}

	keys := make([]string, 0, len(p.Extra))
	for k := range p.Extra {
		if _, ok := taken[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		doc = append(doc, bson.E{Key: k, Value: p.Extra[k]})
	}
	return bson.Marshal(doc)
}

// UnmarshalBSON accepts any stored document. Named keys holding a string
// fill their field; everything else, whatever its type, goes to Extra.
func (p *Profile) UnmarshalBSON(data []byte) error {
	elems, err := bson.Raw(data).Elements()
	if err != nil {
		return err
	}

	var out Profile
	for _, e := range elems {
		key, val := e.Key(), e.Value()
		if key == "_id" {
			if id, ok := val.ObjectIDOK(); ok {
				out.ID = id
				continue
			}
		}
		if f := out.field(key); f != nil {
			if s, ok := val.StringValueOK(); ok {
				*f = s
				continue
			}
		}
		v, err := decodeValue(val)
		if err != nil {
			return err
		}
		out.setExtra(key, v)
	}
	*p = out
	return nil
}

// decodeValue turns a stored value into the plain Go form JSON encodes
// naturally: subdocuments become bson.M rather than ordered pairs.
func decodeValue(val bson.RawValue) (any, error) {
	if val.Type == bsontype.EmbeddedDocument {
		var m bson.M
		err := val.Unmarshal(&m)
		return m, err
	}
	var v any
	err := val.Unmarshal(&v)
	return v, err
}
