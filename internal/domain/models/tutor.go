// internal/domain/models/tutor.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tutor is a tutor listing created from the multipart tutor form.
//
// Every field is stored exactly as submitted; none is required. Image holds
// either an absolute URL (remote image store) or a path under the local
// upload route, or "" when no file was sent and images are optional.
type Tutor struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	Dept       string             `bson:"dept" json:"dept"`
	University string             `bson:"university" json:"university"`
	College    string             `bson:"college" json:"college"`
	Exp        string             `bson:"exp" json:"exp"`
	Phone      string             `bson:"phone" json:"phone"`
	Image      string             `bson:"image" json:"image"`
}
