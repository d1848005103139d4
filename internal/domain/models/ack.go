// internal/domain/models/ack.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// InsertAck reports the outcome of a single-document insert.
type InsertAck struct {
	Acknowledged bool               `json:"acknowledged"`
	InsertedID   primitive.ObjectID `json:"insertedId"`
}

// DeleteAck reports the outcome of a single-document delete.
// DeletedCount is 0 when nothing matched; that is not an error.
type DeleteAck struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
