// Package oid converts identifiers taken from URLs into Mongo ObjectIDs.
package oid

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrMalformed is returned when an identifier is not 24 hex characters.
var ErrMalformed = errors.New("malformed identifier")

// Parse converts a hex identifier into an ObjectID.
// The returned error wraps ErrMalformed so callers can test with errors.Is.
func Parse(id string) (primitive.ObjectID, error) {
	v, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrMalformed, id)
	}
	return v, nil
}
