// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
// One client is shared by every collection handle.
type DBDeps struct {
	MongoClient *mongo.Client

	Tutors   *mongo.Collection
	Confirm  *mongo.Collection
	Users    *mongo.Collection
	Students *mongo.Collection
}

// collectionsFrom resolves every configured collection on client.
func collectionsFrom(client *mongo.Client, appCfg AppConfig) DBDeps {
	coll := func(ref CollectionRef) *mongo.Collection {
		return client.Database(ref.Database).Collection(ref.Collection)
	}
	return DBDeps{
		MongoClient: client,
		Tutors:      coll(appCfg.Tutors),
		Confirm:     coll(appCfg.Confirm),
		Users:       coll(appCfg.Users),
		Students:    coll(appCfg.Students),
	}
}
