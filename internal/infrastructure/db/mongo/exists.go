package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ExistsQuery builds the typed lookup registered with the uniqueness checker
// for one collection field. Each uniqueness-constrained column gets its own
// closure at wiring time; nothing is resolved dynamically per request.
func ExistsQuery(db *mongo.Database, collection, field string) func(ctx context.Context, value string) (bool, error) {
	coll := db.Collection(collection)
	return func(ctx context.Context, value string) (bool, error) {
		n, err := coll.CountDocuments(ctx, bson.M{field: value}, options.Count().SetLimit(1))
		if err != nil {
			return false, fmt.Errorf("count %s.%s: %w", collection, field, err)
		}
		return n > 0, nil
	}
}
