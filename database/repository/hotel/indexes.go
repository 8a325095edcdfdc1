package hotelRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ensureIndexes creates the indexes the search and booking paths rely on.
func (r *MongoHotelRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}},
		{Keys: bson.D{
			{Key: "city", Value: "text"},
			{Key: "country", Value: "text"},
			{Key: "name", Value: "text"},
		}},
		{Keys: bson.D{{Key: "pricePerNight", Value: 1}}},
		{Keys: bson.D{{Key: "starRating", Value: -1}}},
		{Keys: bson.D{{Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "lastUpdated", Value: -1}}},
		{Keys: bson.D{{Key: "featured", Value: -1}, {Key: "lastUpdated", Value: -1}}},
		{Keys: bson.D{{Key: "isActive", Value: 1}}},
		{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "isActive", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create hotel indexes: %w", err)
	}
	return nil
}
