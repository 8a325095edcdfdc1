package hotelRepo

import (
	"context"
	"fmt"

	"stayhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SearchPageSize is the fixed page size for hotel search results.
const SearchPageSize = 5

// buildSearchFilter translates criteria into a Mongo filter document.
// Only active hotels are searchable.
func buildSearchFilter(criteria SearchCriteria) bson.M {
	filter := bson.M{"isActive": true}

	if criteria.Destination != "" {
		regex := bson.M{"$regex": criteria.Destination, "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"city": regex},
			bson.M{"country": regex},
			bson.M{"name": regex},
		}
	}
	if criteria.AdultCount > 0 {
		filter["adultCount"] = bson.M{"$gte": criteria.AdultCount}
	}
	if criteria.ChildCount > 0 {
		filter["childCount"] = bson.M{"$gte": criteria.ChildCount}
	}
	if len(criteria.Facilities) > 0 {
		filter["facilities"] = bson.M{"$all": criteria.Facilities}
	}
	if len(criteria.Types) > 0 {
		filter["type"] = bson.M{"$in": criteria.Types}
	}
	if len(criteria.Stars) > 0 {
		filter["starRating"] = bson.M{"$in": criteria.Stars}
	}
	if criteria.MaxPrice > 0 {
		filter["pricePerNight"] = bson.M{"$lte": criteria.MaxPrice}
	}
	return filter
}

func sortFor(option string) bson.D {
	switch option {
	case "starRating":
		return bson.D{{Key: "starRating", Value: -1}, {Key: "lastUpdated", Value: -1}}
	case "pricePerNightAsc":
		return bson.D{{Key: "pricePerNight", Value: 1}, {Key: "lastUpdated", Value: -1}}
	case "pricePerNightDesc":
		return bson.D{{Key: "pricePerNight", Value: -1}, {Key: "lastUpdated", Value: -1}}
	default:
		// Featured hotels first, then by freshness.
		return bson.D{{Key: "featured", Value: -1}, {Key: "lastUpdated", Value: -1}}
	}
}

// Search runs a single $facet aggregation that returns the requested page
// and the total match count in one round trip. Bookings are projected out;
// they are never exposed on the public search surface.
func (r *MongoHotelRepo) Search(ctx context.Context, criteria SearchCriteria) (*SearchResult, error) {
	page := criteria.Page
	if page < 1 {
		page = 1
	}
	skip := (page - 1) * SearchPageSize

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: buildSearchFilter(criteria)}},
		bson.D{{Key: "$facet", Value: bson.M{
			"hotels": bson.A{
				bson.M{"$sort": sortFor(criteria.SortOption)},
				bson.M{"$skip": skip},
				bson.M{"$limit": SearchPageSize},
				bson.M{"$project": bson.M{"bookings": 0}},
			},
			"totalCount": bson.A{
				bson.M{"$count": "count"},
			},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("hotel search aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Hotels     []models.Hotel `bson:"hotels"`
		TotalCount []struct {
			Count int64 `bson:"count"`
		} `bson:"totalCount"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}

	result := &SearchResult{Page: page, PageSize: SearchPageSize}
	if len(results) > 0 {
		result.Hotels = results[0].Hotels
		if len(results[0].TotalCount) > 0 {
			result.Total = results[0].TotalCount[0].Count
		}
	}
	return result, nil
}

// Latest returns the freshest active hotels for the homepage, featured first.
func (r *MongoHotelRepo) Latest(ctx context.Context, limit int) ([]models.Hotel, error) {
	filter := bson.M{"isActive": true}
	opts := options.Find().
		SetSort(bson.D{{Key: "featured", Value: -1}, {Key: "lastUpdated", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"bookings": 0})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest hotels: %w", err)
	}
	defer cursor.Close(ctx)
	var hotels []models.Hotel
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, fmt.Errorf("failed to decode latest hotels: %w", err)
	}
	return hotels, nil
}
