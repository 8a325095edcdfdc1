package hotelRepo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"stayhub/config"
	"stayhub/database"
	"stayhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoHotelRepo implements HotelRepository using MongoDB.
type MongoHotelRepo struct {
	coll *mongo.Collection
}

// NewMongoHotelRepo creates a new instance of HotelRepository using MongoDB.
func NewMongoHotelRepo() HotelRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("hotels")
	repo := &MongoHotelRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("failed to ensure hotel indexes: %v", err)
	}
	return repo
}

// NewMongoHotelRepoWithCollection builds a repository over an explicit
// collection. Used by tests and the refund worker.
func NewMongoHotelRepoWithCollection(coll *mongo.Collection) HotelRepository {
	return &MongoHotelRepo{coll: coll}
}

func (r *MongoHotelRepo) GetByID(ctx context.Context, id string) (*models.Hotel, error) {
	var hotel models.Hotel
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&hotel); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch hotel with id %s: %w", id, err)
	}
	return &hotel, nil
}

func (r *MongoHotelRepo) GetByIDPublic(ctx context.Context, id string) (*models.Hotel, error) {
	var hotel models.Hotel
	filter := bson.M{"id": id}
	opts := options.FindOne().SetProjection(bson.M{"bookings": 0})
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&hotel); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch hotel with id %s: %w", id, err)
	}
	return &hotel, nil
}

func (r *MongoHotelRepo) GetByOwner(ctx context.Context, ownerID string) ([]models.Hotel, error) {
	filter := bson.M{"ownerId": ownerID, "isActive": true}
	opts := options.Find().SetSort(bson.D{{Key: "lastUpdated", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hotels for owner %s: %w", ownerID, err)
	}
	defer cursor.Close(ctx)
	var hotels []models.Hotel
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, fmt.Errorf("failed to decode hotels: %w", err)
	}
	return hotels, nil
}

func (r *MongoHotelRepo) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Hotel, error) {
	var hotel models.Hotel
	filter := bson.M{"id": id, "ownerId": ownerID, "isActive": true}
	if err := r.coll.FindOne(ctx, filter).Decode(&hotel); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch hotel %s for owner %s: %w", id, ownerID, err)
	}
	return &hotel, nil
}

func (r *MongoHotelRepo) GetByRenter(ctx context.Context, renterID string) ([]models.Hotel, error) {
	filter := bson.M{"bookings": bson.M{"$elemMatch": bson.M{"renterId": renterID}}}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hotels for renter %s: %w", renterID, err)
	}
	defer cursor.Close(ctx)
	var hotels []models.Hotel
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, fmt.Errorf("failed to decode hotels: %w", err)
	}
	return hotels, nil
}

func (r *MongoHotelRepo) Create(ctx context.Context, hotel *models.Hotel) error {
	hotel.LastUpdated = time.Now()
	if _, err := r.coll.InsertOne(ctx, hotel); err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}
	return nil
}

func (r *MongoHotelRepo) Update(ctx context.Context, id, ownerID string, updateDoc bson.M) (*models.Hotel, error) {
	updateDoc["lastUpdated"] = time.Now()
	filter := bson.M{"id": id, "ownerId": ownerID, "isActive": true}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var hotel models.Hotel
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": updateDoc}, opts).Decode(&hotel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update hotel with id %s: %w", id, err)
	}
	return &hotel, nil
}

func (r *MongoHotelRepo) SoftDelete(ctx context.Context, id, ownerID string) error {
	filter := bson.M{"id": id, "ownerId": ownerID}
	update := bson.M{"$set": bson.M{"isActive": false, "lastUpdated": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to delete hotel with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoHotelRepo) AppendBooking(ctx context.Context, hotelID string, booking models.Booking) error {
	filter := bson.M{"id": hotelID}
	update := bson.M{"$push": bson.M{"bookings": booking}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to append booking to hotel %s: %w", hotelID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoHotelRepo) UpdateBookingFields(ctx context.Context, hotelID, bookingID string, fields bson.M) error {
	set := bson.M{}
	for k, v := range fields {
		set["bookings.$."+k] = v
	}
	filter := bson.M{"id": hotelID, "bookings.id": bookingID}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update booking %s on hotel %s: %w", bookingID, hotelID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
