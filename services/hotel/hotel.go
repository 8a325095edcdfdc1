package hotel

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"stayhub/cache"
	hotelRepo "stayhub/database/repository/hotel"
	"stayhub/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Cache TTLs mirror the validity windows of each read path: searches go
// stale fastest, single entities and the homepage can live longer.
const (
	searchTTL = 5 * time.Minute
	latestTTL = 10 * time.Minute
	entityTTL = 10 * time.Minute
)

// DefaultHotelService implements HotelService over the Mongo repository with
// a read-through cache in front.
type DefaultHotelService struct {
	Repo   hotelRepo.HotelRepository
	Cache  cache.Cache
	Logger *zap.Logger
}

func searchKey(criteria hotelRepo.SearchCriteria) string {
	return cache.Key(cache.SearchPrefix, map[string]interface{}{
		"destination": criteria.Destination,
		"adultCount":  criteria.AdultCount,
		"childCount":  criteria.ChildCount,
		"facilities":  strings.Join(criteria.Facilities, ","),
		"types":       strings.Join(criteria.Types, ","),
		"stars":       criteria.Stars,
		"maxPrice":    criteria.MaxPrice,
		"sortOption":  criteria.SortOption,
		"page":        criteria.Page,
	})
}

func (s *DefaultHotelService) Search(ctx context.Context, criteria hotelRepo.SearchCriteria) (*hotelRepo.SearchResult, error) {
	key := searchKey(criteria)
	if raw, ok := s.Cache.Get(ctx, key); ok {
		var cached hotelRepo.SearchResult
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}

	result, err := s.Repo.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(result); err == nil {
		s.Cache.Set(ctx, key, raw, searchTTL)
	}
	return result, nil
}

func (s *DefaultHotelService) Latest(ctx context.Context, limit int) ([]models.Hotel, error) {
	key := fmt.Sprintf("%s:%d", cache.LatestPrefix, limit)
	if raw, ok := s.Cache.Get(ctx, key); ok {
		var cached []models.Hotel
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	hotels, err := s.Repo.Latest(ctx, limit)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(hotels); err == nil {
		s.Cache.Set(ctx, key, raw, latestTTL)
	}
	return hotels, nil
}

func (s *DefaultHotelService) GetByID(ctx context.Context, id string, includeBookings bool) (*models.Hotel, error) {
	key := cache.HotelKey(id, includeBookings)
	if raw, ok := s.Cache.Get(ctx, key); ok {
		var cached models.Hotel
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}

	var (
		hotel *models.Hotel
		err   error
	)
	if includeBookings {
		hotel, err = s.Repo.GetByID(ctx, id)
	} else {
		hotel, err = s.Repo.GetByIDPublic(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(hotel); err == nil {
		s.Cache.Set(ctx, key, raw, entityTTL)
	}
	return hotel, nil
}

func (s *DefaultHotelService) GetByOwner(ctx context.Context, ownerID string) ([]models.Hotel, error) {
	return s.Repo.GetByOwner(ctx, ownerID)
}

func (s *DefaultHotelService) GetForEdit(ctx context.Context, id, ownerID string) (*models.Hotel, error) {
	return s.Repo.GetByIDAndOwner(ctx, id, ownerID)
}

func (s *DefaultHotelService) Create(ctx context.Context, hotel *models.Hotel) error {
	if hotel.ID == "" {
		hotel.ID = uuid.New().String()
	}
	hotel.IsActive = true
	if hotel.FeaturedTier == "" {
		hotel.FeaturedTier = models.FeaturedTierNone
	}

	if err := s.Repo.Create(ctx, hotel); err != nil {
		return err
	}

	// A new hotel changes every listing surface.
	cache.InvalidateHotel(ctx, s.Cache, "")
	return nil
}

func (s *DefaultHotelService) Update(ctx context.Context, id, ownerID string, input HotelInput) (*models.Hotel, error) {
	updateDoc := bson.M{
		"name":          input.Name,
		"city":          input.City,
		"country":       input.Country,
		"description":   input.Description,
		"type":          input.Type,
		"adultCount":    input.AdultCount,
		"childCount":    input.ChildCount,
		"facilities":    input.Facilities,
		"pricePerNight": input.PricePerNight,
		"starRating":    input.StarRating,
	}
	if input.ImageURLs != nil {
		updateDoc["imageUrls"] = input.ImageURLs
	}

	hotel, err := s.Repo.Update(ctx, id, ownerID, updateDoc)
	if err != nil {
		return nil, err
	}

	cache.InvalidateHotel(ctx, s.Cache, id)
	return hotel, nil
}

func (s *DefaultHotelService) Delete(ctx context.Context, id, ownerID string) error {
	if err := s.Repo.SoftDelete(ctx, id, ownerID); err != nil {
		return err
	}
	cache.InvalidateHotel(ctx, s.Cache, id)
	return nil
}

// RenterBookings collects the renter's active bookings across hotels.
// Hotels left with no matching bookings are dropped from the result.
func (s *DefaultHotelService) RenterBookings(ctx context.Context, renterID string) ([]models.Hotel, error) {
	hotels, err := s.Repo.GetByRenter(ctx, renterID)
	if err != nil {
		return nil, err
	}

	results := make([]models.Hotel, 0, len(hotels))
	for _, h := range hotels {
		var mine []models.Booking
		for _, b := range h.Bookings {
			if b.RenterID == renterID && b.Status != models.BookingStatusCancelled {
				mine = append(mine, b)
			}
		}
		if len(mine) == 0 {
			continue
		}
		h.Bookings = mine
		results = append(results, h)
	}
	return results, nil
}
