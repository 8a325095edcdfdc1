package hotel

import (
	"context"

	hotelRepo "stayhub/database/repository/hotel"
	"stayhub/models"
)

// HotelService is the read/search and listing-management surface. Reads go
// through the cache layer; every write invalidates the affected namespaces.
type HotelService interface {
	// Search returns one page of hotels matching the criteria plus a total.
	Search(ctx context.Context, criteria hotelRepo.SearchCriteria) (*hotelRepo.SearchResult, error)
	// Latest returns the freshest active hotels for the homepage.
	Latest(ctx context.Context, limit int) ([]models.Hotel, error)
	// GetByID returns one hotel, optionally with its bookings.
	GetByID(ctx context.Context, id string, includeBookings bool) (*models.Hotel, error)
	// GetByOwner returns an owner's active hotels.
	GetByOwner(ctx context.Context, ownerID string) ([]models.Hotel, error)
	// GetForEdit returns a hotel only if the owner matches.
	GetForEdit(ctx context.Context, id, ownerID string) (*models.Hotel, error)
	// Create registers a new active hotel.
	Create(ctx context.Context, hotel *models.Hotel) error
	// Update patches an owner's hotel.
	Update(ctx context.Context, id, ownerID string, input HotelInput) (*models.Hotel, error)
	// Delete marks an owner's hotel inactive.
	Delete(ctx context.Context, id, ownerID string) error
	// RenterBookings returns the renter's non-cancelled bookings grouped by
	// hotel.
	RenterBookings(ctx context.Context, renterID string) ([]models.Hotel, error)
}

// HotelInput carries the editable hotel fields.
type HotelInput struct {
	Name          string   `json:"name" binding:"required"`
	City          string   `json:"city" binding:"required"`
	Country       string   `json:"country" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Type          string   `json:"type" binding:"required"`
	AdultCount    int      `json:"adultCount" binding:"required,min=1"`
	ChildCount    int      `json:"childCount" binding:"min=0"`
	Facilities    []string `json:"facilities" binding:"required"`
	PricePerNight int64    `json:"pricePerNight" binding:"required,min=1"`
	StarRating    int      `json:"starRating" binding:"required,min=1,max=5"`
	ImageURLs     []string `json:"imageUrls"`
}
