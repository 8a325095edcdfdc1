package hotelRepo

import (
	"context"
	"errors"

	"stayhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotFound is returned when no hotel (or booking) matches the query.
var ErrNotFound = errors.New("hotel not found")

// SearchCriteria defines criteria for a hotel search.
type SearchCriteria struct {
	Destination string
	AdultCount  int
	ChildCount  int
	Facilities  []string
	Types       []string
	Stars       []int
	MaxPrice    int64
	SortOption  string
	Page        int
}

// SearchResult is one page of hotels plus the total match count.
type SearchResult struct {
	Hotels   []models.Hotel `json:"data"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

// HotelRepository defines methods for hotel data access. All booking
// mutations are atomic single-document updates on the owning hotel.
type HotelRepository interface {
	// GetByID retrieves a hotel by its unique ID, bookings included.
	GetByID(ctx context.Context, id string) (*models.Hotel, error)
	// GetByIDPublic retrieves a hotel without its bookings array.
	GetByIDPublic(ctx context.Context, id string) (*models.Hotel, error)
	// Search returns one page of matching hotels and the total count.
	Search(ctx context.Context, criteria SearchCriteria) (*SearchResult, error)
	// Latest returns the most recently updated active hotels, featured first.
	Latest(ctx context.Context, limit int) ([]models.Hotel, error)
	// GetByOwner retrieves all active hotels belonging to an owner.
	GetByOwner(ctx context.Context, ownerID string) ([]models.Hotel, error)
	// GetByIDAndOwner retrieves a hotel only if the owner matches.
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Hotel, error)
	// GetByRenter retrieves hotels holding at least one booking by the renter.
	GetByRenter(ctx context.Context, renterID string) ([]models.Hotel, error)
	// Create inserts a new hotel record.
	Create(ctx context.Context, hotel *models.Hotel) error
	// Update patches an owner's hotel with the given update document.
	Update(ctx context.Context, id, ownerID string, updateDoc bson.M) (*models.Hotel, error)
	// SoftDelete marks an owner's hotel inactive.
	SoftDelete(ctx context.Context, id, ownerID string) error
	// AppendBooking atomically pushes a booking onto the hotel document.
	AppendBooking(ctx context.Context, hotelID string, booking models.Booking) error
	// UpdateBookingFields atomically patches one embedded booking.
	UpdateBookingFields(ctx context.Context, hotelID, bookingID string, fields bson.M) error
	// WithTransaction runs fn inside one storage-level unit of work. The
	// context passed to fn must be used for every read and write so they
	// commit or abort as one.
	WithTransaction(ctx context.Context, fn func(txCtx context.Context) error) error
}
