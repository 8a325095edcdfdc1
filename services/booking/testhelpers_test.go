package booking_test

import (
	"context"
	"fmt"
	"strings"
	"time"

	hotelRepo "stayhub/database/repository/hotel"
	"stayhub/models"
	"stayhub/services/booking"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// fakeRepo is an in-memory HotelRepository. WithTransaction simply runs fn;
// mutations made by a failing fn are not rolled back, so tests assert that
// the engine never mutates before its checks pass.
type fakeRepo struct {
	hotels  map[string]*models.Hotel
	txRuns  int
	txFails int
}

func newFakeRepo(hotels ...*models.Hotel) *fakeRepo {
	r := &fakeRepo{hotels: make(map[string]*models.Hotel)}
	for _, h := range hotels {
		r.hotels[h.ID] = h
	}
	return r
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*models.Hotel, error) {
	h, ok := r.hotels[id]
	if !ok {
		return nil, hotelRepo.ErrNotFound
	}
	copied := *h
	copied.Bookings = append([]models.Booking(nil), h.Bookings...)
	return &copied, nil
}

func (r *fakeRepo) GetByIDPublic(ctx context.Context, id string) (*models.Hotel, error) {
	h, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	h.Bookings = nil
	return h, nil
}

func (r *fakeRepo) Search(context.Context, hotelRepo.SearchCriteria) (*hotelRepo.SearchResult, error) {
	return &hotelRepo.SearchResult{}, nil
}

func (r *fakeRepo) Latest(context.Context, int) ([]models.Hotel, error) { return nil, nil }

func (r *fakeRepo) GetByOwner(context.Context, string) ([]models.Hotel, error) { return nil, nil }

func (r *fakeRepo) GetByIDAndOwner(ctx context.Context, id, _ string) (*models.Hotel, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeRepo) GetByRenter(context.Context, string) ([]models.Hotel, error) { return nil, nil }

func (r *fakeRepo) Create(_ context.Context, h *models.Hotel) error {
	r.hotels[h.ID] = h
	return nil
}

func (r *fakeRepo) Update(context.Context, string, string, bson.M) (*models.Hotel, error) {
	return nil, hotelRepo.ErrNotFound
}

func (r *fakeRepo) SoftDelete(context.Context, string, string) error { return nil }

func (r *fakeRepo) AppendBooking(_ context.Context, hotelID string, b models.Booking) error {
	h, ok := r.hotels[hotelID]
	if !ok {
		return hotelRepo.ErrNotFound
	}
	h.Bookings = append(h.Bookings, b)
	return nil
}

func (r *fakeRepo) UpdateBookingFields(_ context.Context, hotelID, bookingID string, fields bson.M) error {
	h, ok := r.hotels[hotelID]
	if !ok {
		return hotelRepo.ErrNotFound
	}
	for i := range h.Bookings {
		if h.Bookings[i].ID != bookingID {
			continue
		}
		if v, ok := fields["status"].(string); ok {
			h.Bookings[i].Status = v
		}
		if v, ok := fields["cancelledAt"].(time.Time); ok {
			h.Bookings[i].CancelledAt = &v
		}
		if v, ok := fields["refundAmount"].(int64); ok {
			h.Bookings[i].RefundAmount = &v
		}
		return nil
	}
	return hotelRepo.ErrNotFound
}

func (r *fakeRepo) WithTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	r.txRuns++
	if err := fn(ctx); err != nil {
		r.txFails++
		return err
	}
	return nil
}

// fakeGateway is an in-memory PaymentGateway.
type fakeGateway struct {
	intents map[string]*booking.GatewayIntent
	nextID  int
	downErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{intents: make(map[string]*booking.GatewayIntent)}
}

func (g *fakeGateway) CreateIntent(_ context.Context, amountMinor int64, currency string, metadata map[string]string) (*booking.GatewayIntent, error) {
	if g.downErr != nil {
		return nil, g.downErr
	}
	g.nextID++
	md := make(map[string]string, len(metadata))
	for k, v := range metadata {
		md[k] = v
	}
	intent := &booking.GatewayIntent{
		ID:           fmt.Sprintf("pi_%d", g.nextID),
		ClientSecret: fmt.Sprintf("secret_%d", g.nextID),
		Status:       "requires_payment_method",
		Metadata:     md,
	}
	g.intents[intent.ID] = intent
	return intent, nil
}

func (g *fakeGateway) GetIntent(_ context.Context, id string) (*booking.GatewayIntent, error) {
	if g.downErr != nil {
		return nil, g.downErr
	}
	intent, ok := g.intents[id]
	if !ok {
		return nil, booking.ErrIntentNotFound
	}
	return intent, nil
}

func (g *fakeGateway) succeed(id string) {
	g.intents[id].Status = "succeeded"
}

// recordingCache records invalidations so tests can assert coherency.
type recordingCache struct {
	store           map[string][]byte
	deletedPrefixes []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{store: make(map[string][]byte)}
}

func (c *recordingCache) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := c.store[key]
	return v, ok
}

func (c *recordingCache) Set(_ context.Context, key string, value []byte, _ time.Duration) {
	c.store[key] = value
}

func (c *recordingCache) Delete(_ context.Context, key string) {
	delete(c.store, key)
}

func (c *recordingCache) DeleteByPattern(_ context.Context, prefix string) {
	c.deletedPrefixes = append(c.deletedPrefixes, prefix)
	for k := range c.store {
		if strings.HasPrefix(k, prefix) {
			delete(c.store, k)
		}
	}
}

// recordingScheduler captures deferred refund orders.
type recordingScheduler struct {
	refunds []scheduledRefund
	err     error
}

type scheduledRefund struct {
	paymentRef  string
	amountMinor int64
	hotelID     string
	bookingID   string
}

func (s *recordingScheduler) ScheduleRefund(_ context.Context, paymentRef string, amountMinor int64, hotelID, bookingID string) error {
	if s.err != nil {
		return s.err
	}
	s.refunds = append(s.refunds, scheduledRefund{paymentRef, amountMinor, hotelID, bookingID})
	return nil
}

func testLogger() *zap.Logger { return zap.NewNop() }

func day(offset int) time.Time {
	return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func activeHotel(id string, rate int64) *models.Hotel {
	return &models.Hotel{
		ID:            id,
		OwnerID:       "owner-1",
		Name:          "Harbour View",
		City:          "Lisbon",
		Country:       "Portugal",
		PricePerNight: rate,
		StarRating:    4,
		IsActive:      true,
	}
}
