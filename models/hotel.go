package models

import "time"

// Featured tier values for paid placement.
const (
	FeaturedTierNone    = "none"
	FeaturedTierBasic   = "basic"
	FeaturedTierPremium = "premium"
)

// Hotel is the aggregate root. It owns its bookings exclusively; all booking
// mutations go through single-document atomic updates on this record.
type Hotel struct {
	ID            string     `bson:"id" json:"id"`
	OwnerID       string     `bson:"ownerId" json:"ownerId"`
	Name          string     `bson:"name" json:"name"`
	City          string     `bson:"city" json:"city"`
	Country       string     `bson:"country" json:"country"`
	Description   string     `bson:"description" json:"description"`
	Type          string     `bson:"type" json:"type"`
	AdultCount    int        `bson:"adultCount" json:"adultCount"`
	ChildCount    int        `bson:"childCount" json:"childCount"`
	Facilities    []string   `bson:"facilities" json:"facilities"`
	PricePerNight int64      `bson:"pricePerNight" json:"pricePerNight"`
	StarRating    int        `bson:"starRating" json:"starRating"`
	ImageURLs     []string   `bson:"imageUrls" json:"imageUrls"`
	LastUpdated   time.Time  `bson:"lastUpdated" json:"lastUpdated"`
	Bookings      []Booking  `bson:"bookings" json:"bookings,omitempty"`
	Featured      bool       `bson:"featured" json:"featured"`
	FeaturedUntil *time.Time `bson:"featuredUntil,omitempty" json:"featuredUntil,omitempty"`
	FeaturedTier  string     `bson:"featuredTier" json:"featuredTier"`
	IsActive      bool       `bson:"isActive" json:"isActive"`
	IsVerified    bool       `bson:"isVerified" json:"isVerified"`
}
