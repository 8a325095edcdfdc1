package models

import "time"

// Booking status values. "pending" is part of the model but the commit path
// always writes "confirmed"; only the cancellation flow writes "cancelled".
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking represents a single reservation embedded in its hotel document.
// A booking is owned by exactly one hotel and never referenced elsewhere.
type Booking struct {
	ID           string     `bson:"id" json:"id"`
	RenterID     string     `bson:"renterId" json:"renterId"`
	FirstName    string     `bson:"firstName" json:"firstName"`
	LastName     string     `bson:"lastName" json:"lastName"`
	Email        string     `bson:"email" json:"email"`
	AdultCount   int        `bson:"adultCount" json:"adultCount"`
	ChildCount   int        `bson:"childCount" json:"childCount"`
	CheckIn      time.Time  `bson:"checkIn" json:"checkIn"`
	CheckOut     time.Time  `bson:"checkOut" json:"checkOut"`
	TotalCost    int64      `bson:"totalCost" json:"totalCost"`
	Commission   int64      `bson:"commission" json:"commission"`
	Status       string     `bson:"status" json:"status"`
	PaymentRef   string     `bson:"paymentRef,omitempty" json:"paymentRef,omitempty"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
	CancelledAt  *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	RefundAmount *int64     `bson:"refundAmount,omitempty" json:"refundAmount,omitempty"`
}

// BookingInput carries the caller-supplied fields for a new booking.
// Identity, cost and status are filled in by the committer.
type BookingInput struct {
	FirstName  string    `json:"firstName" binding:"required"`
	LastName   string    `json:"lastName" binding:"required"`
	Email      string    `json:"email" binding:"required,email"`
	AdultCount int       `json:"adultCount" binding:"required,min=1"`
	ChildCount int       `json:"childCount" binding:"min=0"`
	CheckIn    time.Time `json:"checkIn" binding:"required"`
	CheckOut   time.Time `json:"checkOut" binding:"required"`
	TotalCost  int64     `json:"totalCost"`
}

// CancellationResult reports the outcome of a booking cancellation.
type CancellationResult struct {
	RefundAmount  int64  `json:"refundAmount"`
	RefundPercent int    `json:"refundPercent"`
	Message       string `json:"message"`
}
