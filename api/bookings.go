package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the backend-owned lifecycle of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is a student's claim on a room, awaiting or past provider review.
type Booking struct {
	ID        int64         `json:"id"`
	RoomID    int64         `json:"room_id"`
	StudentID int64         `json:"student_id"`
	Status    BookingStatus `json:"status"`
	CheckIn   string        `json:"check_in"`  // ISO date, backend-validated
	CheckOut  string        `json:"check_out"` // ISO date, backend-validated
	CreatedAt time.Time     `json:"created_at"`
}

// NewBooking is the creation request a student submits.
type NewBooking struct {
	RoomID   int64  `json:"room_id"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

// IdempotencyKeyHeader lets the backend deduplicate a booking submitted twice
// (double click, client retry).
const IdempotencyKeyHeader = "Idempotency-Key"

// CreateBooking submits a booking request for review by the room's provider.
func (c *Client) CreateBooking(ctx context.Context, booking NewBooking) (*Booking, error) {
	header := http.Header{}
	header.Set(IdempotencyKeyHeader, uuid.New().String())

	var out Booking
	if err := c.do(ctx, http.MethodPost, "/bookings/", booking, &out, header); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyBookings lists the caller's bookings: the student's own requests, or
// the requests against a provider's rooms, depending on the session role.
func (c *Client) MyBookings(ctx context.Context) ([]Booking, error) {
	var out []Booking
	if err := c.do(ctx, http.MethodGet, "/bookings/mine/", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveBooking accepts a pending booking. Provider only.
func (c *Client) ApproveBooking(ctx context.Context, id int64) (*Booking, error) {
	var out Booking
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/bookings/%d/approve/", id), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// RejectBooking declines a pending booking. Provider only.
func (c *Client) RejectBooking(ctx context.Context, id int64) (*Booking, error) {
	var out Booking
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/bookings/%d/reject/", id), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}
