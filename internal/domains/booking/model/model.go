package model

import (
	"time"

	"github.com/lib/pq"

	"lagoon/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	CodePrefix = "BK"

	FieldID                = "id"
	FieldCode              = "booking_code"
	FieldGuestName         = "guest_name"
	FieldGuestEmail        = "guest_email"
	FieldGuestPhone        = "guest_phone"
	FieldCheckIn           = "check_in"
	FieldCheckOut          = "check_out"
	FieldGuests            = "guests"
	FieldAccommodationType = "accommodation_type"
	FieldAddons            = "addons"
	FieldTotalAmount       = "total_amount"
	FieldSpecialRequests   = "special_requests"
	FieldStatus            = "status"
	FieldPaymentStatus     = "payment_status"
	FieldAdminNotes        = "admin_notes"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPartial  = "partial"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

const (
	AccommodationDay       = "day"
	AccommodationOvernight = "overnight"
)

// RevenueStatuses are the only statuses that count toward revenue figures.
var RevenueStatuses = []string{StatusConfirmed, StatusCompleted}

type Booking struct {
	ID                string         `db:"id"`
	Code              string         `db:"booking_code"`
	GuestName         string         `db:"guest_name"`
	GuestEmail        string         `db:"guest_email"`
	GuestPhone        string         `db:"guest_phone"`
	CheckIn           time.Time      `db:"check_in"`
	CheckOut          *time.Time     `db:"check_out"`
	Guests            int            `db:"guests"`
	AccommodationType string         `db:"accommodation_type"`
	Addons            pq.StringArray `db:"addons"`
	TotalAmount       float64        `db:"total_amount"`
	SpecialRequests   string         `db:"special_requests"`
	Status            string         `db:"status"`
	PaymentStatus     string         `db:"payment_status"`
	AdminNotes        string         `db:"admin_notes"`
	model.Metadata
}

// TrendBucket is one calendar month of the dashboard trend.
type TrendBucket struct {
	Year     int     `db:"year"`
	Month    int     `db:"month"`
	Bookings int     `db:"bookings"`
	Revenue  float64 `db:"revenue"`
}

// StatusCount is one row of the per-status aggregation.
type StatusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}

// RevenueStats carries the revenue aggregates over confirmed and completed bookings.
type RevenueStats struct {
	Total   float64 `db:"total"`
	Average float64 `db:"average"`
}
