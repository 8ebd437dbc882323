package dto

import (
	bookingModel "lagoon/internal/domains/booking/model"
	contactModel "lagoon/internal/domains/contact/model"
	"lagoon/shared/constant"
	"lagoon/shared/timezone"
)

const (
	ResourceBookings = "bookings"
	ResourceContacts = "contacts"

	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

type ExportRequest struct {
	Resource string `json:"resource" validate:"required,oneof=bookings contacts"`
	Format   string `json:"format"   validate:"required,oneof=json csv xlsx"`
}

// ExportFile is a rendered export ready to be written to the response.
type ExportFile struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

type RevenueStats struct {
	Total       float64 `json:"total"`
	Average     float64 `json:"average"`
	MonthToDate float64 `json:"month_to_date"`
}

type BookingSummary struct {
	Code        string  `json:"booking_code"`
	GuestName   string  `json:"guest_name"`
	CheckIn     string  `json:"check_in"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
	CreatedAt   string  `json:"created_at"`
}

func (r *BookingSummary) FromModel(model bookingModel.Booking) {
	r.Code = model.Code
	r.GuestName = model.GuestName
	r.CheckIn = timezone.Format(model.CheckIn, constant.DateOnlyFormat)
	r.Status = model.Status
	r.TotalAmount = model.TotalAmount
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

type ContactSummary struct {
	Code      string `json:"contact_code"`
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	Status    string `json:"status"`
	Priority  string `json:"priority"`
	CreatedAt string `json:"created_at"`
}

func (r *ContactSummary) FromModel(model contactModel.Contact) {
	r.Code = model.Code
	r.Name = model.Name
	r.Subject = model.Subject
	r.Status = model.Status
	r.Priority = model.Priority
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

type TrendPoint struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

type BookingStats struct {
	Total       int              `json:"total"`
	Pending     int              `json:"pending"`
	Confirmed   int              `json:"confirmed"`
	Cancelled   int              `json:"cancelled"`
	Completed   int              `json:"completed"`
	MonthToDate int              `json:"month_to_date"`
	YearToDate  int              `json:"year_to_date"`
	Revenue     RevenueStats     `json:"revenue"`
	Recent      []BookingSummary `json:"recent"`
}

type ContactStats struct {
	Total    int              `json:"total"`
	New      int              `json:"new"`
	Read     int              `json:"read"`
	Replied  int              `json:"replied"`
	Resolved int              `json:"resolved"`
	Urgent   int              `json:"urgent"`
	Recent   []ContactSummary `json:"recent"`
}

type DashboardResponse struct {
	Bookings BookingStats `json:"bookings"`
	Contacts ContactStats `json:"contacts"`
	Trend    []TrendPoint `json:"monthly_trend"`
}
