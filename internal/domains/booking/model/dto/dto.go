package dto

import (
	"time"

	"github.com/google/uuid"

	"lagoon/internal/domains/booking/model"
	"lagoon/shared/constant"
	gDto "lagoon/shared/dto"
	gModel "lagoon/shared/model"
	"lagoon/shared/timezone"
)

type CreateBookingRequest struct {
	GuestName         string   `json:"guest_name"         validate:"required,min=2,max=100"`
	GuestEmail        string   `json:"guest_email"        validate:"required,email,max=100"`
	GuestPhone        string   `json:"guest_phone"        validate:"required,min=7,max=20"`
	CheckIn           string   `json:"check_in"           validate:"required"`
	CheckOut          string   `json:"check_out"          validate:"omitempty"`
	Guests            int      `json:"guests"             validate:"required,gte=1,lte=20"`
	AccommodationType string   `json:"accommodation_type" validate:"required,oneof=day overnight"`
	Addons            []string `json:"addons"             validate:"omitempty,dive,oneof=cottage grill karaoke extra_bed airport_transfer"`
	TotalAmount       float64  `json:"total_amount"       validate:"omitempty,gte=0"`
	SpecialRequests   string   `json:"special_requests"   validate:"omitempty,max=500"`
}

func (c *CreateBookingRequest) ToModel(code string) (model.Booking, error) {
	checkIn, err := time.Parse(constant.DateOnlyFormat, c.CheckIn)
	if err != nil {
		return model.Booking{}, err
	}

	var checkOut *time.Time

	if c.CheckOut != "" {
		parsed, err := time.Parse(constant.DateOnlyFormat, c.CheckOut)
		if err != nil {
			return model.Booking{}, err
		}

		checkOut = &parsed
	}

	return model.Booking{
		ID:                uuid.NewString(),
		Code:              code,
		GuestName:         c.GuestName,
		GuestEmail:        c.GuestEmail,
		GuestPhone:        c.GuestPhone,
		CheckIn:           checkIn,
		CheckOut:          checkOut,
		Guests:            c.Guests,
		AccommodationType: c.AccommodationType,
		Addons:            c.Addons,
		TotalAmount:       c.TotalAmount,
		SpecialRequests:   c.SpecialRequests,
		Status:            model.StatusPending,
		PaymentStatus:     model.PaymentStatusUnpaid,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  constant.ActorPublic,
			ModifiedBy: constant.ActorPublic,
		},
	}, nil
}

type UpdateBookingStatusRequest struct {
	Status        string `db:"status"         json:"status"         validate:"omitempty,oneof=pending confirmed cancelled completed"`
	PaymentStatus string `db:"payment_status" json:"payment_status" validate:"omitempty,oneof=unpaid partial paid refunded"`
	AdminNotes    string `db:"admin_notes"    json:"admin_notes"    validate:"omitempty,max=1000"`
}

type BookingResponse struct {
	ID                string   `json:"id"`
	Code              string   `json:"booking_code"`
	GuestName         string   `json:"guest_name"`
	GuestEmail        string   `json:"guest_email"`
	GuestPhone        string   `json:"guest_phone"`
	CheckIn           string   `json:"check_in"`
	CheckOut          string   `json:"check_out,omitempty"`
	Guests            int      `json:"guests"`
	AccommodationType string   `json:"accommodation_type"`
	Addons            []string `json:"addons"`
	TotalAmount       float64  `json:"total_amount"`
	SpecialRequests   string   `json:"special_requests,omitempty"`
	Status            string   `json:"status"`
	PaymentStatus     string   `json:"payment_status"`
	AdminNotes        string   `json:"admin_notes,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.Code = model.Code
	r.GuestName = model.GuestName
	r.GuestEmail = model.GuestEmail
	r.GuestPhone = model.GuestPhone
	r.CheckIn = model.CheckIn.Format(constant.DateOnlyFormat)

	if model.CheckOut != nil {
		r.CheckOut = model.CheckOut.Format(constant.DateOnlyFormat)
	}

	r.Guests = model.Guests
	r.AccommodationType = model.AccommodationType
	r.Addons = model.Addons
	r.TotalAmount = model.TotalAmount
	r.SpecialRequests = model.SpecialRequests
	r.Status = model.Status
	r.PaymentStatus = model.PaymentStatus
	r.AdminNotes = model.AdminNotes
	r.Metadata.FromModel(model.Metadata)
}

// PublicBookingResponse is the guest-facing projection: no internal notes.
type PublicBookingResponse struct {
	Code              string   `json:"booking_code"`
	GuestName         string   `json:"guest_name"`
	CheckIn           string   `json:"check_in"`
	CheckOut          string   `json:"check_out,omitempty"`
	Guests            int      `json:"guests"`
	AccommodationType string   `json:"accommodation_type"`
	Addons            []string `json:"addons"`
	TotalAmount       float64  `json:"total_amount"`
	Status            string   `json:"status"`
	PaymentStatus     string   `json:"payment_status"`
	CreatedAt         string   `json:"created_at"`
}

func (r *PublicBookingResponse) FromModel(model model.Booking) {
	r.Code = model.Code
	r.GuestName = model.GuestName
	r.CheckIn = model.CheckIn.Format(constant.DateOnlyFormat)

	if model.CheckOut != nil {
		r.CheckOut = model.CheckOut.Format(constant.DateOnlyFormat)
	}

	r.Guests = model.Guests
	r.AccommodationType = model.AccommodationType
	r.Addons = model.Addons
	r.TotalAmount = model.TotalAmount
	r.Status = model.Status
	r.PaymentStatus = model.PaymentStatus
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

type GetBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	gDto.Pagination
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData int, params gDto.QueryParams) {
	r.Pagination.FromQuery(totalData, params)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
