package model

import (
	"time"

	"lagoon/shared/model"
)

const (
	TableName  = "testimonials"
	EntityName = "testimonial"

	CodePrefix = "TM"

	FieldID         = "id"
	FieldCode       = "testimonial_code"
	FieldName       = "name"
	FieldEmail      = "email"
	FieldRating     = "rating"
	FieldMessage    = "message"
	FieldVisitType  = "visit_type"
	FieldStatus     = "status"
	FieldIsPublic   = "is_public"
	FieldApprovedBy = "approved_by"
	FieldApprovedAt = "approved_at"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	VisitTypeDayTour       = "day_tour"
	VisitTypeOvernight     = "overnight"
	VisitTypeEvent         = "event"
	VisitTypeCompanyOuting = "company_outing"
)

type Testimonial struct {
	ID         string     `db:"id"`
	Code       string     `db:"testimonial_code"`
	Name       string     `db:"name"`
	Email      string     `db:"email"`
	Rating     int        `db:"rating"`
	Message    string     `db:"message"`
	VisitType  string     `db:"visit_type"`
	Status     string     `db:"status"`
	IsPublic   bool       `db:"is_public"`
	ApprovedBy string     `db:"approved_by"`
	ApprovedAt *time.Time `db:"approved_at"`
	model.Metadata
}
