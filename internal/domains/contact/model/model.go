package model

import (
	"time"

	"lagoon/shared/model"
)

const (
	TableName  = "contacts"
	EntityName = "contact"

	CodePrefix = "CT"

	FieldID          = "id"
	FieldCode        = "contact_code"
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldSubject     = "subject"
	FieldMessage     = "message"
	FieldStatus      = "status"
	FieldPriority    = "priority"
	FieldResponse    = "admin_response"
	FieldRespondedBy = "responded_by"
	FieldRespondedAt = "responded_at"
)

const (
	StatusNew      = "new"
	StatusRead     = "read"
	StatusReplied  = "replied"
	StatusResolved = "resolved"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

const (
	SubjectGeneral   = "general"
	SubjectBooking   = "booking"
	SubjectAmenities = "amenities"
	SubjectEvents    = "events"
	SubjectFeedback  = "feedback"
	SubjectComplaint = "complaint"
)

type Contact struct {
	ID          string     `db:"id"`
	Code        string     `db:"contact_code"`
	Name        string     `db:"name"`
	Email       string     `db:"email"`
	Phone       string     `db:"phone"`
	Subject     string     `db:"subject"`
	Message     string     `db:"message"`
	Status      string     `db:"status"`
	Priority    string     `db:"priority"`
	Response    string     `db:"admin_response"`
	RespondedBy string     `db:"responded_by"`
	RespondedAt *time.Time `db:"responded_at"`
	model.Metadata
}

// StatusCount is one row of the per-status aggregation.
type StatusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}
