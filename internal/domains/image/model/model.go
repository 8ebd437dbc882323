package model

import "time"

const (
	EntityName = "image"

	// S3Directory is the object prefix for uploaded image files.
	S3Directory = "images"
)

const (
	CategoryRooms     = "rooms"
	CategoryAmenities = "amenities"
	CategoryDining    = "dining"
	CategoryEvents    = "events"
	CategoryGeneral   = "general"
)

// Image is upload metadata. It lives in process memory behind the store
// abstraction; only the file bytes are persisted, on S3.
type Image struct {
	ID           string
	FileName     string
	OriginalName string
	MimeType     string
	Size         int64
	Category     string
	Description  string
	UploadedBy   string
	URL          string
	UploadedAt   time.Time
	ModifiedAt   time.Time
}
