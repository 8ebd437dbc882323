package dto

import (
	"mime/multipart"

	"lagoon/internal/domains/image/model"
	"lagoon/shared/constant"
	"lagoon/shared/timezone"
)

type UploadImageRequest struct {
	File        *multipart.FileHeader `json:"-" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg image/gif image/webp"`
	FileReader  multipart.File        `json:"-"`
	Category    string                `json:"category"    validate:"required,oneof=rooms amenities dining events general"`
	Description string                `json:"description" validate:"omitempty,max=500"`
}

type UpdateImageRequest struct {
	Category    string `json:"category"    validate:"omitempty,oneof=rooms amenities dining events general"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

type DeleteImagesRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

type ImageResponse struct {
	ID           string `json:"id"`
	FileName     string `json:"file_name"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
	Category     string `json:"category"`
	Description  string `json:"description,omitempty"`
	UploadedBy   string `json:"uploaded_by"`
	URL          string `json:"url"`
	UploadedAt   string `json:"uploaded_at"`
}

func (r *ImageResponse) FromModel(model model.Image) {
	r.ID = model.ID
	r.FileName = model.FileName
	r.OriginalName = model.OriginalName
	r.MimeType = model.MimeType
	r.Size = model.Size
	r.Category = model.Category
	r.Description = model.Description
	r.UploadedBy = model.UploadedBy
	r.URL = model.URL
	r.UploadedAt = timezone.Format(model.UploadedAt, constant.DateFormat)
}

type GetImagesResponse struct {
	Images    []ImageResponse `json:"images"`
	TotalData int             `json:"total_data"`
}

func (r *GetImagesResponse) FromModels(models []model.Image) {
	r.TotalData = len(models)

	r.Images = make([]ImageResponse, len(models))
	for i, mod := range models {
		r.Images[i].FromModel(mod)
	}
}

type DeleteImagesResponse struct {
	Deleted int `json:"deleted"`
}
