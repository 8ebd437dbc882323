package dto

import (
	"github.com/google/uuid"

	"lagoon/internal/domains/testimonial/model"
	"lagoon/shared/constant"
	gDto "lagoon/shared/dto"
	gModel "lagoon/shared/model"
	"lagoon/shared/timezone"
)

type CreateTestimonialRequest struct {
	Name      string `json:"name"       validate:"required,min=2,max=100"`
	Email     string `json:"email"      validate:"required,email,max=100"`
	Rating    int    `json:"rating"     validate:"required,gte=1,lte=5"`
	Message   string `json:"message"    validate:"required,min=10,max=500"`
	VisitType string `json:"visit_type" validate:"required,oneof=day_tour overnight event company_outing"`
}

func (c *CreateTestimonialRequest) ToModel(code string) model.Testimonial {
	return model.Testimonial{
		ID:        uuid.NewString(),
		Code:      code,
		Name:      c.Name,
		Email:     c.Email,
		Rating:    c.Rating,
		Message:   c.Message,
		VisitType: c.VisitType,
		Status:    model.StatusPending,
		IsPublic:  false,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  constant.ActorPublic,
			ModifiedBy: constant.ActorPublic,
		},
	}
}

type ModerateTestimonialRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

type TestimonialResponse struct {
	ID         string `json:"id"`
	Code       string `json:"testimonial_code"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Rating     int    `json:"rating"`
	Message    string `json:"message"`
	VisitType  string `json:"visit_type"`
	Status     string `json:"status"`
	IsPublic   bool   `json:"is_public"`
	ApprovedBy string `json:"approved_by,omitempty"`
	ApprovedAt string `json:"approved_at,omitempty"`
	gDto.Metadata
}

func (r *TestimonialResponse) FromModel(model model.Testimonial) {
	r.ID = model.ID
	r.Code = model.Code
	r.Name = model.Name
	r.Email = model.Email
	r.Rating = model.Rating
	r.Message = model.Message
	r.VisitType = model.VisitType
	r.Status = model.Status
	r.IsPublic = model.IsPublic
	r.ApprovedBy = model.ApprovedBy

	if model.ApprovedAt != nil {
		r.ApprovedAt = timezone.Format(*model.ApprovedAt, constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

// PublicTestimonialResponse is the listing shown to site visitors: no email,
// no moderation trail.
type PublicTestimonialResponse struct {
	Code      string `json:"testimonial_code"`
	Name      string `json:"name"`
	Rating    int    `json:"rating"`
	Message   string `json:"message"`
	VisitType string `json:"visit_type"`
	CreatedAt string `json:"created_at"`
}

func (r *PublicTestimonialResponse) FromModel(model model.Testimonial) {
	r.Code = model.Code
	r.Name = model.Name
	r.Rating = model.Rating
	r.Message = model.Message
	r.VisitType = model.VisitType
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

type GetTestimonialsResponse struct {
	Testimonials []TestimonialResponse `json:"testimonials"`
	gDto.Pagination
}

func (r *GetTestimonialsResponse) FromModels(models []model.Testimonial, totalData int, params gDto.QueryParams) {
	r.Pagination.FromQuery(totalData, params)

	r.Testimonials = make([]TestimonialResponse, len(models))
	for i, mod := range models {
		r.Testimonials[i].FromModel(mod)
	}
}

type GetPublicTestimonialsResponse struct {
	Testimonials []PublicTestimonialResponse `json:"testimonials"`
	gDto.Pagination
}

func (r *GetPublicTestimonialsResponse) FromModels(models []model.Testimonial, totalData int, params gDto.QueryParams) {
	r.Pagination.FromQuery(totalData, params)

	r.Testimonials = make([]PublicTestimonialResponse, len(models))
	for i, mod := range models {
		r.Testimonials[i].FromModel(mod)
	}
}
