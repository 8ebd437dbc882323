package dto

import (
	"github.com/google/uuid"

	"lagoon/internal/domains/contact/model"
	"lagoon/shared/constant"
	gDto "lagoon/shared/dto"
	gModel "lagoon/shared/model"
	"lagoon/shared/timezone"
)

type CreateContactRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email,max=100"`
	Phone    string `json:"phone"    validate:"omitempty,min=7,max=20"`
	Subject  string `json:"subject"  validate:"required,oneof=general booking amenities events feedback complaint"`
	Message  string `json:"message"  validate:"required,min=10,max=2000"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

func (c *CreateContactRequest) ToModel(code string) model.Contact {
	priority := model.PriorityMedium
	if c.Priority != "" {
		priority = c.Priority
	}

	return model.Contact{
		ID:       uuid.NewString(),
		Code:     code,
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Subject:  c.Subject,
		Message:  c.Message,
		Status:   model.StatusNew,
		Priority: priority,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  constant.ActorPublic,
			ModifiedBy: constant.ActorPublic,
		},
	}
}

type UpdateContactStatusRequest struct {
	Status   string `db:"status"   json:"status"   validate:"omitempty,oneof=new read replied resolved"`
	Priority string `db:"priority" json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

type ReplyContactRequest struct {
	Response string `json:"response" validate:"required,min=10,max=2000"`
}

type ContactResponse struct {
	ID          string `json:"id"`
	Code        string `json:"contact_code"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Response    string `json:"admin_response,omitempty"`
	RespondedBy string `json:"responded_by,omitempty"`
	RespondedAt string `json:"responded_at,omitempty"`
	gDto.Metadata
}

func (r *ContactResponse) FromModel(model model.Contact) {
	r.ID = model.ID
	r.Code = model.Code
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Subject = model.Subject
	r.Message = model.Message
	r.Status = model.Status
	r.Priority = model.Priority
	r.Response = model.Response
	r.RespondedBy = model.RespondedBy

	if model.RespondedAt != nil {
		r.RespondedAt = timezone.Format(*model.RespondedAt, constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

// PublicContactResponse is returned to the submitter: the code to follow up
// with and nothing internal.
type PublicContactResponse struct {
	Code      string `json:"contact_code"`
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func (r *PublicContactResponse) FromModel(model model.Contact) {
	r.Code = model.Code
	r.Name = model.Name
	r.Subject = model.Subject
	r.Status = model.Status
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

type GetContactsResponse struct {
	Contacts []ContactResponse `json:"contacts"`
	gDto.Pagination
}

func (r *GetContactsResponse) FromModels(models []model.Contact, totalData int, params gDto.QueryParams) {
	r.Pagination.FromQuery(totalData, params)

	r.Contacts = make([]ContactResponse, len(models))
	for i, mod := range models {
		r.Contacts[i].FromModel(mod)
	}
}
