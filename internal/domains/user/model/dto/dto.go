package dto

import (
	"time"

	"github.com/google/uuid"

	"lagoon/internal/domains/user/model"
	"lagoon/shared/constant"
	gDto "lagoon/shared/dto"
	gModel "lagoon/shared/model"
	"lagoon/shared/timezone"
)

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"     validate:"required,oneof=admin superadmin"`
}

func (c *CreateUserRequest) ToModel(createdBy, hashedPassword string) model.User {
	return model.User{
		ID:       uuid.NewString(),
		Username: c.Username,
		Email:    c.Email,
		Password: hashedPassword,
		Role:     c.Role,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}
}

type UpdateUserRequest struct {
	Username string `db:"username" json:"username" validate:"omitempty,min=3,max=50"`
	Email    string `db:"email"    json:"email"    validate:"omitempty,email,max=100"`
	Role     string `db:"role"     json:"role"     validate:"omitempty,oneof=admin superadmin"`
	Active   *bool  `db:"active"   json:"active"   validate:"omitempty"`
}

// UpdateLastLoginRequest carries only the login timestamp for TransformFields.
type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login"`
}

// UpdatePasswordRequest carries only the new hash for TransformFields.
type UpdatePasswordRequest struct {
	Password string `db:"password"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	LastLogin string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Username = model.Username
	r.Email = model.Email
	r.Role = model.Role
	r.Active = model.Active

	if model.LastLogin != nil {
		r.LastLogin = timezone.Format(*model.LastLogin, constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users []UserResponse `json:"users"`
	gDto.Pagination
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData int, params gDto.QueryParams) {
	r.Pagination.FromQuery(totalData, params)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
