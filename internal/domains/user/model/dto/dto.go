package dto

import (
	"shareit/internal/domains/user/model"
	"shareit/shared"
	gDto "shareit/shared/dto"
	gModel "shareit/shared/model"
	"strings"
)

type CreateUserRequest struct {
	Name  string `json:"name"  validate:"required,notblank,max=255"`
	Email string `json:"email" validate:"required,email,max=512"`
}

func (c *CreateUserRequest) ToModel() model.User {
	return model.User{
		Name:     strings.TrimSpace(c.Name),
		Email:    strings.ToLower(c.Email),
		Metadata: gModel.NewMetadata(),
	}
}

// UpdateUserRequest is a partial update; nil fields are left untouched.
type UpdateUserRequest struct {
	Name  *string `db:"name"  json:"name"  validate:"omitempty,notblank,max=255"`
	Email *string `db:"email" json:"email" validate:"omitempty,email,max=512"`
}

func (u *UpdateUserRequest) Normalize() {
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		u.Name = &name
	}

	if u.Email != nil {
		email := strings.ToLower(*u.Email)
		u.Email = &email
	}
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Name = user.Name
	r.Email = user.Email
	r.Metadata.FromModel(user.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(users []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(users))
	for i, user := range users {
		r.Users[i].FromModel(user)
	}
}
