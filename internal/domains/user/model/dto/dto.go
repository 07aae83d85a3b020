package dto

import (
	"icpac/internal/domains/user/model"
	"icpac/shared"
	"icpac/shared/constant"
	gDto "icpac/shared/dto"
	gModel "icpac/shared/model"
	"icpac/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateUserRequest struct {
	Email        string  `json:"email"                   validate:"required,email"`
	Password     string  `json:"password"                validate:"required,min=8"`
	Role         string  `json:"role"                    validate:"omitempty,oneof=super_admin room_admin user"`
	ManagedRooms []int64 `json:"managed_rooms,omitempty" validate:"omitempty,dive,gt=0"`
	FullName     *string `json:"full_name,omitempty"     validate:"omitempty,max=100"`
}

func (r *CreateUserRequest) ToModel(actor string, hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = constant.RoleUser
	}

	managedRooms := pq.Int64Array{}
	if role == constant.RoleRoomAdmin && r.ManagedRooms != nil {
		managedRooms = r.ManagedRooms
	}

	return model.User{
		ID:           uuid.NewString(),
		Email:        r.Email,
		Password:     hashedPassword,
		Role:         role,
		ManagedRooms: managedRooms,
		FullName:     r.FullName,
		Active:       true,
		Metadata:     gModel.NewMetadata(actor, timezone.Now()),
	}
}

type UserResponse struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	ManagedRooms []int64 `json:"managed_rooms"`
	FullName     *string `json:"full_name,omitempty"`
	LastLogin    *string `json:"last_login,omitempty"`
	Active       bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Role = model.Role
	r.ManagedRooms = []int64(model.ManagedRooms)
	r.FullName = model.FullName
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)

	if r.ManagedRooms == nil {
		r.ManagedRooms = []int64{}
	}

	if model.LastLogin != nil {
		lastLogin := timezone.Format(*model.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}
}

type UpdateUserRequest struct {
	Role         string        `db:"role"          json:"role,omitempty"          validate:"omitempty,oneof=super_admin room_admin user"`
	ManagedRooms pq.Int64Array `db:"managed_rooms" json:"managed_rooms,omitempty" validate:"omitempty,dive,gt=0"`
	FullName     *string       `db:"full_name"     json:"full_name,omitempty"     validate:"omitempty,max=100"`
	Active       *bool         `db:"active"        json:"active,omitempty"`
}

func (u *UpdateUserRequest) Empty() bool {
	return u.Role == "" && u.ManagedRooms == nil && u.FullName == nil && u.Active == nil
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
