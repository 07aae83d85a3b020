package dto

import (
	"mime/multipart"

	"icpac/internal/domains/room/model"
	"icpac/shared"
	gDto "icpac/shared/dto"
	gModel "icpac/shared/model"
	"icpac/shared/timezone"

	"github.com/lib/pq"
)

type CreateRoomRequest struct {
	Name        string                `json:"name"        validate:"required,max=100"`
	Capacity    int                   `json:"capacity"    validate:"required,gt=0"`
	Category    string                `json:"category"    validate:"omitempty,oneof=conference computer_lab special other"`
	Amenities   []string              `json:"amenities"   validate:"omitempty,dive,required,max=50"`
	Floor       string                `json:"floor"       validate:"omitempty,max=20"`
	Location    string                `json:"location"    validate:"omitempty,max=100"`
	Description string                `json:"description" validate:"omitempty,max=1000"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	ImageFile   multipart.File        `json:"-"`
	Active      *bool                 `json:"active"      validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	category := c.Category
	if category == "" {
		category = model.CategoryOther
	}

	amenities := pq.StringArray{}
	if c.Amenities != nil {
		amenities = c.Amenities
	}

	return model.Room{
		Name:        c.Name,
		Capacity:    c.Capacity,
		Category:    category,
		Amenities:   amenities,
		Floor:       c.Floor,
		Location:    c.Location,
		Description: c.Description,
		Image:       imageURL,
		Active:      active,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateRoomRequest struct {
	Name        string                `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Capacity    *int                  `db:"capacity"    json:"capacity"    validate:"omitempty,gt=0"`
	Category    string                `db:"category"    json:"category"    validate:"omitempty,oneof=conference computer_lab special other"`
	Amenities   pq.StringArray        `db:"amenities"   json:"amenities"   validate:"omitempty,dive,required,max=50"`
	Floor       string                `db:"floor"       json:"floor"       validate:"omitempty,max=20"`
	Location    string                `db:"location"    json:"location"    validate:"omitempty,max=100"`
	Description string                `db:"description" json:"description" validate:"omitempty,max=1000"`
	Image       *multipart.FileHeader `db:"-"           json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	ImageFile   multipart.File        `db:"-"           json:"-"`
	Active      *bool                 `db:"active"      json:"active"      validate:"omitempty"`
}

// Empty reports whether the request would change nothing.
func (u *UpdateRoomRequest) Empty() bool {
	return u.Name == "" && u.Capacity == nil && u.Category == "" && u.Amenities == nil && u.Floor == "" &&
		u.Location == "" && u.Description == "" && u.Image == nil && u.Active == nil
}

type RoomResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Capacity    int      `json:"capacity"`
	Category    string   `json:"category"`
	Amenities   []string `json:"amenities"`
	Floor       string   `json:"floor"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Active      bool     `json:"active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Capacity = model.Capacity
	r.Category = model.Category
	r.Amenities = []string(model.Amenities)
	r.Floor = model.Floor
	r.Location = model.Location
	r.Description = model.Description
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)

	if r.Amenities == nil {
		r.Amenities = []string{}
	}
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
