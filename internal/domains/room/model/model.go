package model

import (
	"icpac/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldName        = "name"
	FieldCapacity    = "capacity"
	FieldCategory    = "category"
	FieldAmenities   = "amenities"
	FieldFloor       = "floor"
	FieldLocation    = "location"
	FieldDescription = "description"
	FieldImage       = "image"
	FieldActive      = "active"
)

const (
	CategoryConference  = "conference"
	CategoryComputerLab = "computer_lab"
	CategorySpecial     = "special"
	CategoryOther       = "other"
)

type Room struct {
	ID          int64          `db:"id"          insert:"-"`
	Name        string         `db:"name"`
	Capacity    int            `db:"capacity"`
	Category    string         `db:"category"`
	Amenities   pq.StringArray `db:"amenities"`
	Floor       string         `db:"floor"`
	Location    string         `db:"location"`
	Description string         `db:"description"`
	Image       string         `db:"image"`
	Active      bool           `db:"active"`
	model.Metadata
}

// Bookable reports whether new bookings may be placed in the room.
func (r Room) Bookable() bool {
	return r.ID != 0 && r.Active
}
