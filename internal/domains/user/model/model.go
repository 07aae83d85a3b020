package model

import (
	"icpac/shared/constant"
	"icpac/shared/model"
	"slices"
	"time"

	"github.com/lib/pq"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID           = "id"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldRole         = "role"
	FieldManagedRooms = "managed_rooms"
	FieldFullName     = "full_name"
	FieldLastLogin    = "last_login"
	FieldActive       = "active"
)

type User struct {
	ID           string        `db:"id"`
	Email        string        `db:"email"`
	Password     string        `db:"password"`
	Role         string        `db:"role"`
	ManagedRooms pq.Int64Array `db:"managed_rooms"`
	FullName     *string       `db:"full_name"`
	LastLogin    *time.Time    `db:"last_login"`
	Active       bool          `db:"active"`
	model.Metadata
}

// Actor is the caller of a service operation, resolved from the stored user rather than token
// claims so that role and room assignments take effect immediately.
type Actor struct {
	ID           string
	Role         string
	ManagedRooms []int64
}

func (u User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role, ManagedRooms: []int64(u.ManagedRooms)}
}

func (a Actor) Anonymous() bool {
	return a.ID == ""
}

func (a Actor) IsSuperAdmin() bool {
	return a.Role == constant.RoleSuperAdmin
}

// ManagesRoom reports whether the actor may approve, reject and administer bookings of roomID.
func (a Actor) ManagesRoom(roomID int64) bool {
	if a.IsSuperAdmin() {
		return true
	}

	return a.Role == constant.RoleRoomAdmin && slices.Contains(a.ManagedRooms, roomID)
}
