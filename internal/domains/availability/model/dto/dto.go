package dto

import (
	"time"

	"icpac/internal/domains/availability"
	bookingDto "icpac/internal/domains/booking/model/dto"
)

type SlotResponse struct {
	Time      string  `json:"time"`
	Occupied  bool    `json:"occupied"`
	BookingID *string `json:"booking_id,omitempty"`
	Status    string  `json:"status,omitempty"`
}

type DaySlotsResponse struct {
	RoomID int64          `json:"room_id"`
	Date   string         `json:"date"`
	Filter string         `json:"filter"`
	Slots  []SlotResponse `json:"slots"`
}

func (r *DaySlotsResponse) FromSlots(roomID int64, date time.Time, filter availability.StatusFilter, slots []availability.DaySlot) {
	r.RoomID = roomID
	r.Date = date.Format(time.DateOnly)
	r.Filter = filter.String()

	r.Slots = make([]SlotResponse, len(slots))
	for i, slot := range slots {
		r.Slots[i] = SlotResponse{Time: slot.Slot.String(), Occupied: slot.Occupied}

		if slot.Booking != nil {
			id := slot.Booking.ID
			r.Slots[i].BookingID = &id
			r.Slots[i].Status = string(slot.Booking.Status)
		}
	}
}

type OccupancyResponse struct {
	RoomID          int64  `json:"room_id"`
	Date            string `json:"date"`
	Percentage      int    `json:"percentage"`
	OccupiedSlots   int    `json:"occupied_slots"`
	TotalSlots      int    `json:"total_slots"`
	FullyBooked     bool   `json:"fully_booked"`
	PartiallyBooked bool   `json:"partially_booked"`
}

func (r *OccupancyResponse) FromOccupancy(roomID int64, date time.Time, occupancy availability.Occupancy) {
	r.RoomID = roomID
	r.Date = date.Format(time.DateOnly)
	r.Percentage = occupancy.Percentage
	r.OccupiedSlots = occupancy.OccupiedSlots
	r.TotalSlots = occupancy.TotalSlots
	r.FullyBooked = occupancy.FullyBooked
	r.PartiallyBooked = occupancy.PartiallyBooked
}

// CheckRequest describes a proposed booking in the same shape the booking form submits.
type CheckRequest struct {
	RoomID      int64  `json:"room_id"      validate:"required,gt=0"`
	BookingType string `json:"booking_type" validate:"required,oneof=hourly full_day multi_day weekly"`
	StartDate   string `json:"start_date"   validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date"     validate:"omitempty,datetime=2006-01-02"`
	StartTime   string `json:"start_time"   validate:"required_if=BookingType hourly,omitempty,quarterhour"`
	EndTime     string `json:"end_time"     validate:"required_if=BookingType hourly,omitempty,quarterhour"`
}

func (c *CheckRequest) ToSchedule() (availability.Schedule, error) {
	return bookingDto.BuildSchedule(c.BookingType, c.StartDate, c.EndDate, c.StartTime, c.EndTime) //nolint:wrapcheck
}

type CheckResponse struct {
	RoomID      int64  `json:"room_id"`
	BookingType string `json:"booking_type"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Available   bool   `json:"available"`
}
