package availability

import (
	"time"
)

// Reservation is the engine's view of a booking.
type Reservation struct {
	ID       string
	RoomID   int64
	Status   ApprovalStatus
	Schedule Schedule
}

// occupies is the single matcher behind IsSlotOccupied, OccupyingBooking and CalculateOccupancy.
func (r *Reservation) occupies(roomID int64, date time.Time, slot Slot, filter StatusFilter) bool {
	if r.RoomID != roomID || r.Schedule == nil || !filter.Matches(r.Status) {
		return false
	}

	from, to, ok := r.Schedule.slotsOn(date)

	return ok && slot >= from && slot < to
}

// IsSlotOccupied reports whether any reservation for roomID covers slot on date.
func IsSlotOccupied(reservations []Reservation, roomID int64, date time.Time, slot Slot, filter StatusFilter) bool {
	return OccupyingBooking(reservations, roomID, date, slot, filter) != nil
}

// OccupyingBooking returns the first reservation, in slice order, covering slot on date, or nil.
func OccupyingBooking(reservations []Reservation, roomID int64, date time.Time, slot Slot, filter StatusFilter) *Reservation {
	for i := range reservations {
		if reservations[i].occupies(roomID, date, slot, filter) {
			return &reservations[i]
		}
	}

	return nil
}

// CanAccommodateDuration reports whether an hourly booking of durationHours starting at start fits
// inside the working day on date without touching an active reservation.
func CanAccommodateDuration(reservations []Reservation, roomID int64, date time.Time, start Slot, durationHours float64) bool {
	count := SlotCount(durationHours)
	if count <= 0 || !start.Valid() || int(start)+count > BoundaryCount {
		return false
	}

	for slot := start; slot < start.Add(count); slot++ {
		if IsSlotOccupied(reservations, roomID, date, slot, FilterActive) {
			return false
		}
	}

	return true
}

// CanAccommodateDateRange reports whether no active reservation for roomID touches any day in
// [startDate, endDate]. Existing hourly bookings block their whole date here.
func CanAccommodateDateRange(reservations []Reservation, roomID int64, startDate, endDate time.Time) bool {
	startDate, endDate = orderedRange(startDate, endDate)

	for i := range reservations {
		r := &reservations[i]
		if r.RoomID != roomID || r.Schedule == nil || !FilterActive.Matches(r.Status) {
			continue
		}

		existingStart, existingEnd := r.Schedule.DateRange()
		if RangesOverlap(startDate, endDate, existingStart, existingEnd) {
			return false
		}
	}

	return true
}

// CanAccommodate dispatches to the duration or date-range check depending on the schedule type.
func CanAccommodate(reservations []Reservation, roomID int64, schedule Schedule) bool {
	if h, ok := schedule.(HourlySchedule); ok {
		return CanAccommodateDuration(reservations, roomID, h.Date, h.Start, h.Duration)
	}

	start, end := schedule.DateRange()

	return CanAccommodateDateRange(reservations, roomID, start, end)
}

// DaySlot is one boundary point of the board grid.
type DaySlot struct {
	Slot     Slot
	Occupied bool
	Booking  *Reservation
}

// DaySlots evaluates every boundary point of date for roomID, in order.
func DaySlots(reservations []Reservation, roomID int64, date time.Time, filter StatusFilter) []DaySlot {
	out := make([]DaySlot, 0, BoundaryCount)

	for slot := FirstSlot; slot <= EndMarker; slot++ {
		booking := OccupyingBooking(reservations, roomID, date, slot, filter)
		out = append(out, DaySlot{Slot: slot, Occupied: booking != nil, Booking: booking})
	}

	return out
}
