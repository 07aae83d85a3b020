package availability

import (
	"math"
	"time"
)

type Occupancy struct {
	Percentage      int
	OccupiedSlots   int
	TotalSlots      int
	FullyBooked     bool
	PartiallyBooked bool
}

// CalculateOccupancy measures how much of roomID's working day on date is covered by active
// reservations. Overlapping reservations are counted once per slot.
func CalculateOccupancy(reservations []Reservation, roomID int64, date time.Time) Occupancy {
	var covered [TotalSlots]bool

	occupied := 0

	for i := range reservations {
		r := &reservations[i]
		if r.RoomID != roomID || r.Schedule == nil || !FilterActive.Matches(r.Status) {
			continue
		}

		from, to, ok := r.Schedule.slotsOn(date)
		if !ok {
			continue
		}

		for slot := max(from, FirstSlot); slot < min(to, EndMarker); slot++ {
			if !covered[slot] {
				covered[slot] = true
				occupied++
			}
		}
	}

	percentage := int(math.Round(float64(occupied*100) / TotalSlots))

	return Occupancy{
		Percentage:      percentage,
		OccupiedSlots:   occupied,
		TotalSlots:      TotalSlots,
		FullyBooked:     percentage >= 100,
		PartiallyBooked: percentage > 0 && percentage < 100,
	}
}
