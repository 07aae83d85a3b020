package availability

import (
	"fmt"
	"math"
	"time"
)

const (
	WorkdayStartHour = 8
	WorkdayEndHour   = 18
	SlotMinutes      = 15
	SlotsPerHour     = 60 / SlotMinutes

	// TotalSlots is the number of bookable intervals in a working day.
	TotalSlots = (WorkdayEndHour - WorkdayStartHour) * SlotsPerHour
	// BoundaryCount includes the closing 18:00 marker.
	BoundaryCount = TotalSlots + 1

	slotLayout = "15:04"
)

// Slot is the index of a 15-minute boundary point in the 08:00-18:00 window.
// Slot(0) is 08:00 and Slot(TotalSlots) is the 18:00 end marker.
type Slot int

const (
	FirstSlot Slot = 0
	EndMarker Slot = TotalSlots
)

var slotTimes = generateSlotTimes()

func generateSlotTimes() []string {
	times := make([]string, 0, BoundaryCount)
	start := time.Date(2000, 1, 1, WorkdayStartHour, 0, 0, 0, time.UTC)

	for i := range BoundaryCount {
		times = append(times, start.Add(time.Duration(i*SlotMinutes)*time.Minute).Format(slotLayout))
	}

	return times
}

// SlotTimes returns the 41 boundary times of the working day in order.
func SlotTimes() []string {
	out := make([]string, len(slotTimes))
	copy(out, slotTimes)

	return out
}

// ParseSlot converts an "HH:MM" time into its slot index. Times that are not on the
// 15-minute grid or fall outside the working window are rejected.
func ParseSlot(value string) (Slot, error) {
	t, err := time.Parse(slotLayout, value)
	if err != nil {
		return 0, fmt.Errorf("invalid slot time %q: expected HH:MM", value)
	}

	minutes := (t.Hour()-WorkdayStartHour)*60 + t.Minute()
	if minutes < 0 || minutes > TotalSlots*SlotMinutes {
		return 0, fmt.Errorf("slot time %q is outside working hours %s-%s", value, slotTimes[0], slotTimes[TotalSlots])
	}

	if minutes%SlotMinutes != 0 {
		return 0, fmt.Errorf("slot time %q is not on a %d-minute boundary", value, SlotMinutes)
	}

	return Slot(minutes / SlotMinutes), nil
}

// MustParseSlot is ParseSlot for compile-time constants.
func MustParseSlot(value string) Slot {
	slot, err := ParseSlot(value)
	if err != nil {
		panic(err)
	}

	return slot
}

// SlotFromClock maps a wall-clock time to its slot, ignoring the date part.
func SlotFromClock(t time.Time) (Slot, error) {
	return ParseSlot(t.Format(slotLayout))
}

func (s Slot) Valid() bool {
	return s >= FirstSlot && s <= EndMarker
}

func (s Slot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Slot(%d)", int(s))
	}

	return slotTimes[s]
}

// Add returns the slot n positions later. The result may be past the end marker.
func (s Slot) Add(n int) Slot {
	return s + Slot(n)
}

// SlotCount converts a duration in hours into the number of 15-minute slots it
// occupies, rounding partial slots up.
func SlotCount(durationHours float64) int {
	return int(math.Ceil(durationHours * SlotsPerHour))
}

// DurationHours is the inverse of SlotCount for whole slots.
func DurationHours(from, to Slot) float64 {
	return float64(to-from) / SlotsPerHour
}
