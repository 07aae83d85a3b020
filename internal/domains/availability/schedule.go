package availability

import (
	"fmt"
	"time"
)

type BookingType string

const (
	Hourly   BookingType = "hourly"
	FullDay  BookingType = "full_day"
	MultiDay BookingType = "multi_day"
	Weekly   BookingType = "weekly"
)

// MaxWeeklySpanDays bounds a weekly booking: start and end may be at most a week apart, inclusive.
const MaxWeeklySpanDays = 7

func (t BookingType) Valid() bool {
	switch t {
	case Hourly, FullDay, MultiDay, Weekly:
		return true
	default:
		return false
	}
}

// WholeDay reports whether bookings of this type always cover 08:00-18:00.
func (t BookingType) WholeDay() bool {
	return t.Valid() && t != Hourly
}

// Day truncates t to its calendar date at midnight UTC. All schedule dates are kept in this form
// so that comparisons never depend on the wall-clock part or the location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD date.
func ParseDay(value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}

	return t, nil
}

// DaysBetween counts whole days from start to end; negative when end is earlier.
func DaysBetween(start, end time.Time) int {
	return int(Day(end).Sub(Day(start)).Hours() / 24)
}

// Schedule is the time footprint of a booking. The concrete variants are HourlySchedule,
// FullDaySchedule, MultiDaySchedule and WeeklySchedule.
type Schedule interface {
	Type() BookingType
	// DateRange returns the first and last calendar dates covered, both inclusive.
	DateRange() (start, end time.Time)
	// slotsOn returns the half-open slot interval occupied on date, if any.
	slotsOn(date time.Time) (from, to Slot, ok bool)
}

type HourlySchedule struct {
	Date     time.Time
	Start    Slot
	Duration float64 // hours
}

func (s HourlySchedule) Type() BookingType { return Hourly }

func (s HourlySchedule) DateRange() (time.Time, time.Time) {
	return Day(s.Date), Day(s.Date)
}

// End is the first slot after the booking. It may lie past EndMarker for durations that overrun
// the working day.
func (s HourlySchedule) End() Slot {
	return s.Start.Add(SlotCount(s.Duration))
}

func (s HourlySchedule) slotsOn(date time.Time) (Slot, Slot, bool) {
	if !Day(date).Equal(Day(s.Date)) {
		return 0, 0, false
	}

	return s.Start, s.End(), true
}

type FullDaySchedule struct {
	Date time.Time
}

func (s FullDaySchedule) Type() BookingType { return FullDay }

func (s FullDaySchedule) DateRange() (time.Time, time.Time) {
	return Day(s.Date), Day(s.Date)
}

func (s FullDaySchedule) slotsOn(date time.Time) (Slot, Slot, bool) {
	return wholeDaySlots(s, date)
}

type MultiDaySchedule struct {
	StartDate time.Time
	EndDate   time.Time
}

func (s MultiDaySchedule) Type() BookingType { return MultiDay }

func (s MultiDaySchedule) DateRange() (time.Time, time.Time) {
	return orderedRange(s.StartDate, s.EndDate)
}

func (s MultiDaySchedule) slotsOn(date time.Time) (Slot, Slot, bool) {
	return wholeDaySlots(s, date)
}

type WeeklySchedule struct {
	StartDate time.Time
	EndDate   time.Time
}

func (s WeeklySchedule) Type() BookingType { return Weekly }

func (s WeeklySchedule) DateRange() (time.Time, time.Time) {
	return orderedRange(s.StartDate, s.EndDate)
}

func (s WeeklySchedule) slotsOn(date time.Time) (Slot, Slot, bool) {
	return wholeDaySlots(s, date)
}

func orderedRange(a, b time.Time) (time.Time, time.Time) {
	a, b = Day(a), Day(b)
	if b.Before(a) {
		return b, a
	}

	return a, b
}

// whole-day bookings cover every slot including the 18:00 marker, so a board query on any
// boundary point reports them.
func wholeDaySlots(s Schedule, date time.Time) (Slot, Slot, bool) {
	if !CoversDate(s, date) {
		return 0, 0, false
	}

	return FirstSlot, EndMarker + 1, true
}

// CoversDate reports whether date falls inside the schedule's inclusive date range.
func CoversDate(s Schedule, date time.Time) bool {
	start, end := s.DateRange()
	day := Day(date)

	return !day.Before(start) && !day.After(end)
}

// RangesOverlap reports whether two inclusive date ranges share at least one day.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !Day(aStart).After(Day(bEnd)) && !Day(bStart).After(Day(aEnd))
}

// NewSchedule builds the variant for bookingType and checks its shape. start and end are the
// booking's dates; from and to are only read for hourly bookings.
func NewSchedule(bookingType BookingType, start, end time.Time, from, to Slot) (Schedule, error) {
	start, end = Day(start), Day(end)

	if end.Before(start) {
		return nil, fmt.Errorf("end date %s is before start date %s", end.Format(time.DateOnly), start.Format(time.DateOnly))
	}

	switch bookingType {
	case Hourly:
		if !start.Equal(end) {
			return nil, fmt.Errorf("hourly bookings must start and end on the same date")
		}

		if !from.Valid() || !to.Valid() || to <= from {
			return nil, fmt.Errorf("hourly booking needs a start time before its end time within %s-%s", FirstSlot, EndMarker)
		}

		return HourlySchedule{Date: start, Start: from, Duration: DurationHours(from, to)}, nil
	case FullDay:
		if !start.Equal(end) {
			return nil, fmt.Errorf("full day bookings cover a single date")
		}

		return FullDaySchedule{Date: start}, nil
	case MultiDay:
		if !end.After(start) {
			return nil, fmt.Errorf("multi day bookings must end after they start")
		}

		return MultiDaySchedule{StartDate: start, EndDate: end}, nil
	case Weekly:
		if DaysBetween(start, end) >= MaxWeeklySpanDays {
			return nil, fmt.Errorf("weekly bookings span at most %d days", MaxWeeklySpanDays)
		}

		return WeeklySchedule{StartDate: start, EndDate: end}, nil
	default:
		return nil, fmt.Errorf("unknown booking type %q", bookingType)
	}
}

// Hours returns the start and end slot a schedule presents to clients: the hourly window, or
// 08:00-18:00 for whole-day types.
func Hours(s Schedule) (Slot, Slot) {
	if h, ok := s.(HourlySchedule); ok {
		end := h.End()
		if end > EndMarker {
			end = EndMarker
		}

		return h.Start, end
	}

	return FirstSlot, EndMarker
}
