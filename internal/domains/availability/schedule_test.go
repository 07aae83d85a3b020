package availability_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"icpac/internal/domains/availability"
)

func day(value string) time.Time {
	d, err := availability.ParseDay(value)
	if err != nil {
		panic(err)
	}

	return d
}

func TestNewSchedule(t *testing.T) {
	nine := availability.MustParseSlot("09:00")
	ten := availability.MustParseSlot("10:00")

	tests := []struct {
		name        string
		bookingType availability.BookingType
		start, end  string
		from, to    availability.Slot
		want        availability.Schedule
		wantErr     bool
	}{
		{
			name:        "hourly",
			bookingType: availability.Hourly,
			start:       "2025-06-02",
			end:         "2025-06-02",
			from:        nine,
			to:          ten,
			want:        availability.HourlySchedule{Date: day("2025-06-02"), Start: nine, Duration: 1},
		},
		{
			name:        "hourly across dates",
			bookingType: availability.Hourly,
			start:       "2025-06-02",
			end:         "2025-06-03",
			from:        nine,
			to:          ten,
			wantErr:     true,
		},
		{
			name:        "hourly with inverted times",
			bookingType: availability.Hourly,
			start:       "2025-06-02",
			end:         "2025-06-02",
			from:        ten,
			to:          nine,
			wantErr:     true,
		},
		{
			name:        "full day",
			bookingType: availability.FullDay,
			start:       "2025-06-03",
			end:         "2025-06-03",
			want:        availability.FullDaySchedule{Date: day("2025-06-03")},
		},
		{
			name:        "full day over two dates",
			bookingType: availability.FullDay,
			start:       "2025-06-03",
			end:         "2025-06-04",
			wantErr:     true,
		},
		{
			name:        "multi day",
			bookingType: availability.MultiDay,
			start:       "2025-06-10",
			end:         "2025-06-12",
			want:        availability.MultiDaySchedule{StartDate: day("2025-06-10"), EndDate: day("2025-06-12")},
		},
		{
			name:        "multi day on one date",
			bookingType: availability.MultiDay,
			start:       "2025-06-10",
			end:         "2025-06-10",
			wantErr:     true,
		},
		{
			name:        "weekly full week",
			bookingType: availability.Weekly,
			start:       "2025-06-09",
			end:         "2025-06-15",
			want:        availability.WeeklySchedule{StartDate: day("2025-06-09"), EndDate: day("2025-06-15")},
		},
		{
			name:        "weekly too long",
			bookingType: availability.Weekly,
			start:       "2025-06-09",
			end:         "2025-06-16",
			wantErr:     true,
		},
		{
			name:        "end before start",
			bookingType: availability.MultiDay,
			start:       "2025-06-12",
			end:         "2025-06-10",
			wantErr:     true,
		},
		{
			name:        "unknown type",
			bookingType: "monthly",
			start:       "2025-06-12",
			end:         "2025-06-12",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := availability.NewSchedule(tt.bookingType, day(tt.start), day(tt.end), tt.from, tt.to)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.bookingType, got.Type())
		})
	}
}

func TestSchedule_DateRangeOrdered(t *testing.T) {
	s := availability.MultiDaySchedule{StartDate: day("2025-06-12"), EndDate: day("2025-06-10")}

	start, end := s.DateRange()
	assert.Equal(t, day("2025-06-10"), start)
	assert.Equal(t, day("2025-06-12"), end)
}

func TestDay_DropsClockAndLocation(t *testing.T) {
	nairobi := time.FixedZone("EAT", 3*60*60)

	got := availability.Day(time.Date(2025, 6, 2, 23, 30, 0, 0, nairobi))
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), got)
}

func TestRangesOverlap(t *testing.T) {
	assert.True(t, availability.RangesOverlap(day("2025-06-10"), day("2025-06-12"), day("2025-06-12"), day("2025-06-13")))
	assert.True(t, availability.RangesOverlap(day("2025-06-10"), day("2025-06-12"), day("2025-06-11"), day("2025-06-11")))
	assert.False(t, availability.RangesOverlap(day("2025-06-10"), day("2025-06-12"), day("2025-06-13"), day("2025-06-14")))
}

func TestHours(t *testing.T) {
	from, to := availability.Hours(availability.HourlySchedule{Date: day("2025-06-02"), Start: 4, Duration: 1.5})
	assert.Equal(t, "09:00", from.String())
	assert.Equal(t, "10:30", to.String())

	from, to = availability.Hours(availability.FullDaySchedule{Date: day("2025-06-02")})
	assert.Equal(t, "08:00", from.String())
	assert.Equal(t, "18:00", to.String())

	_, to = availability.Hours(availability.HourlySchedule{Date: day("2025-06-02"), Start: 36, Duration: 3})
	assert.Equal(t, availability.EndMarker, to)
}

func TestBookingType(t *testing.T) {
	assert.False(t, availability.Hourly.WholeDay())
	assert.True(t, availability.Weekly.WholeDay())
	assert.False(t, availability.BookingType("monthly").Valid())
}
