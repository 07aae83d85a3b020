package availability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"icpac/internal/domains/availability"
)

func TestCalculateOccupancy(t *testing.T) {
	date := "2025-06-02"

	tests := []struct {
		name         string
		reservations []availability.Reservation
		want         availability.Occupancy
	}{
		{
			name: "empty day",
			want: availability.Occupancy{TotalSlots: 40},
		},
		{
			name: "two one hour bookings",
			reservations: []availability.Reservation{
				hourly("a", roomID, date, "09:00", 1, availability.Approved),
				hourly("b", roomID, date, "14:00", 1, availability.Pending),
			},
			want: availability.Occupancy{Percentage: 20, OccupiedSlots: 8, TotalSlots: 40, PartiallyBooked: true},
		},
		{
			name: "overlapping bookings are counted once",
			reservations: []availability.Reservation{
				hourly("a", roomID, date, "09:00", 2, availability.Approved),
				hourly("b", roomID, date, "10:00", 2, availability.Pending),
			},
			want: availability.Occupancy{Percentage: 30, OccupiedSlots: 12, TotalSlots: 40, PartiallyBooked: true},
		},
		{
			name: "rejected bookings are ignored",
			reservations: []availability.Reservation{
				hourly("a", roomID, date, "09:00", 1, availability.Rejected),
			},
			want: availability.Occupancy{TotalSlots: 40},
		},
		{
			name: "other rooms and dates are ignored",
			reservations: []availability.Reservation{
				hourly("a", 2, date, "09:00", 1, availability.Approved),
				hourly("b", roomID, "2025-06-03", "09:00", 1, availability.Approved),
			},
			want: availability.Occupancy{TotalSlots: 40},
		},
		{
			name: "full day booking",
			reservations: []availability.Reservation{
				{ID: "f", RoomID: roomID, Status: availability.Pending, Schedule: availability.FullDaySchedule{Date: day(date)}},
			},
			want: availability.Occupancy{Percentage: 100, OccupiedSlots: 40, TotalSlots: 40, FullyBooked: true},
		},
		{
			name: "single slot rounds to the nearest percent",
			reservations: []availability.Reservation{
				hourly("a", roomID, date, "17:45", 0.25, availability.Approved),
			},
			want: availability.Occupancy{Percentage: 3, OccupiedSlots: 1, TotalSlots: 40, PartiallyBooked: true},
		},
		{
			name: "whole day of hourly bookings",
			reservations: []availability.Reservation{
				hourly("a", roomID, date, "08:00", 5, availability.Approved),
				hourly("b", roomID, date, "13:00", 5, availability.Pending),
			},
			want: availability.Occupancy{Percentage: 100, OccupiedSlots: 40, TotalSlots: 40, FullyBooked: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := availability.CalculateOccupancy(tt.reservations, roomID, day(date))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateOccupancy_MatchesDaySlots(t *testing.T) {
	reservations := []availability.Reservation{
		hourly("a", roomID, "2025-06-02", "08:30", 1.5, availability.Approved),
		hourly("b", roomID, "2025-06-02", "09:15", 0.75, availability.Pending),
		hourly("c", roomID, "2025-06-02", "16:00", 2, availability.Pending),
	}

	occupancy := availability.CalculateOccupancy(reservations, roomID, day("2025-06-02"))

	marked := 0

	for _, s := range availability.DaySlots(reservations, roomID, day("2025-06-02"), availability.FilterActive) {
		if s.Occupied && s.Slot < availability.EndMarker {
			marked++
		}
	}

	assert.Equal(t, marked, occupancy.OccupiedSlots)
	assert.Equal(t, 14, occupancy.OccupiedSlots)
}
