package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"icpac/internal/domains/booking/repository"
)

func TestOverlapFilter(t *testing.T) {
	start := time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2030, 6, 12, 0, 0, 0, 0, time.UTC)

	filter := repository.OverlapFilter(3, start, end, "")
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(room_bookings.room_id = :room_id AND room_bookings.cancelled_at IS NULL AND "+
		"room_bookings.start_date <= :range_end AND room_bookings.end_date >= :range_start)", where)
	assert.Equal(t, map[string]any{"room_id": int64(3), "range_end": "2030-06-12", "range_start": "2030-06-10"}, args)
}

func TestOverlapFilter_ExcludesBooking(t *testing.T) {
	day := time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC)

	filter := repository.OverlapFilter(3, day, day, "b-1")
	where, args := filter.GetWhereClause()

	assert.Contains(t, where, "room_bookings.id != :exclude_id")
	assert.Equal(t, "b-1", args["exclude_id"])
	assert.Equal(t, "2030-06-10", args["range_start"])
	assert.Equal(t, "2030-06-10", args["range_end"])
}
