package availability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"icpac/internal/domains/availability"
)

func TestSlotTimes(t *testing.T) {
	times := availability.SlotTimes()

	require.Len(t, times, availability.BoundaryCount)
	assert.Equal(t, "08:00", times[0])
	assert.Equal(t, "08:15", times[1])
	assert.Equal(t, "12:00", times[16])
	assert.Equal(t, "18:00", times[40])

	times[0] = "changed"
	assert.Equal(t, "08:00", availability.SlotTimes()[0])
}

func TestParseSlot(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    availability.Slot
		wantErr bool
	}{
		{name: "opening", value: "08:00", want: 0},
		{name: "mid morning", value: "09:30", want: 6},
		{name: "end marker", value: "18:00", want: availability.EndMarker},
		{name: "off grid", value: "09:10", wantErr: true},
		{name: "before opening", value: "07:45", wantErr: true},
		{name: "after closing", value: "18:15", wantErr: true},
		{name: "garbage", value: "nine", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := availability.ParseSlot(tt.value)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlot_RoundTrip(t *testing.T) {
	for i, value := range availability.SlotTimes() {
		slot, err := availability.ParseSlot(value)
		require.NoError(t, err)
		assert.Equal(t, availability.Slot(i), slot)
		assert.Equal(t, value, slot.String())
	}
}

func TestSlot_StringOutOfRange(t *testing.T) {
	assert.Equal(t, "Slot(41)", availability.Slot(41).String())
	assert.Equal(t, "Slot(-1)", availability.Slot(-1).String())
}

func TestSlotCount(t *testing.T) {
	assert.Equal(t, 4, availability.SlotCount(1))
	assert.Equal(t, 6, availability.SlotCount(1.5))
	assert.Equal(t, 1, availability.SlotCount(0.1))
	assert.Equal(t, 40, availability.SlotCount(10))
	assert.Equal(t, 0, availability.SlotCount(0))
	assert.InDelta(t, 1.25, availability.DurationHours(4, 9), 0.0001)
}
