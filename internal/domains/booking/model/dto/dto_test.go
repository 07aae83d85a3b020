package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"icpac/internal/domains/availability"
	"icpac/internal/domains/booking/model"
	"icpac/internal/domains/booking/model/dto"
)

func day(value string) time.Time {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}

	return t
}

func TestCreateBookingRequest_ToSchedule(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateBookingRequest
		want    availability.Schedule
		wantErr bool
	}{
		{
			name: "hourly",
			req: dto.CreateBookingRequest{
				BookingType: "hourly",
				StartDate:   "2030-06-03",
				StartTime:   "09:00",
				EndTime:     "10:30",
			},
			want: availability.HourlySchedule{
				Date:     day("2030-06-03"),
				Start:    availability.MustParseSlot("09:00"),
				Duration: 1.5,
			},
		},
		{
			name: "full day without end date",
			req: dto.CreateBookingRequest{
				BookingType: "full_day",
				StartDate:   "2030-06-03",
			},
			want: availability.FullDaySchedule{Date: day("2030-06-03")},
		},
		{
			name: "weekly",
			req: dto.CreateBookingRequest{
				BookingType: "weekly",
				StartDate:   "2030-06-03",
				EndDate:     "2030-06-08",
			},
			want: availability.WeeklySchedule{StartDate: day("2030-06-03"), EndDate: day("2030-06-08")},
		},
		{
			name: "hourly ending before it starts",
			req: dto.CreateBookingRequest{
				BookingType: "hourly",
				StartDate:   "2030-06-03",
				StartTime:   "10:00",
				EndTime:     "09:00",
			},
			wantErr: true,
		},
		{
			name: "off grid time",
			req: dto.CreateBookingRequest{
				BookingType: "hourly",
				StartDate:   "2030-06-03",
				StartTime:   "09:10",
				EndTime:     "10:00",
			},
			wantErr: true,
		},
		{
			name: "multi day on a single date",
			req: dto.CreateBookingRequest{
				BookingType: "multi_day",
				StartDate:   "2030-06-03",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.ToSchedule()

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateBookingRequest{
		RoomID:            2,
		BookingType:       "hourly",
		StartDate:         "2030-06-03",
		StartTime:         "14:00",
		EndTime:           "15:00",
		Purpose:           "Seasonal forecast briefing",
		ExpectedAttendees: 12,
	}

	schedule, err := req.ToSchedule()
	require.NoError(t, err)

	booking := req.ToModel("user-1", schedule)

	assert.Len(t, booking.ID, 36)
	assert.Equal(t, int64(2), booking.RoomID)
	assert.Equal(t, "hourly", booking.BookingType)
	assert.Equal(t, day("2030-06-03"), booking.StartDate)
	assert.Equal(t, day("2030-06-03"), booking.EndDate)
	assert.Equal(t, "14:00", booking.StartTime)
	assert.Equal(t, "15:00", booking.EndTime)
	assert.Equal(t, string(availability.Pending), booking.ApprovalStatus)
	assert.Equal(t, "user-1", booking.CreatedBy)
}

func TestScheduleColumns_WholeDay(t *testing.T) {
	columns := dto.ScheduleColumns(availability.MultiDaySchedule{StartDate: day("2030-06-03"), EndDate: day("2030-06-05")})

	assert.Equal(t, map[string]any{
		model.FieldBookingType: "multi_day",
		model.FieldStartDate:   "2030-06-03",
		model.FieldEndDate:     "2030-06-05",
		model.FieldStartTime:   "08:00",
		model.FieldEndTime:     "18:00",
	}, columns)
}

func TestUpdateBookingRequest_MergeSchedule(t *testing.T) {
	current := model.Booking{
		ID:          "b-1",
		BookingType: "hourly",
		StartDate:   day("2030-06-03"),
		EndDate:     day("2030-06-03"),
		StartTime:   "09:00:00",
		EndTime:     "10:00:00",
	}

	tests := []struct {
		name string
		req  dto.UpdateBookingRequest
		want availability.Schedule
	}{
		{
			name: "moves an hourly booking to another date",
			req:  dto.UpdateBookingRequest{StartDate: "2030-06-04"},
			want: availability.HourlySchedule{
				Date:     day("2030-06-04"),
				Start:    availability.MustParseSlot("09:00"),
				Duration: 1,
			},
		},
		{
			name: "extends the end time",
			req:  dto.UpdateBookingRequest{EndTime: "11:30"},
			want: availability.HourlySchedule{
				Date:     day("2030-06-03"),
				Start:    availability.MustParseSlot("09:00"),
				Duration: 2.5,
			},
		},
		{
			name: "switches to a multi day booking",
			req:  dto.UpdateBookingRequest{BookingType: "multi_day", EndDate: "2030-06-05"},
			want: availability.MultiDaySchedule{StartDate: day("2030-06-03"), EndDate: day("2030-06-05")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.MergeSchedule(current)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUpdateBookingRequest_MergeScheduleCollapsesToSingleDay(t *testing.T) {
	current := model.Booking{
		BookingType: "multi_day",
		StartDate:   day("2030-06-03"),
		EndDate:     day("2030-06-05"),
		StartTime:   "08:00:00",
		EndTime:     "18:00:00",
	}

	req := dto.UpdateBookingRequest{BookingType: "full_day"}

	got, err := req.MergeSchedule(current)

	require.NoError(t, err)
	assert.Equal(t, availability.FullDaySchedule{Date: day("2030-06-03")}, got)
}

func TestUpdateBookingRequest_Empty(t *testing.T) {
	attendees := 4

	assert.True(t, (&dto.UpdateBookingRequest{}).Empty())
	assert.False(t, (&dto.UpdateBookingRequest{ExpectedAttendees: &attendees}).Empty())
	assert.True(t, (&dto.UpdateBookingRequest{StartTime: "10:00"}).ChangesSchedule())
	assert.False(t, (&dto.UpdateBookingRequest{Purpose: "Training"}).ChangesSchedule())
}

func TestUpdateBookingRequest_Apply(t *testing.T) {
	attendees := 30
	req := dto.UpdateBookingRequest{Purpose: "Regional workshop", ExpectedAttendees: &attendees}

	got := req.Apply(model.Booking{ID: "b-1", Purpose: "Training", ExpectedAttendees: 10, SpecialRequirements: "projector"}, "admin-1")

	assert.Equal(t, "Regional workshop", got.Purpose)
	assert.Equal(t, 30, got.ExpectedAttendees)
	assert.Equal(t, "projector", got.SpecialRequirements)
	assert.Equal(t, "admin-1", got.ModifiedBy)
}

func TestBookingResponse_FromModel(t *testing.T) {
	cancelledAt := time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC)

	var res dto.BookingResponse
	res.FromModel(model.Booking{
		ID:             "b-1",
		RoomID:         3,
		BookingType:    "hourly",
		StartDate:      day("2030-06-03"),
		EndDate:        day("2030-06-03"),
		StartTime:      "09:00:00",
		EndTime:        "10:45:00",
		ApprovalStatus: "pending",
		CancelledAt:    &cancelledAt,
	})

	assert.Equal(t, "2030-06-03", res.StartDate)
	assert.Equal(t, "09:00", res.StartTime)
	assert.Equal(t, "10:45", res.EndTime)
	assert.InDelta(t, 1.75, res.DurationHours, 0.0001)
	assert.True(t, res.Cancelled)
	assert.NotNil(t, res.CancelledAt)
}
