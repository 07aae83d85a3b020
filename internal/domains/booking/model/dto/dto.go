package dto

import (
	"fmt"
	"icpac/internal/domains/availability"
	"icpac/internal/domains/booking/model"
	"icpac/shared"
	"icpac/shared/constant"
	gDto "icpac/shared/dto"
	gModel "icpac/shared/model"
	"icpac/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID              int64  `json:"room_id"              validate:"required,gt=0"`
	BookingType         string `json:"booking_type"         validate:"required,oneof=hourly full_day multi_day weekly"`
	StartDate           string `json:"start_date"           validate:"required,datetime=2006-01-02"`
	EndDate             string `json:"end_date"             validate:"omitempty,datetime=2006-01-02"`
	StartTime           string `json:"start_time"           validate:"required_if=BookingType hourly,omitempty,quarterhour"`
	EndTime             string `json:"end_time"             validate:"required_if=BookingType hourly,omitempty,quarterhour"`
	Purpose             string `json:"purpose"              validate:"required,max=500"`
	ExpectedAttendees   int    `json:"expected_attendees"   validate:"required,gt=0"`
	SpecialRequirements string `json:"special_requirements" validate:"omitempty,max=1000"`
}

// ToSchedule checks the request's shape.
func (c *CreateBookingRequest) ToSchedule() (availability.Schedule, error) {
	return BuildSchedule(c.BookingType, c.StartDate, c.EndDate, c.StartTime, c.EndTime)
}

func (c *CreateBookingRequest) ToModel(user string, schedule availability.Schedule) model.Booking {
	booking := model.Booking{
		ID:                  uuid.NewString(),
		RoomID:              c.RoomID,
		Purpose:             c.Purpose,
		ExpectedAttendees:   c.ExpectedAttendees,
		SpecialRequirements: c.SpecialRequirements,
		ApprovalStatus:      string(availability.Pending),
		Metadata:            gModel.NewMetadata(user, timezone.Now()),
	}

	ApplySchedule(&booking, schedule)

	return booking
}

// ApplySchedule writes the schedule's type, dates and clock times onto the booking row.
func ApplySchedule(booking *model.Booking, schedule availability.Schedule) {
	start, end := schedule.DateRange()
	from, to := availability.Hours(schedule)

	booking.BookingType = string(schedule.Type())
	booking.StartDate = start
	booking.EndDate = end
	booking.StartTime = from.String()
	booking.EndTime = to.String()
}

// ScheduleColumns is ApplySchedule as an update map.
func ScheduleColumns(schedule availability.Schedule) map[string]any {
	var row model.Booking

	ApplySchedule(&row, schedule)

	return map[string]any{
		model.FieldBookingType: row.BookingType,
		model.FieldStartDate:   row.StartDate.Format(time.DateOnly),
		model.FieldEndDate:     row.EndDate.Format(time.DateOnly),
		model.FieldStartTime:   row.StartTime,
		model.FieldEndTime:     row.EndTime,
	}
}

// BuildSchedule parses request strings into a schedule. An empty end date means a single-day booking.
func BuildSchedule(bookingType, startDate, endDate, startTime, endTime string) (availability.Schedule, error) {
	start, err := availability.ParseDay(startDate)
	if err != nil {
		return nil, err
	}

	end := start
	if endDate != constant.Empty {
		if end, err = availability.ParseDay(endDate); err != nil {
			return nil, err
		}
	}

	var from, to availability.Slot

	if availability.BookingType(bookingType) == availability.Hourly {
		if from, err = model.ParseClock(startTime); err != nil {
			return nil, err
		}

		if to, err = model.ParseClock(endTime); err != nil {
			return nil, err
		}
	}

	schedule, err := availability.NewSchedule(availability.BookingType(bookingType), start, end, from, to)
	if err != nil {
		return nil, fmt.Errorf("invalid booking schedule: %w", err)
	}

	return schedule, nil
}

type UpdateBookingRequest struct {
	BookingType         string  `db:"-"                    json:"booking_type,omitempty"         validate:"omitempty,oneof=hourly full_day multi_day weekly"`
	StartDate           string  `db:"-"                    json:"start_date,omitempty"           validate:"omitempty,datetime=2006-01-02"`
	EndDate             string  `db:"-"                    json:"end_date,omitempty"             validate:"omitempty,datetime=2006-01-02"`
	StartTime           string  `db:"-"                    json:"start_time,omitempty"           validate:"omitempty,quarterhour"`
	EndTime             string  `db:"-"                    json:"end_time,omitempty"             validate:"omitempty,quarterhour"`
	Purpose             string  `db:"purpose"              json:"purpose,omitempty"              validate:"omitempty,max=500"`
	ExpectedAttendees   *int    `db:"expected_attendees"   json:"expected_attendees,omitempty"   validate:"omitempty,gt=0"`
	SpecialRequirements *string `db:"special_requirements" json:"special_requirements,omitempty" validate:"omitempty,max=1000"`
}

func (u *UpdateBookingRequest) Empty() bool {
	return !u.ChangesSchedule() && u.Purpose == constant.Empty && u.ExpectedAttendees == nil && u.SpecialRequirements == nil
}

func (u *UpdateBookingRequest) ChangesSchedule() bool {
	return u.BookingType != constant.Empty || u.StartDate != constant.Empty || u.EndDate != constant.Empty ||
		u.StartTime != constant.Empty || u.EndTime != constant.Empty
}

// MergeSchedule overlays the requested schedule fields on the current booking. Switching to a
// single-day type without an end date collapses the range onto the start date.
func (u *UpdateBookingRequest) MergeSchedule(current model.Booking) (availability.Schedule, error) {
	bookingType := pick(u.BookingType, current.BookingType)
	startDate := pick(u.StartDate, current.StartDate.Format(time.DateOnly))
	endDate := pick(u.EndDate, current.EndDate.Format(time.DateOnly))

	if u.EndDate == constant.Empty && (u.StartDate != constant.Empty || u.BookingType != constant.Empty) {
		switch availability.BookingType(bookingType) {
		case availability.Hourly, availability.FullDay:
			endDate = startDate
		}
	}

	return BuildSchedule(bookingType, startDate, endDate, pick(u.StartTime, current.StartTime), pick(u.EndTime, current.EndTime))
}

// Apply returns current with the non-schedule fields of the request written over it.
func (u *UpdateBookingRequest) Apply(current model.Booking, user string) model.Booking {
	if u.Purpose != constant.Empty {
		current.Purpose = u.Purpose
	}

	if u.ExpectedAttendees != nil {
		current.ExpectedAttendees = *u.ExpectedAttendees
	}

	if u.SpecialRequirements != nil {
		current.SpecialRequirements = *u.SpecialRequirements
	}

	current.ModifiedAt = timezone.Now()
	current.ModifiedBy = user

	return current
}

func pick(requested, current string) string {
	if requested != constant.Empty {
		return requested
	}

	return current
}

type RejectBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type BookingResponse struct {
	ID                  string  `json:"id"`
	RoomID              int64   `json:"room_id"`
	BookingType         string  `json:"booking_type"`
	StartDate           string  `json:"start_date"`
	EndDate             string  `json:"end_date"`
	StartTime           string  `json:"start_time"`
	EndTime             string  `json:"end_time"`
	DurationHours       float64 `json:"duration_hours"`
	Purpose             string  `json:"purpose"`
	ExpectedAttendees   int     `json:"expected_attendees"`
	SpecialRequirements string  `json:"special_requirements"`
	ApprovalStatus      string  `json:"approval_status"`
	ApprovedBy          *string `json:"approved_by,omitempty"`
	ApprovedAt          *string `json:"approved_at,omitempty"`
	RejectionReason     *string `json:"rejection_reason,omitempty"`
	Cancelled           bool    `json:"cancelled"`
	CancelledAt         *string `json:"cancelled_at,omitempty"`
	CancelledBy         *string `json:"cancelled_by,omitempty"`
	CancellationReason  *string `json:"cancellation_reason,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.BookingType = model.BookingType
	r.StartDate = model.StartDate.Format(time.DateOnly)
	r.EndDate = model.EndDate.Format(time.DateOnly)
	r.StartTime = clock(model.StartTime)
	r.EndTime = clock(model.EndTime)
	r.Purpose = model.Purpose
	r.ExpectedAttendees = model.ExpectedAttendees
	r.SpecialRequirements = model.SpecialRequirements
	r.ApprovalStatus = model.ApprovalStatus
	r.ApprovedBy = model.ApprovedBy
	r.ApprovedAt = formatTime(model.ApprovedAt)
	r.RejectionReason = model.RejectionReason
	r.Cancelled = model.Cancelled()
	r.CancelledAt = formatTime(model.CancelledAt)
	r.CancelledBy = model.CancelledBy
	r.CancellationReason = model.CancellationReason
	r.Metadata.FromModel(model.Metadata)

	if from, err := availability.ParseSlot(r.StartTime); err == nil {
		if to, err := availability.ParseSlot(r.EndTime); err == nil {
			r.DurationHours = availability.DurationHours(from, to)
		}
	}
}

func clock(value string) string {
	if slot, err := model.ParseClock(value); err == nil {
		return slot.String()
	}

	return value
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := timezone.Format(*t, constant.DateFormat)

	return &formatted
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingStatsResponse counts live bookings per approval status. Cancelled bookings are counted
// apart and are not part of any status.
type BookingStatsResponse struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Cancelled int `json:"cancelled"`
}
