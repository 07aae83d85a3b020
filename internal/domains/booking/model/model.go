package model

import (
	"fmt"
	"icpac/internal/domains/availability"
	"icpac/shared/constant"
	"icpac/shared/model"
	"time"
)

const (
	TableName  = "room_bookings"
	EntityName = "booking"

	FieldID                  = "id"
	FieldRoomID              = "room_id"
	FieldBookingType         = "booking_type"
	FieldStartDate           = "start_date"
	FieldEndDate             = "end_date"
	FieldStartTime           = "start_time"
	FieldEndTime             = "end_time"
	FieldPurpose             = "purpose"
	FieldExpectedAttendees   = "expected_attendees"
	FieldSpecialRequirements = "special_requirements"
	FieldApprovalStatus      = "approval_status"
	FieldApprovedBy          = "approved_by"
	FieldApprovedAt          = "approved_at"
	FieldRejectionReason     = "rejection_reason"
	FieldCancelledAt         = "cancelled_at"
	FieldCancelledBy         = "cancelled_by"
	FieldCancellationReason  = "cancellation_reason"
	FieldCreatedBy           = "created_by"
)

type Booking struct {
	ID                  string     `db:"id"`
	RoomID              int64      `db:"room_id"`
	BookingType         string     `db:"booking_type"`
	StartDate           time.Time  `db:"start_date"`
	EndDate             time.Time  `db:"end_date"`
	StartTime           string     `db:"start_time"`
	EndTime             string     `db:"end_time"`
	Purpose             string     `db:"purpose"`
	ExpectedAttendees   int        `db:"expected_attendees"`
	SpecialRequirements string     `db:"special_requirements"`
	ApprovalStatus      string     `db:"approval_status"`
	ApprovedBy          *string    `db:"approved_by"`
	ApprovedAt          *time.Time `db:"approved_at"`
	RejectionReason     *string    `db:"rejection_reason"`
	CancelledAt         *time.Time `db:"cancelled_at"`
	CancelledBy         *string    `db:"cancelled_by"`
	CancellationReason  *string    `db:"cancellation_reason"`
	model.Metadata
}

func (b Booking) Cancelled() bool {
	return b.CancelledAt != nil
}

func (b Booking) Status() availability.ApprovalStatus {
	return availability.ApprovalStatus(b.ApprovalStatus)
}

// ParseClock reads a TIME column, which postgres returns as HH:MM:SS, or an HH:MM request value.
func ParseClock(value string) (availability.Slot, error) {
	if t, err := time.Parse(constant.DBClockFormat, value); err == nil {
		return availability.SlotFromClock(t)
	}

	return availability.ParseSlot(value)
}

// Schedule rebuilds the booking's time footprint from its stored columns.
func (b Booking) Schedule() (availability.Schedule, error) {
	from, err := ParseClock(b.StartTime)
	if err != nil {
		return nil, fmt.Errorf("booking %s start time: %w", b.ID, err)
	}

	to, err := ParseClock(b.EndTime)
	if err != nil {
		return nil, fmt.Errorf("booking %s end time: %w", b.ID, err)
	}

	schedule, err := availability.NewSchedule(availability.BookingType(b.BookingType), b.StartDate, b.EndDate, from, to)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", b.ID, err)
	}

	return schedule, nil
}

func (b Booking) ToReservation() (availability.Reservation, error) {
	schedule, err := b.Schedule()
	if err != nil {
		return availability.Reservation{}, err
	}

	return availability.Reservation{
		ID:       b.ID,
		RoomID:   b.RoomID,
		Status:   b.Status(),
		Schedule: schedule,
	}, nil
}
