package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"icpac/config"
	"icpac/infras/otel"
	"icpac/internal/domains/availability"
	availabilityService "icpac/internal/domains/availability/service"
	"icpac/internal/domains/booking/model"
	"icpac/internal/domains/booking/model/dto"
	"icpac/internal/domains/booking/repository"
	roomModel "icpac/internal/domains/room/model"
	roomRepo "icpac/internal/domains/room/repository"
	userModel "icpac/internal/domains/user/model"
	userRepo "icpac/internal/domains/user/repository"
	"icpac/internal/events"
	"icpac/shared"
	"icpac/shared/cache"
	"icpac/shared/constant"
	gDto "icpac/shared/dto"
	"icpac/shared/failure"
	"icpac/shared/metrics"
	gRepository "icpac/shared/repository"
	"icpac/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Stats(ctx context.Context, filter gDto.FilterGroup) (dto.BookingStatsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, req dto.RejectBookingRequest, id string) error
	Cancel(ctx context.Context, req dto.CancelBookingRequest, id string) error
}

type serviceImpl struct {
	repo      repository.Booking
	roomRepo  roomRepo.Room
	userRepo  userRepo.User
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	publisher events.Publisher
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	userRepo userRepo.User,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	publisher events.Publisher,
) Booking {
	return &serviceImpl{
		repo:      repo,
		roomRepo:  roomRepo,
		userRepo:  userRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		publisher: publisher,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := s.signedInActor(ctx)
	if err != nil {
		return constant.Empty, err
	}

	schedule, err := req.ToSchedule()
	if err != nil {
		return constant.Empty, failure.BadRequest(err) // nolint:wrapcheck
	}

	room, err := s.bookableRoom(ctx, req.RoomID)
	if err != nil {
		return constant.Empty, err
	}

	if req.ExpectedAttendees > room.Capacity {
		return constant.Empty, failure.BadRequestFromString( // nolint:wrapcheck
			fmt.Sprintf("expected attendees (%d) exceed the room capacity of %d", req.ExpectedAttendees, room.Capacity))
	}

	if err = s.checkCalendar(schedule); err != nil {
		return constant.Empty, err
	}

	booking := req.ToModel(actor.ID, schedule)

	err = s.repo.InsertExclusive(ctx, booking, conflictCheck(booking.RoomID, schedule))
	if err != nil {
		if failure.HasCode(err, http.StatusConflict) {
			return constant.Empty, err
		}

		log.Error().Err(err).Msg("failed to create booking")

		return constant.Empty, fmt.Errorf("failed to create booking: %w", err)
	}

	metrics.IncBookingCreated(booking.BookingType)

	s.afterWrite(ctx, booking.ID, booking.RoomID, func(c context.Context) {
		s.publishBooking(c, booking, events.ActionCreated)
		s.publishAvailability(c, booking.RoomID, booking.StartDate, booking.EndDate)
	})

	return booking.ID, nil
}

// GetAll lists the bookings the caller may see: everything for a super admin, the managed rooms
// plus their own bookings for a room admin, and only their own bookings otherwise.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := s.signedInActor(ctx)
	if err != nil {
		return res, err
	}

	return s.list(ctx, req, visibleTo(actor, filter))
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := s.signedInActor(ctx)
	if err != nil {
		return res, err
	}

	return s.list(ctx, req, ownedBy(actor.ID, filter))
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := s.signedInActor(ctx)
	if err != nil {
		return res, err
	}

	return s.count(ctx, req, visibleTo(actor, filter))
}

// Stats counts the bookings the caller may see, the same set GetAll lists.
func (s *serviceImpl) Stats(ctx context.Context, filter gDto.FilterGroup) (res dto.BookingStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := s.signedInActor(ctx)
	if err != nil {
		return res, err
	}

	visible := visibleTo(actor, filter)

	for status, dest := range map[availability.ApprovalStatus]*int{
		availability.Pending:  &res.Pending,
		availability.Approved: &res.Approved,
		availability.Rejected: &res.Rejected,
	} {
		if *dest, err = s.count(ctx, gDto.QueryParams{}, and(visible, withStatus(status))); err != nil {
			return res, err
		}
	}

	cancelled := gDto.FilterGroup{
		Filters: []any{gDto.Filter{Field: model.FieldCancelledAt, Operator: gDto.FilterIsNotNull, Table: model.TableName}},
	}

	if res.Cancelled, err = s.count(ctx, gDto.QueryParams{}, and(visible, cancelled)); err != nil {
		return res, err
	}

	res.Total = res.Pending + res.Approved + res.Rejected + res.Cancelled

	return res, nil
}

func withStatus(status availability.ApprovalStatus) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldApprovalStatus, Value: string(status), Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldCancelledAt, Operator: gDto.FilterIsNull, Table: model.TableName},
		},
	}
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := s.signedInActor(ctx)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err != nil {
		var booking model.Booking

		booking, err = s.load(ctx, id)
		if err != nil {
			return res, err
		}

		res.FromModel(booking)

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save booking to cache")
			}
		}()
	} else {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")
	}

	if res.CreatedBy != actor.ID && !actor.ManagesRoom(res.RoomID) {
		return dto.BookingResponse{}, failure.ResourceRestrictedError
	}

	return res, nil
}

// Update edits a live booking. A schedule change is re-checked against the room's other
// bookings, and an approved booking whose schedule moves goes back to pending.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Empty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	actor, err := s.signedInActor(ctx)
	if err != nil {
		return err
	}

	current, err := s.loadLive(ctx, id)
	if err != nil {
		return err
	}

	if current.CreatedBy != actor.ID && !actor.ManagesRoom(current.RoomID) {
		return failure.Forbidden("you can only edit your own bookings") // nolint:wrapcheck
	}

	if current.Status() == availability.Rejected {
		return failure.Conflict("rejected bookings cannot be edited") // nolint:wrapcheck
	}

	if req.ExpectedAttendees != nil {
		room, err := s.bookableRoom(ctx, current.RoomID)
		if err != nil {
			return err
		}

		if *req.ExpectedAttendees > room.Capacity {
			return failure.BadRequestFromString( // nolint:wrapcheck
				fmt.Sprintf("expected attendees (%d) exceed the room capacity of %d", *req.ExpectedAttendees, room.Capacity))
		}
	}

	updatedFields := shared.TransformFields(req, actor.ID)

	if !req.ChangesSchedule() {
		if err = s.repo.Update(ctx, updatedFields, liveByID(id)); err != nil {
			if errors.Is(err, gRepository.ErrNoRowsUpdated) {
				return failure.Conflict("the booking was cancelled meanwhile") // nolint:wrapcheck
			}

			log.Error().Err(err).Msg("failed to update booking")

			return fmt.Errorf("failed to update booking: %w", err)
		}

		updated := req.Apply(current, actor.ID)

		s.afterWrite(ctx, id, current.RoomID, func(c context.Context) {
			s.publishBooking(c, updated, events.ActionUpdated)
		})

		return nil
	}

	schedule, err := req.MergeSchedule(current)
	if err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = s.checkCalendar(schedule); err != nil {
		return err
	}

	for field, value := range dto.ScheduleColumns(schedule) {
		updatedFields[field] = value
	}

	reverted := current.Status() == availability.Approved
	if reverted {
		updatedFields[model.FieldApprovalStatus] = string(availability.Pending)
		updatedFields[model.FieldApprovedBy] = nil
		updatedFields[model.FieldApprovedAt] = nil
	}

	start, end := schedule.DateRange()

	err = s.repo.UpdateExclusive(ctx, current, start, end, updatedFields, conflictCheck(current.RoomID, schedule))
	if err != nil {
		if failure.HasCode(err, http.StatusConflict) {
			return err
		}

		if errors.Is(err, gRepository.ErrNoRowsUpdated) {
			return failure.Conflict("the booking was cancelled meanwhile") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update booking schedule")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	updated := req.Apply(current, actor.ID)
	dto.ApplySchedule(&updated, schedule)

	if reverted {
		updated.ApprovalStatus = string(availability.Pending)
		updated.ApprovedBy = nil
		updated.ApprovedAt = nil
	}

	s.afterWrite(ctx, id, current.RoomID, func(c context.Context) {
		s.publishBooking(c, updated, events.ActionUpdated)
		s.publishAvailability(c, current.RoomID, earliest(current.StartDate, start), latest(current.EndDate, end))

		if reverted {
			s.publisher.Publish(c, current.RoomID, events.TypeBookingStatusChange, events.BookingStatusChange{
				BookingID:      id,
				RoomID:         current.RoomID,
				PreviousStatus: string(availability.Approved),
				Status:         string(availability.Pending),
				ChangedBy:      actor.ID,
				Reason:         "schedule changed",
			})
		}
	})

	return nil
}

func (s *serviceImpl) Approve(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.decide(ctx, id, availability.Approved, constant.Empty)
}

func (s *serviceImpl) Reject(ctx context.Context, req dto.RejectBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.decide(ctx, id, availability.Rejected, req.Reason)
}

// decide moves a pending booking to approved or rejected on behalf of a manager of its room.
func (s *serviceImpl) decide(ctx context.Context, id string, next availability.ApprovalStatus, reason string) error {
	actor, err := s.signedInActor(ctx)
	if err != nil {
		return err
	}

	current, err := s.loadLive(ctx, id)
	if err != nil {
		return err
	}

	if !actor.ManagesRoom(current.RoomID) {
		return failure.Forbidden("you do not manage this room") // nolint:wrapcheck
	}

	if _, err = current.Status().Transition(next); err != nil {
		return failure.Conflict(err.Error()) // nolint:wrapcheck
	}

	now := timezone.Now()
	updatedFields := map[string]any{
		model.FieldApprovalStatus: string(next),
		constant.FieldModifiedAt:  now,
		constant.FieldModifiedBy:  actor.ID,
	}

	if next == availability.Approved {
		updatedFields[model.FieldApprovedBy] = actor.ID
		updatedFields[model.FieldApprovedAt] = now
	} else {
		updatedFields[model.FieldRejectionReason] = optional(reason)
	}

	if err = s.repo.Update(ctx, updatedFields, pendingByID(id)); err != nil {
		if errors.Is(err, gRepository.ErrNoRowsUpdated) {
			return failure.Conflict("the booking was decided by someone else") // nolint:wrapcheck
		}

		log.Error().Err(err).Str("status", string(next)).Msg("failed to change booking status")

		return fmt.Errorf("failed to change booking status: %w", err)
	}

	metrics.IncApprovalTransition(string(next))

	s.afterWrite(ctx, id, current.RoomID, func(c context.Context) {
		s.publisher.Publish(c, current.RoomID, events.TypeBookingStatusChange, events.BookingStatusChange{
			BookingID:      id,
			RoomID:         current.RoomID,
			PreviousStatus: current.ApprovalStatus,
			Status:         string(next),
			ChangedBy:      actor.ID,
			Reason:         reason,
		})

		if next == availability.Rejected {
			s.publishAvailability(c, current.RoomID, current.StartDate, current.EndDate)
		}
	})

	return nil
}

// Cancel is a soft delete: the row stays for the history but stops occupying the room.
func (s *serviceImpl) Cancel(ctx context.Context, req dto.CancelBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := s.signedInActor(ctx)
	if err != nil {
		return err
	}

	current, err := s.loadLive(ctx, id)
	if err != nil {
		return err
	}

	if current.CreatedBy != actor.ID && !actor.ManagesRoom(current.RoomID) {
		return failure.Forbidden("you can only cancel your own bookings") // nolint:wrapcheck
	}

	now := timezone.Now()
	updatedFields := map[string]any{
		model.FieldCancelledAt:        now,
		model.FieldCancelledBy:        actor.ID,
		model.FieldCancellationReason: optional(req.Reason),
		constant.FieldModifiedAt:      now,
		constant.FieldModifiedBy:      actor.ID,
	}

	if err = s.repo.Update(ctx, updatedFields, liveByID(id)); err != nil {
		if errors.Is(err, gRepository.ErrNoRowsUpdated) {
			return failure.Conflict("the booking is already cancelled") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	cancelled := current
	cancelled.CancelledAt = &now
	cancelled.CancelledBy = &actor.ID
	cancelled.CancellationReason = optional(req.Reason)
	cancelled.ModifiedAt = now
	cancelled.ModifiedBy = actor.ID

	s.afterWrite(ctx, id, current.RoomID, func(c context.Context) {
		s.publishBooking(c, cancelled, events.ActionCancelled)
		s.publishAvailability(c, current.RoomID, current.StartDate, current.EndDate)
	})

	return nil
}

func (s *serviceImpl) signedInActor(ctx context.Context) (userModel.Actor, error) {
	actor, err := userRepo.LoadActor(ctx, s.userRepo)
	if err != nil {
		return actor, err //nolint:wrapcheck
	}

	if actor.Anonymous() {
		return actor, failure.Unauthorized("sign in to manage bookings") // nolint:wrapcheck
	}

	return actor, nil
}

func (s *serviceImpl) bookableRoom(ctx context.Context, roomID int64) (roomModel.Room, error) {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == 0 {
		return room, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if !room.Bookable() {
		return room, failure.BadRequestFromString("room is not available for booking") // nolint:wrapcheck
	}

	return room, nil
}

// checkCalendar refuses Sundays at either end of the range and dates already gone, unless the
// configuration allows them.
func (s *serviceImpl) checkCalendar(schedule availability.Schedule) error {
	start, end := schedule.DateRange()

	if !s.cfg.Booking.AllowSunday && (start.Weekday() == time.Sunday || end.Weekday() == time.Sunday) {
		return failure.BadRequestFromString("bookings cannot start or end on a Sunday") // nolint:wrapcheck
	}

	if !s.cfg.Booking.AllowPastDates && start.Before(timezone.Today()) {
		return failure.BadRequestFromString("bookings cannot start in the past") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) loadLive(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.load(ctx, id)
	if err != nil {
		return booking, err
	}

	if booking.Cancelled() {
		return booking, failure.Conflict("booking has been cancelled") // nolint:wrapcheck
	}

	return booking, nil
}

// afterWrite drops the room's availability snapshots before returning, so the next board read
// sees the write, then refreshes list caches and publishes in the background.
func (s *serviceImpl) afterWrite(ctx context.Context, id string, roomID int64, publish func(context.Context)) {
	availabilityService.Invalidate(ctx, s.cache, roomID)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)

		publish(c)
	}()
}

func (s *serviceImpl) publishBooking(ctx context.Context, booking model.Booking, action string) {
	var res dto.BookingResponse
	res.FromModel(booking)

	s.publisher.Publish(ctx, booking.RoomID, events.TypeBookingUpdate, events.BookingUpdate{
		Action:  action,
		RoomID:  booking.RoomID,
		Booking: res,
	})
}

func (s *serviceImpl) publishAvailability(ctx context.Context, roomID int64, start, end time.Time) {
	s.publisher.Publish(ctx, roomID, events.TypeRoomAvailabilityUpdate, events.RoomAvailabilityUpdate{
		RoomID:    roomID,
		StartDate: start.Format(time.DateOnly),
		EndDate:   end.Format(time.DateOnly),
	})
}

// conflictCheck runs the availability engine over the rows the repository locked.
func conflictCheck(roomID int64, schedule availability.Schedule) repository.ConflictCheck {
	return func(existing []model.Booking) error {
		reservations := make([]availability.Reservation, 0, len(existing))

		for _, row := range existing {
			reservation, err := row.ToReservation()
			if err != nil {
				return fmt.Errorf("failed to read existing booking: %w", err)
			}

			reservations = append(reservations, reservation)
		}

		if availability.CanAccommodate(reservations, roomID, schedule) {
			return nil
		}

		metrics.IncBookingConflict(string(schedule.Type()))

		if schedule.Type() == availability.Hourly {
			return failure.Conflict("the room is already booked during the requested time") // nolint:wrapcheck
		}

		return failure.Conflict("the room already has bookings on the requested dates") // nolint:wrapcheck
	}
}

func visibleTo(actor userModel.Actor, filter gDto.FilterGroup) gDto.FilterGroup {
	switch {
	case actor.IsSuperAdmin():
		return filter
	case actor.Role == constant.RoleRoomAdmin && len(actor.ManagedRooms) > 0:
		return and(filter, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{Field: model.FieldRoomID, Value: actor.ManagedRooms, Operator: gDto.FilterOperatorIn, Table: model.TableName},
				gDto.Filter{Field: model.FieldCreatedBy, Value: actor.ID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			},
		})
	default:
		return ownedBy(actor.ID, filter)
	}
}

func ownedBy(userID string, filter gDto.FilterGroup) gDto.FilterGroup {
	return and(filter, gDto.FilterGroup{
		Filters: []any{gDto.Filter{Field: model.FieldCreatedBy, Value: userID, Operator: gDto.FilterOperatorEq, Table: model.TableName}},
	})
}

func and(filter, scope gDto.FilterGroup) gDto.FilterGroup {
	if len(filter.Filters) == 0 {
		return scope
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: []any{filter, scope}}
}

func liveByID(id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldCancelledAt, Operator: gDto.FilterIsNull, Table: model.TableName},
		},
	}
}

// pendingByID guards a decision against a concurrent one on the same booking.
func pendingByID(id string) gDto.FilterGroup {
	filter := liveByID(id)
	filter.Filters = append(filter.Filters, gDto.Filter{
		ArgName:  "current_" + model.FieldApprovalStatus,
		Field:    model.FieldApprovalStatus,
		Value:    string(availability.Pending),
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})

	return filter
}

func optional(value string) *string {
	if value == constant.Empty {
		return nil
	}

	return &value
}

func earliest(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}

	return a
}

func latest(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}

	return a
}
