package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"icpac/config"
	"icpac/infras/otel"
	"icpac/internal/domains/availability"
	"icpac/internal/domains/availability/model/dto"
	bookingModel "icpac/internal/domains/booking/model"
	bookingRepo "icpac/internal/domains/booking/repository"
	roomModel "icpac/internal/domains/room/model"
	roomRepo "icpac/internal/domains/room/repository"
	userRepo "icpac/internal/domains/user/repository"
	"icpac/shared"
	"icpac/shared/cache"
	"icpac/shared/constant"
	"icpac/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Availability interface {
	DaySlots(ctx context.Context, roomID int64, date time.Time, filter availability.StatusFilter) (dto.DaySlotsResponse, error)
	Occupancy(ctx context.Context, roomID int64, date time.Time) (dto.OccupancyResponse, error)
	Check(ctx context.Context, req dto.CheckRequest) (dto.CheckResponse, error)
}

type serviceImpl struct {
	bookingRepo bookingRepo.Booking
	roomRepo    roomRepo.Room
	userRepo    userRepo.User
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(bookingRepo bookingRepo.Booking, roomRepo roomRepo.Room, userRepo userRepo.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Availability {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		userRepo:    userRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// SnapshotPrefix is the key prefix of every cached snapshot of roomID. Clearing it drops all of
// the room's cached dates.
func SnapshotPrefix(roomID int64) string {
	return shared.BuildCacheKey(constant.CacheAvailabilityPrefix, roomID) + ":"
}

func snapshotKey(roomID int64, generation string, start, end time.Time) string {
	return SnapshotPrefix(roomID) + generation + ":" + start.Format(time.DateOnly) + ":" + end.Format(time.DateOnly)
}

func generationKey(roomID int64) string {
	return shared.BuildCacheKey(constant.CacheAvailabilityGeneration, roomID)
}

// Invalidate retires the cached snapshots of roomID. The generation token moves first, so a
// snapshot loaded before the write and saved after it lands under a key no reader asks for.
func Invalidate(ctx context.Context, redisCache cache.RedisCache, roomID int64) {
	if err := redisCache.Save(ctx, generationKey(roomID), uuid.NewString(), 0); err != nil {
		log.Error().Err(err).Int64("room_id", roomID).Msg("failed to move availability generation")
	}

	shared.InvalidateCaches(ctx, redisCache, SnapshotPrefix(roomID))
}

func (s *serviceImpl) generation(ctx context.Context, roomID int64) string {
	var token string

	if err := s.cache.Get(ctx, generationKey(roomID), &token); err != nil {
		if !cache.IsMiss(err) {
			log.Warn().Err(err).Int64("room_id", roomID).Msg("failed to read availability generation")
		}

		return "0"
	}

	return token
}

func (s *serviceImpl) DaySlots(ctx context.Context, roomID int64, date time.Time, filter availability.StatusFilter) (res dto.DaySlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DaySlots")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !filter.Default() {
		actor, err := userRepo.LoadActor(ctx, s.userRepo)
		if err != nil {
			return res, err //nolint:wrapcheck
		}

		// rejected bookings and per-status views are administrative
		if !actor.ManagesRoom(roomID) {
			return res, failure.ResourceRestrictedError
		}
	}

	date = availability.Day(date)

	reservations, err := s.snapshot(ctx, roomID, date, date)
	if err != nil {
		return res, err
	}

	res.FromSlots(roomID, date, filter, availability.DaySlots(reservations, roomID, date, filter))

	return res, nil
}

func (s *serviceImpl) Occupancy(ctx context.Context, roomID int64, date time.Time) (res dto.OccupancyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Occupancy")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	date = availability.Day(date)

	reservations, err := s.snapshot(ctx, roomID, date, date)
	if err != nil {
		return res, err
	}

	res.FromOccupancy(roomID, date, availability.CalculateOccupancy(reservations, roomID, date))

	return res, nil
}

// Check is advisory: the booking write repeats the test under the room lock.
func (s *serviceImpl) Check(ctx context.Context, req dto.CheckRequest) (res dto.CheckResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Check")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	schedule, err := req.ToSchedule()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	start, end := schedule.DateRange()

	reservations, err := s.snapshot(ctx, req.RoomID, start, end)
	if err != nil {
		return res, err
	}

	res = dto.CheckResponse{
		RoomID:      req.RoomID,
		BookingType: string(schedule.Type()),
		StartDate:   start.Format(time.DateOnly),
		EndDate:     end.Format(time.DateOnly),
		Available:   availability.CanAccommodate(reservations, req.RoomID, schedule),
	}

	return res, nil
}

// snapshot returns the room's non-cancelled reservations touching [start, end], read through the
// redis cache. Rows that no longer parse are logged and left out.
func (s *serviceImpl) snapshot(ctx context.Context, roomID int64, start, end time.Time) ([]availability.Reservation, error) {
	var rows []bookingModel.Booking

	cacheKey := snapshotKey(roomID, s.generation(ctx, roomID), start, end)

	err := s.cache.Get(ctx, cacheKey, &rows)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for availability snapshot")

		return toReservations(rows), nil
	}

	exist, err := s.roomRepo.Exist(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room")

		return nil, fmt.Errorf("failed to check room: %w", err)
	}

	if !exist {
		return nil, failure.NotFound("room not found") // nolint:wrapcheck
	}

	rows, err = s.bookingRepo.FindOverlapping(ctx, roomID, start, end, constant.Empty)
	if err != nil {
		log.Error().Err(err).Int64("room_id", roomID).Msg("failed to load bookings")

		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, rows, s.cfg.Booking.SnapshotTTL); err != nil {
			log.Error().Err(err).Msg("failed to save availability snapshot to cache")
		}
	}()

	return toReservations(rows), nil
}

func toReservations(rows []bookingModel.Booking) []availability.Reservation {
	out := make([]availability.Reservation, 0, len(rows))

	for _, row := range rows {
		reservation, err := row.ToReservation()
		if err != nil {
			log.Warn().Err(err).Str("booking_id", row.ID).Msg("skipping unreadable booking")

			continue
		}

		out = append(out, reservation)
	}

	return out
}
