package service_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"icpac/config"
	otelMocks "icpac/infras/otel/mocks"
	"icpac/internal/domains/availability"
	bookingMocks "icpac/internal/domains/booking/mocks"
	"icpac/internal/domains/booking/model"
	"icpac/internal/domains/booking/model/dto"
	"icpac/internal/domains/booking/repository"
	"icpac/internal/domains/booking/service"
	roomMocks "icpac/internal/domains/room/mocks"
	roomModel "icpac/internal/domains/room/model"
	userMocks "icpac/internal/domains/user/mocks"
	userModel "icpac/internal/domains/user/model"
	"icpac/internal/events"
	"icpac/shared/cache"
	"icpac/shared/constant"
	gDto "icpac/shared/dto"
	"icpac/shared/failure"
	gModel "icpac/shared/model"
	gRepository "icpac/shared/repository"
)

const roomID int64 = 3

var (
	monday = time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC)
	sunday = time.Date(2030, 6, 2, 0, 0, 0, 0, time.UTC)

	owner      = userModel.User{ID: "user-1", Role: constant.RoleUser, Active: true}
	stranger   = userModel.User{ID: "user-2", Role: constant.RoleUser, Active: true}
	roomAdmin  = userModel.User{ID: "admin-3", Role: constant.RoleRoomAdmin, ManagedRooms: pq.Int64Array{roomID}, Active: true}
	otherAdmin = userModel.User{ID: "admin-9", Role: constant.RoleRoomAdmin, ManagedRooms: pq.Int64Array{9}, Active: true}
	superAdmin = userModel.User{ID: "root", Role: constant.RoleSuperAdmin, Active: true}

	boardroom = roomModel.Room{ID: roomID, Name: "Situation Room", Capacity: 20, Active: true}
)

type published struct {
	eventType events.Type
	data      any
}

type recorder struct {
	mu       sync.Mutex
	messages []published
}

func (r *recorder) Publish(_ context.Context, _ int64, eventType events.Type, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, published{eventType: eventType, data: data})
}

func (r *recorder) types() []events.Type {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]events.Type, len(r.messages))
	for i, m := range r.messages {
		out[i] = m.eventType
	}

	return out
}

func (r *recorder) find(eventType events.Type) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.messages {
		if m.eventType == eventType {
			return m.data, true
		}
	}

	return nil, false
}

type fixture struct {
	repo      *bookingMocks.MockBooking
	rooms     *roomMocks.MockRoom
	users     *userMocks.MockUser
	redis     *miniredis.Miniredis
	publisher *recorder
	cfg       *config.Config
	svc       service.Booking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	otel := otelMocks.NewOtel()

	f := &fixture{
		repo:      bookingMocks.NewMockBooking(ctrl),
		rooms:     roomMocks.NewMockRoom(ctrl),
		users:     userMocks.NewMockUser(ctrl),
		redis:     server,
		publisher: &recorder{},
		cfg:       &config.Config{},
	}
	f.cfg.Cache.TTL = 60
	f.svc = service.New(f.repo, f.rooms, f.users, f.cfg, cache.NewRedisCache(client, otel), otel, f.publisher)

	return f
}

func (f *fixture) as(user userModel.User) context.Context {
	f.users.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(user, nil)

	return context.WithValue(context.Background(), constant.ContextKeyUserID, user.ID)
}

func hourly(id, from, to, status string) model.Booking {
	return model.Booking{
		ID:             id,
		RoomID:         roomID,
		BookingType:    string(availability.Hourly),
		StartDate:      monday,
		EndDate:        monday,
		StartTime:      from,
		EndTime:        to,
		ApprovalStatus: status,
		Metadata:       gModel.Metadata{CreatedBy: owner.ID},
	}
}

func hourlyRequest(from, to string) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		RoomID:            roomID,
		BookingType:       string(availability.Hourly),
		StartDate:         monday.Format(time.DateOnly),
		StartTime:         from,
		EndTime:           to,
		Purpose:           "Climate outlook forum",
		ExpectedAttendees: 10,
	}
}

func TestBookingService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := f.as(owner)

	require.NoError(t, f.redis.Set("availability:3:0:2030-06-03:2030-06-03", "[]"))

	f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(boardroom, nil)
	f.repo.EXPECT().
		InsertExclusive(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, booking model.Booking, check repository.ConflictCheck) error {
			assert.Equal(t, roomID, booking.RoomID)
			assert.Equal(t, "hourly", booking.BookingType)
			assert.Equal(t, "10:00", booking.StartTime)
			assert.Equal(t, "11:00", booking.EndTime)
			assert.Equal(t, "pending", booking.ApprovalStatus)
			assert.Equal(t, owner.ID, booking.CreatedBy)

			return check([]model.Booking{hourly("b-0", "09:00:00", "10:00:00", "approved")})
		})

	id, err := f.svc.Create(ctx, hourlyRequest("10:00", "11:00"))

	require.NoError(t, err)
	assert.Len(t, id, 36)
	assert.False(t, f.redis.Exists("availability:3:0:2030-06-03:2030-06-03"), "snapshot must be dropped before returning")
	assert.True(t, f.redis.Exists("availability_generation:3"), "snapshot generation must move before returning")

	assert.Eventually(t, func() bool {
		return len(f.publisher.types()) == 2
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []events.Type{events.TypeBookingUpdate, events.TypeRoomAvailabilityUpdate}, f.publisher.types())

	data, ok := f.publisher.find(events.TypeBookingUpdate)
	require.True(t, ok)
	assert.Equal(t, events.ActionCreated, data.(events.BookingUpdate).Action)
}

func TestBookingService_CreateConflict(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.CreateBookingRequest
		existing []model.Booking
	}{
		{
			name:     "overlapping hourly booking",
			req:      hourlyRequest("09:30", "10:30"),
			existing: []model.Booking{hourly("b-0", "09:00:00", "10:00:00", "pending")},
		},
		{
			name: "full day over an hourly booking",
			req: dto.CreateBookingRequest{
				RoomID:            roomID,
				BookingType:       string(availability.FullDay),
				StartDate:         monday.Format(time.DateOnly),
				Purpose:           "Annual review",
				ExpectedAttendees: 5,
			},
			existing: []model.Booking{hourly("b-0", "16:00:00", "17:00:00", "approved")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := f.as(owner)

			f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(boardroom, nil)
			f.repo.EXPECT().
				InsertExclusive(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ model.Booking, check repository.ConflictCheck) error {
					return check(tt.existing)
				})

			_, err := f.svc.Create(ctx, tt.req)

			assert.Equal(t, http.StatusConflict, failure.GetCode(err))
			assert.Empty(t, f.publisher.types())
		})
	}
}

func TestBookingService_CreateRejected(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(req *dto.CreateBookingRequest)
		room     *roomModel.Room
		wantCode int
	}{
		{
			name:     "sunday",
			mutate:   func(req *dto.CreateBookingRequest) { req.StartDate = sunday.Format(time.DateOnly) },
			room:     &boardroom,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "past date",
			mutate:   func(req *dto.CreateBookingRequest) { req.StartDate = "2020-01-06" },
			room:     &boardroom,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "over capacity",
			mutate:   func(req *dto.CreateBookingRequest) { req.ExpectedAttendees = 21 },
			room:     &boardroom,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "inactive room",
			mutate:   func(*dto.CreateBookingRequest) {},
			room:     &roomModel.Room{ID: roomID, Capacity: 20},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown room",
			mutate:   func(*dto.CreateBookingRequest) {},
			room:     &roomModel.Room{},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "end before start",
			mutate:   func(req *dto.CreateBookingRequest) { req.EndTime = "09:00" },
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := f.as(owner)

			if tt.room != nil {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(*tt.room, nil)
			}

			req := hourlyRequest("10:00", "11:00")
			tt.mutate(&req)

			_, err := f.svc.Create(ctx, req)

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestBookingService_CreateOnSundayWhenAllowed(t *testing.T) {
	f := newFixture(t)
	f.cfg.Booking.AllowSunday = true
	ctx := f.as(owner)

	f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(boardroom, nil)
	f.repo.EXPECT().InsertExclusive(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	req := hourlyRequest("10:00", "11:00")
	req.StartDate = sunday.Format(time.DateOnly)

	_, err := f.svc.Create(ctx, req)

	assert.NoError(t, err)
}

func TestBookingService_CreateRequiresSignIn(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), hourlyRequest("10:00", "11:00"))

	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}

func TestBookingService_TracesReturnedErrors(t *testing.T) {
	f := newFixture(t)
	spans := otelMocks.NewRecorder()
	svc := service.New(f.repo, f.rooms, f.users, f.cfg, cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: f.redis.Addr()}), spans), spans, f.publisher)

	_, err := svc.Create(context.Background(), hourlyRequest("10:00", "11:00"))

	require.Error(t, err)
	assert.Equal(t, []error{err}, spans.Errors(constant.OtelServiceScopeName+".Create"))
}

func TestBookingService_Approve(t *testing.T) {
	tests := []struct {
		name     string
		actor    userModel.User
		current  model.Booking
		wantCode int
	}{
		{
			name:    "room admin approves a pending booking",
			actor:   roomAdmin,
			current: hourly("b-1", "09:00:00", "10:00:00", "pending"),
		},
		{
			name:    "super admin approves any room",
			actor:   superAdmin,
			current: hourly("b-1", "09:00:00", "10:00:00", "pending"),
		},
		{
			name:     "approved bookings are terminal",
			actor:    roomAdmin,
			current:  hourly("b-1", "09:00:00", "10:00:00", "approved"),
			wantCode: http.StatusConflict,
		},
		{
			name:     "rejected bookings are terminal",
			actor:    roomAdmin,
			current:  hourly("b-1", "09:00:00", "10:00:00", "rejected"),
			wantCode: http.StatusConflict,
		},
		{
			name:     "admins of other rooms may not decide",
			actor:    otherAdmin,
			current:  hourly("b-1", "09:00:00", "10:00:00", "pending"),
			wantCode: http.StatusForbidden,
		},
		{
			name:     "owners may not approve themselves",
			actor:    owner,
			current:  hourly("b-1", "09:00:00", "10:00:00", "pending"),
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := f.as(tt.actor)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.current, nil)

			if tt.wantCode == 0 {
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
						assert.Equal(t, "approved", fields[model.FieldApprovalStatus])
						assert.Equal(t, tt.actor.ID, fields[model.FieldApprovedBy])
						assert.NotNil(t, fields[model.FieldApprovedAt])

						where, args := filter.GetWhereClause()
						assert.Contains(t, where, "approval_status = :current_approval_status")
						assert.Equal(t, "pending", args["current_approval_status"])
						assert.NotContains(t, args, model.FieldApprovalStatus)

						return nil
					})
			}

			err := f.svc.Approve(ctx, "b-1")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Eventually(t, func() bool {
				_, ok := f.publisher.find(events.TypeBookingStatusChange)

				return ok
			}, time.Second, 10*time.Millisecond)

			data, _ := f.publisher.find(events.TypeBookingStatusChange)
			assert.Equal(t, events.BookingStatusChange{
				BookingID:      "b-1",
				RoomID:         roomID,
				PreviousStatus: "pending",
				Status:         "approved",
				ChangedBy:      tt.actor.ID,
			}, data)
		})
	}
}

func TestBookingService_Reject(t *testing.T) {
	f := newFixture(t)
	ctx := f.as(roomAdmin)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hourly("b-1", "09:00:00", "10:00:00", "pending"), nil)
	f.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, "rejected", fields[model.FieldApprovalStatus])

			reason, ok := fields[model.FieldRejectionReason].(*string)
			require.True(t, ok)
			assert.Equal(t, "room reserved for the council", *reason)
			assert.NotContains(t, fields, model.FieldApprovedBy)

			return nil
		})

	err := f.svc.Reject(ctx, dto.RejectBookingRequest{Reason: "room reserved for the council"}, "b-1")

	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		_, ok := f.publisher.find(events.TypeRoomAvailabilityUpdate)

		return ok
	}, time.Second, 10*time.Millisecond)
}

func TestBookingService_Cancel(t *testing.T) {
	cancelledAt := monday.Add(-time.Hour)
	cancelled := hourly("b-1", "09:00:00", "10:00:00", "approved")
	cancelled.CancelledAt = &cancelledAt

	tests := []struct {
		name     string
		actor    userModel.User
		current  model.Booking
		wantCode int
	}{
		{
			name:    "owner cancels",
			actor:   owner,
			current: hourly("b-1", "09:00:00", "10:00:00", "approved"),
		},
		{
			name:    "room admin cancels",
			actor:   roomAdmin,
			current: hourly("b-1", "09:00:00", "10:00:00", "pending"),
		},
		{
			name:     "other users may not cancel",
			actor:    stranger,
			current:  hourly("b-1", "09:00:00", "10:00:00", "pending"),
			wantCode: http.StatusForbidden,
		},
		{
			name:     "already cancelled",
			actor:    owner,
			current:  cancelled,
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := f.as(tt.actor)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.current, nil)

			if tt.wantCode == 0 {
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.NotNil(t, fields[model.FieldCancelledAt])
						assert.Equal(t, tt.actor.ID, fields[model.FieldCancelledBy])
						assert.Nil(t, fields[model.FieldCancellationReason])

						return nil
					})
			}

			err := f.svc.Cancel(ctx, dto.CancelBookingRequest{}, "b-1")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Eventually(t, func() bool {
				data, ok := f.publisher.find(events.TypeBookingUpdate)

				return ok && data.(events.BookingUpdate).Action == events.ActionCancelled
			}, time.Second, 10*time.Millisecond)
		})
	}
}

func TestBookingService_StaleWrite(t *testing.T) {
	stale := fmt.Errorf("failed to update data (booking): %w", gRepository.ErrNoRowsUpdated)

	tests := []struct {
		name  string
		actor userModel.User
		call  func(svc service.Booking, ctx context.Context) error
	}{
		{
			name:  "approve after a concurrent decision",
			actor: roomAdmin,
			call:  func(svc service.Booking, ctx context.Context) error { return svc.Approve(ctx, "b-1") },
		},
		{
			name:  "reject after a concurrent decision",
			actor: roomAdmin,
			call: func(svc service.Booking, ctx context.Context) error {
				return svc.Reject(ctx, dto.RejectBookingRequest{}, "b-1")
			},
		},
		{
			name:  "cancel after a concurrent cancel",
			actor: owner,
			call: func(svc service.Booking, ctx context.Context) error {
				return svc.Cancel(ctx, dto.CancelBookingRequest{}, "b-1")
			},
		},
		{
			name:  "edit after a concurrent cancel",
			actor: owner,
			call: func(svc service.Booking, ctx context.Context) error {
				return svc.Update(ctx, dto.UpdateBookingRequest{Purpose: "Regional climate outlook"}, "b-1")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := f.as(tt.actor)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hourly("b-1", "09:00:00", "10:00:00", "pending"), nil)
			f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(stale)

			err := tt.call(f.svc, ctx)

			assert.Equal(t, http.StatusConflict, failure.GetCode(err))
			assert.Never(t, func() bool { return len(f.publisher.types()) > 0 }, 100*time.Millisecond, 10*time.Millisecond)
		})
	}
}

func TestBookingService_UpdateScheduleRevertsApproval(t *testing.T) {
	f := newFixture(t)
	ctx := f.as(owner)

	current := hourly("b-1", "09:00:00", "10:00:00", "approved")

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
	f.repo.EXPECT().
		UpdateExclusive(gomock.Any(), current, monday, monday, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ model.Booking, _, _ time.Time, fields map[string]any, check repository.ConflictCheck) error {
			assert.Equal(t, "pending", fields[model.FieldApprovalStatus])
			assert.Nil(t, fields[model.FieldApprovedBy])
			assert.Equal(t, "11:00", fields[model.FieldStartTime])
			assert.Equal(t, "12:00", fields[model.FieldEndTime])

			return check([]model.Booking{hourly("b-2", "12:00:00", "13:00:00", "approved")})
		})

	err := f.svc.Update(ctx, dto.UpdateBookingRequest{StartTime: "11:00", EndTime: "12:00"}, "b-1")

	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		data, ok := f.publisher.find(events.TypeBookingStatusChange)

		return ok && data.(events.BookingStatusChange).Status == "pending"
	}, time.Second, 10*time.Millisecond)
}

func TestBookingService_UpdateScheduleConflict(t *testing.T) {
	f := newFixture(t)
	ctx := f.as(owner)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hourly("b-1", "09:00:00", "10:00:00", "pending"), nil)
	f.repo.EXPECT().
		UpdateExclusive(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ model.Booking, _, _ time.Time, _ map[string]any, check repository.ConflictCheck) error {
			return check([]model.Booking{hourly("b-2", "10:00:00", "11:00:00", "pending")})
		})

	err := f.svc.Update(ctx, dto.UpdateBookingRequest{EndTime: "10:30"}, "b-1")

	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

func TestBookingService_UpdateDetails(t *testing.T) {
	f := newFixture(t)
	ctx := f.as(owner)

	attendees := 25

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hourly("b-1", "09:00:00", "10:00:00", "approved"), nil)
	f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(boardroom, nil)

	err := f.svc.Update(ctx, dto.UpdateBookingRequest{ExpectedAttendees: &attendees}, "b-1")

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestBookingService_UpdatePurposeKeepsApproval(t *testing.T) {
	f := newFixture(t)
	ctx := f.as(owner)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hourly("b-1", "09:00:00", "10:00:00", "approved"), nil)
	f.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, "Drought early warning workshop", fields[model.FieldPurpose])
			assert.NotContains(t, fields, model.FieldApprovalStatus)

			return nil
		})

	err := f.svc.Update(ctx, dto.UpdateBookingRequest{Purpose: "Drought early warning workshop"}, "b-1")

	assert.NoError(t, err)
}

func TestBookingService_UpdateEmpty(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Update(context.Background(), dto.UpdateBookingRequest{}, "b-1")

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestBookingService_Get(t *testing.T) {
	t.Run("owner reads and caches", func(t *testing.T) {
		f := newFixture(t)
		ctx := f.as(owner)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hourly("b-1", "09:00:00", "10:00:00", "pending"), nil)

		res, err := f.svc.Get(ctx, "b-1")

		require.NoError(t, err)
		assert.Equal(t, "b-1", res.ID)
		assert.InDelta(t, 1.0, res.DurationHours, 0.0001)
		assert.Eventually(t, func() bool {
			return f.redis.Exists("booking:get:b-1")
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("strangers are refused", func(t *testing.T) {
		f := newFixture(t)
		ctx := f.as(stranger)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hourly("b-1", "09:00:00", "10:00:00", "pending"), nil)

		_, err := f.svc.Get(ctx, "b-1")

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newFixture(t)
		ctx := f.as(owner)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Get(ctx, "b-404")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_GetAllScopesByRole(t *testing.T) {
	tests := []struct {
		name      string
		actor     userModel.User
		contains  []string
		unchanged bool
	}{
		{
			name:      "super admin sees everything",
			actor:     superAdmin,
			unchanged: true,
		},
		{
			name:     "room admin sees managed rooms and own bookings",
			actor:    roomAdmin,
			contains: []string{"room_bookings.room_id IN (:room_id_0)", "room_bookings.created_by = :created_by"},
		},
		{
			name:     "users see their own bookings",
			actor:    owner,
			contains: []string{"room_bookings.created_by = :created_by"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := f.as(tt.actor)

			filter := gDto.FilterGroup{
				Filters: []any{gDto.Filter{Field: model.FieldCancelledAt, Operator: gDto.FilterIsNull, Table: model.TableName}},
			}
			params := gDto.QueryParams{Page: 1, Limit: 10}

			var scoped gDto.FilterGroup

			f.repo.EXPECT().
				Count(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
					scoped = filter

					return 1, nil
				})
			f.repo.EXPECT().
				GetAll(gomock.Any(), params, gomock.Any()).
				Return([]model.Booking{hourly("b-1", "09:00:00", "10:00:00", "pending")}, nil)

			res, err := f.svc.GetAll(ctx, params, filter)

			require.NoError(t, err)
			assert.Len(t, res.Bookings, 1)
			assert.Equal(t, 1, res.TotalPage)

			if tt.unchanged {
				assert.Equal(t, filter, scoped)

				return
			}

			where, args := scoped.GetWhereClause()
			for _, fragment := range tt.contains {
				assert.Contains(t, where, fragment)
			}

			assert.Equal(t, tt.actor.ID, args["created_by"])
		})
	}
}

func TestBookingService_GetMine(t *testing.T) {
	f := newFixture(t)
	ctx := f.as(superAdmin)

	params := gDto.QueryParams{Page: 1, Limit: 10}

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, superAdmin.ID, args["created_by"])

			return 0, nil
		})
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return(nil, nil)

	res, err := f.svc.GetMine(ctx, params, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Empty(t, res.Bookings)
}

func TestBookingService_Stats(t *testing.T) {
	f := newFixture(t)
	ctx := f.as(roomAdmin)

	counts := map[string]int{"pending": 2, "approved": 5, "rejected": 1}

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			where, args := filter.GetWhereClause()

			assert.Contains(t, where, "room_bookings.room_id IN (:room_id_0)")
			assert.Contains(t, where, "room_bookings.created_by = :created_by")
			assert.Equal(t, roomAdmin.ID, args["created_by"])

			status, ok := args[model.FieldApprovalStatus].(string)
			if !ok {
				assert.Contains(t, where, "room_bookings.cancelled_at IS NOT NULL")

				return 3, nil
			}

			assert.Contains(t, where, "room_bookings.cancelled_at IS NULL")

			return counts[status], nil
		}).
		Times(4)

	res, err := f.svc.Stats(ctx, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, dto.BookingStatsResponse{Total: 11, Pending: 2, Approved: 5, Rejected: 1, Cancelled: 3}, res)
}

func TestBookingService_StatsRequiresSignIn(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Stats(context.Background(), gDto.FilterGroup{})

	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}
