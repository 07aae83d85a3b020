package availability_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	otelMocks "icpac/infras/otel/mocks"
	"icpac/internal/domains/availability"
	"icpac/internal/domains/availability/mocks"
	"icpac/internal/domains/availability/model/dto"
	handler "icpac/internal/handlers/availability"
	"icpac/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var monday = time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*mocks.MockAvailability, http.Handler) {
	t.Helper()

	svc := mocks.NewMockAvailability(gomock.NewController(t))
	h := handler.New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/rooms", h.RoomRouter)
	h.Router(router)

	return svc, router
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func TestGetDaySlots(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().
		DaySlots(gomock.Any(), int64(3), monday, availability.FilterAll).
		Return(dto.DaySlotsResponse{RoomID: 3, Date: "2030-06-03", Filter: "all"}, nil)

	rec := do(router, http.MethodGet, "/rooms/3/availability?date=2030-06-03&status=all", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Data dto.DaySlotsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "all", res.Data.Filter)
}

func TestGetDaySlots_DefaultsToActiveFilter(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().
		DaySlots(gomock.Any(), int64(3), gomock.Any(), availability.FilterActive).
		Return(dto.DaySlotsResponse{}, nil)

	rec := do(router, http.MethodGet, "/rooms/3/availability", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetDaySlots_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "non numeric room", target: "/rooms/abc/availability"},
		{name: "zero room", target: "/rooms/0/availability"},
		{name: "malformed date", target: "/rooms/3/availability?date=03-06-2030"},
		{name: "unknown status", target: "/rooms/3/availability?status=booked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, router := setup(t)

			rec := do(router, http.MethodGet, tt.target, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetDaySlots_Restricted(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().
		DaySlots(gomock.Any(), int64(3), monday, availability.FilterAll).
		Return(dto.DaySlotsResponse{}, failure.ResourceRestrictedError)

	rec := do(router, http.MethodGet, "/rooms/3/availability?date=2030-06-03&status=all", "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetOccupancy(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().
		Occupancy(gomock.Any(), int64(3), monday).
		Return(dto.OccupancyResponse{}, nil)

	rec := do(router, http.MethodGet, "/rooms/3/occupancy?date=2030-06-03", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetOccupancy_UnknownRoom(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().
		Occupancy(gomock.Any(), int64(99), monday).
		Return(dto.OccupancyResponse{}, failure.NotFound("room"))

	rec := do(router, http.MethodGet, "/rooms/99/occupancy?date=2030-06-03", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckAvailability(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().
		Check(gomock.Any(), dto.CheckRequest{
			RoomID:      3,
			BookingType: "hourly",
			StartDate:   "2030-06-03",
			StartTime:   "09:00",
			EndTime:     "10:30",
		}).
		Return(dto.CheckResponse{RoomID: 3, Available: true}, nil)

	rec := do(router, http.MethodPost, "/availability/check",
		`{"room_id":3,"booking_type":"hourly","start_date":"2030-06-03","start_time":"09:00","end_time":"10:30"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"available":true`)
}

func TestCheckAvailability_Invalid(t *testing.T) {
	_, router := setup(t)

	rec := do(router, http.MethodPost, "/availability/check",
		`{"room_id":3,"booking_type":"hourly","start_date":"2030-06-03","start_time":"09:10","end_time":"10:30"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
