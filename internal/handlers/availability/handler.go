package availability

import (
	"net/http"
	"time"

	"icpac/infras/otel"
	"icpac/internal/domains/availability"
	"icpac/internal/domains/availability/model/dto"
	"icpac/internal/domains/availability/service"
	roomHandler "icpac/internal/handlers/room"
	"icpac/shared/constant"
	"icpac/shared/failure"
	"icpac/shared/timezone"
	"icpac/shared/validator"
	"icpac/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/availability/check", handler.CheckAvailability)
}

// RoomRouter mounts the per-room board routes on a router already scoped to /rooms.
func (handler *Handler) RoomRouter(router chi.Router) {
	router.Get("/{id}/availability", handler.GetDaySlots)
	router.Get("/{id}/occupancy", handler.GetOccupancy)
}

// GetDaySlots returns the board grid of a room for one day.
// @Summary Get a room's slot grid
// @Description Returns the 41 slot boundaries 08:00-18:00 with the booking occupying each. status=all or a single approval status is reserved for the room's administrators.
// @Tags Availability
// @Produce json
// @Param id path integer true "Room ID"
// @Param date query string false "Day to inspect (YYYY-MM-DD), defaults to today"
// @Param status query string false "all, pending, approved or rejected"
// @Success 200 {object} response.Data[dto.DaySlotsResponse] "Slot grid"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/availability [get]
func (handler *Handler) GetDaySlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDaySlots")
	defer scope.End()

	roomID, err := roomHandler.RoomID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	date, err := dateParam(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	filter, err := availability.ParseStatusFilter(r.URL.Query().Get(constant.RequestParamStatus))
	if err != nil {
		response.WithError(w, failure.BadRequest(err))

		return
	}

	slots, err := handler.service.DaySlots(ctx, roomID, date, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("room_id", roomID).Msg("failed to get day slots")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, slots)
}

// GetOccupancy summarises how much of a room's working day is taken.
// @Summary Get a room's occupancy
// @Tags Availability
// @Produce json
// @Param id path integer true "Room ID"
// @Param date query string false "Day to inspect (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Data[dto.OccupancyResponse] "Occupancy"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/occupancy [get]
func (handler *Handler) GetOccupancy(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOccupancy")
	defer scope.End()

	roomID, err := roomHandler.RoomID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	date, err := dateParam(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	occupancy, err := handler.service.Occupancy(ctx, roomID, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("room_id", roomID).Msg("failed to get occupancy")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, occupancy)
}

// CheckAvailability answers whether a proposed booking would currently fit.
// @Summary Check availability
// @Description Advisory only: the booking itself is checked again when it is created.
// @Tags Availability
// @Accept json
// @Produce json
// @Param request body dto.CheckRequest true "Proposed booking"
// @Success 200 {object} response.Data[dto.CheckResponse] "Availability"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/check [post]
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	req := dto.CheckRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Check(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("room_id", req.RoomID).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func dateParam(r *http.Request) (time.Time, error) {
	value := r.URL.Query().Get(constant.RequestParamDate)
	if value == "" {
		return timezone.Today(), nil
	}

	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, failure.InvalidDateParam
	}

	return date, nil
}
