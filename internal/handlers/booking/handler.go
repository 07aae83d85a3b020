package booking

import (
	"net/http"
	"net/url"
	"time"

	"icpac/infras/otel"
	"icpac/internal/domains/availability"
	"icpac/internal/domains/booking/model"
	"icpac/internal/domains/booking/model/dto"
	"icpac/internal/domains/booking/service"
	"icpac/shared"
	"icpac/shared/constant"
	gDto "icpac/shared/dto"
	"icpac/shared/failure"
	"icpac/shared/validator"
	"icpac/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryParamFrom             = "from"
	queryParamTo               = "to"
	queryParamIncludeCancelled = "include_cancelled"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/mybookings", handler.GetMyBookings)
		routerGroup.Get("/stats", handler.GetBookingStats)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}", handler.UpdateBooking)
		routerGroup.Post("/{id}/approve", handler.ApproveBooking)
		routerGroup.Post("/{id}/reject", handler.RejectBooking)
		routerGroup.Post("/{id}/cancel", handler.CancelBooking)
	})
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Create a pending room booking. The room must be free for the whole requested schedule.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[string] "Created booking ID"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("room_id", req.RoomID).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, id)
}

// GetBookings retrieves the bookings visible to the caller.
// @Summary Get bookings
// @Description Super admins see every booking, room admins the bookings of their rooms plus their own, users their own.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_id query integer false "Filter by room ID"
// @Param approval_status query string false "pending, approved or rejected"
// @Param from query string false "Bookings ending on or after this date (YYYY-MM-DD)"
// @Param to query string false "Bookings starting on or before this date (YYYY-MM-DD)"
// @Param include_cancelled query boolean false "Include cancelled bookings"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup, err := listFilter(r, true)
	if err != nil {
		response.WithError(w, err)

		return
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingStats counts the visible bookings per approval status.
// @Summary Get booking statistics
// @Description Counts for the bookings the caller may see: everything for a super admin, managed rooms and own bookings for a room admin, own bookings otherwise.
// @Tags Booking
// @Produce json
// @Param room_id query int false "Room ID"
// @Param from query string false "Bookings ending on or after this date (YYYY-MM-DD)"
// @Param to query string false "Bookings starting on or before this date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.BookingStatsResponse] "Booking statistics"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/stats [get]
// @Security BearerAuth
func (handler *Handler) GetBookingStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingStats")
	defer scope.End()

	filterGroup, err := statsFilter(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	stats, err := handler.service.Stats(ctx, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, stats)
}

// GetMyBookings retrieves the bookings created by the caller.
// @Summary Get my bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param approval_status query string false "pending, approved or rejected"
// @Param from query string false "Bookings ending on or after this date (YYYY-MM-DD)"
// @Param to query string false "Bookings starting on or before this date (YYYY-MM-DD)"
// @Param include_cancelled query boolean false "Include cancelled bookings"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/mybookings [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup, err := listFilter(r, false)
	if err != nil {
		response.WithError(w, err)

		return
	}

	bookings, err := handler.service.GetMine(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get my bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// UpdateBooking edits a booking.
// @Summary Update a booking by ID
// @Description Schedule changes are re-checked against the room's other bookings; an approved booking whose schedule changes returns to pending.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Update Booking Request"
// @Success 200 {object} response.Message "Booking updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateBookingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to update booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking updated successfully")
}

// ApproveBooking approves a pending booking.
// @Summary Approve a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking approved successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/approve [post]
// @Security BearerAuth
func (handler *Handler) ApproveBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Approve(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to approve booking")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking approved successfully")
}

// RejectBooking rejects a pending booking.
// @Summary Reject a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.RejectBookingRequest false "Rejection reason"
// @Success 200 {object} response.Message "Booking rejected successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/reject [post]
// @Security BearerAuth
func (handler *Handler) RejectBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.RejectBookingRequest{}
	if err := decodeOptional(r, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err := handler.service.Reject(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to reject booking")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking rejected successfully")
}

// CancelBooking cancels a booking and frees its slots.
// @Summary Cancel a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CancelBookingRequest false "Cancellation reason"
// @Success 200 {object} response.Message "Booking cancelled successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.CancelBookingRequest{}
	if err := decodeOptional(r, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err := handler.service.Cancel(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking cancelled successfully")
}

// decodeOptional validates a body that may be omitted entirely.
func decodeOptional[T any](r *http.Request, req *T) error {
	if r.ContentLength == 0 {
		return nil
	}

	return validator.Validate(r.Body, req) //nolint:wrapcheck
}

// listFilter turns the listing query parameters into a filter group. Cancelled bookings are
// left out unless include_cancelled is set.
func listFilter(r *http.Request, byRoom bool) (gDto.FilterGroup, error) {
	query := r.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: []any{}}

	if byRoom {
		if err := appendRoom(query, &filterGroup); err != nil {
			return filterGroup, err
		}
	}

	if status := query.Get(model.FieldApprovalStatus); status != "" {
		if !availability.ApprovalStatus(status).Valid() {
			return filterGroup, failure.BadRequestFromString("approval_status must be one of pending, approved, rejected")
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldApprovalStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if err := appendDateRange(query, &filterGroup); err != nil {
		return filterGroup, err
	}

	if include := shared.ConvertStringToBool(query.Get(queryParamIncludeCancelled)); include == nil || !*include {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCancelledAt,
			Operator: gDto.FilterIsNull,
			Table:    model.TableName,
		})
	}

	return filterGroup, nil
}

// statsFilter narrows statistics by room and date range only; the counts split by status and
// cancellation themselves.
func statsFilter(r *http.Request) (gDto.FilterGroup, error) {
	query := r.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: []any{}}

	if err := appendRoom(query, &filterGroup); err != nil {
		return filterGroup, err
	}

	if err := appendDateRange(query, &filterGroup); err != nil {
		return filterGroup, err
	}

	return filterGroup, nil
}

func appendRoom(query url.Values, filterGroup *gDto.FilterGroup) error {
	roomID := query.Get(model.FieldRoomID)
	if roomID == "" {
		return nil
	}

	id, err := shared.ConvertStringToInt64(roomID)
	if err != nil {
		return failure.InvalidIDParam
	}

	filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
		Field:    model.FieldRoomID,
		Operator: gDto.FilterOperatorEq,
		Value:    id,
		Table:    model.TableName,
	})

	return nil
}

func appendDateRange(query url.Values, filterGroup *gDto.FilterGroup) error {
	for _, bound := range []struct {
		param  string
		filter gDto.Filter
	}{
		{param: queryParamFrom, filter: gDto.Filter{ArgName: "from_date", Field: model.FieldEndDate, Operator: gDto.FilterOperatorGreaterEq}},
		{param: queryParamTo, filter: gDto.Filter{ArgName: "to_date", Field: model.FieldStartDate, Operator: gDto.FilterOperatorLessEq}},
	} {
		value := query.Get(bound.param)
		if value == "" {
			continue
		}

		if _, err := time.Parse(time.DateOnly, value); err != nil {
			return failure.InvalidDateParam
		}

		filter := bound.filter
		filter.Value = value
		filter.Table = model.TableName
		filterGroup.Filters = append(filterGroup.Filters, filter)
	}

	return nil
}
