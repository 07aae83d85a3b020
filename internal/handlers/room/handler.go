package room

import (
	"net/http"
	"strings"

	"icpac/infras/otel"
	"icpac/internal/domains/room/model"
	"icpac/internal/domains/room/model/dto"
	"icpac/internal/domains/room/service"
	"icpac/shared"
	"icpac/shared/constant"
	gDto "icpac/shared/dto"
	"icpac/shared/failure"
	"icpac/shared/validator"
	"icpac/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const formFieldImage = "image"

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router mounts the room CRUD routes on a router already scoped to /rooms.
func (handler *Handler) Router(router chi.Router) {
	router.Post("/", handler.CreateRoom)
	router.Get("/", handler.GetRooms)
	router.Get("/{id}", handler.GetRoomByID)
	router.Patch("/{id}", handler.UpdateRoom)
	router.Delete("/{id}", handler.DeleteRoom)
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Create a new room with the provided details.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Room name"
// @Param capacity formData integer true "Room capacity"
// @Param category formData string false "conference, computer_lab, special or other"
// @Param amenities formData []string false "Room amenities"
// @Param floor formData string false "Room floor"
// @Param location formData string false "Room location"
// @Param description formData string false "Room description"
// @Param active formData boolean false "Room active status"
// @Param image formData file false "Room image"
// @Success 201 {object} response.Data[int64] "Created room ID"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	req := dto.CreateRoomRequest{
		Name:        request.FormValue(model.FieldName),
		Category:    request.FormValue(model.FieldCategory),
		Amenities:   formList(request, model.FieldAmenities),
		Floor:       request.FormValue(model.FieldFloor),
		Location:    request.FormValue(model.FieldLocation),
		Description: request.FormValue(model.FieldDescription),
		Active:      shared.ConvertStringToBool(request.FormValue(model.FieldActive)),
	}

	if capStr := request.FormValue(model.FieldCapacity); capStr != "" {
		c, err := shared.ConvertStringToInt(capStr)
		if err != nil {
			response.WithError(writer, failure.BadRequestFromString("capacity must be a number"))

			return
		}

		req.Capacity = c
	}

	file, fileHeader, err := request.FormFile(formFieldImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, id)
}

// GetRooms retrieves all rooms based on query parameters.
// @Summary Get all rooms
// @Description Retrieve all rooms with optional filtering and pagination.
// @Tags Room
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param category query string false "Filter by category"
// @Param location query string false "Filter by location"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "List of rooms"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for field, operator := range map[string]string{
		model.FieldName:     gDto.FilterOperatorLike,
		model.FieldCategory: gDto.FilterOperatorEq,
		model.FieldLocation: gDto.FilterOperatorLike,
	} {
		if value := query.Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: operator,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	if active := shared.ConvertStringToBool(query.Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	rooms, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rooms retrieved successfully")

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path integer true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id, err := RoomID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("room_id", id).Msg("failed to get room by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoom updates an existing room by its ID.
// @Summary Update a room by ID
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param id path integer true "Room ID"
// @Param name formData string false "Room name"
// @Param capacity formData integer false "Room capacity"
// @Param category formData string false "Room category"
// @Param amenities formData []string false "Room amenities"
// @Param floor formData string false "Room floor"
// @Param location formData string false "Room location"
// @Param description formData string false "Room description"
// @Param active formData boolean false "Room active status"
// @Param image formData file false "Room image"
// @Success 200 {object} response.Message "Room updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id, err := RoomID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.UpdateRoomRequest{
		Name:        r.FormValue(model.FieldName),
		Category:    r.FormValue(model.FieldCategory),
		Amenities:   formList(r, model.FieldAmenities),
		Floor:       r.FormValue(model.FieldFloor),
		Location:    r.FormValue(model.FieldLocation),
		Description: r.FormValue(model.FieldDescription),
		Active:      shared.ConvertStringToBool(r.FormValue(model.FieldActive)),
	}

	if capStr := r.FormValue(model.FieldCapacity); capStr != "" {
		c, err := shared.ConvertStringToInt(capStr)
		if err != nil {
			response.WithError(w, failure.BadRequestFromString("capacity must be a number"))

			return
		}

		req.Capacity = &c
	}

	file, fileHeader, err := r.FormFile(formFieldImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}

// DeleteRoom deletes a room by its ID.
// @Summary Delete a room by ID
// @Tags Room
// @Produce json
// @Param id path integer true "Room ID"
// @Success 200 {object} response.Message "Room deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	id, err := RoomID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Room deleted successfully")
}

// RoomID reads the numeric {id} path parameter.
func RoomID(r *http.Request) (int64, error) {
	id, err := shared.ConvertStringToInt64(chi.URLParam(r, constant.RequestParamID))
	if err != nil || id <= 0 {
		return 0, failure.InvalidIDParam
	}

	return id, nil
}

// formList accepts both repeated fields and a single comma separated value.
func formList(r *http.Request, field string) []string {
	values := r.MultipartForm.Value[field]
	if len(values) == 0 {
		return nil
	}

	out := make([]string, 0, len(values))

	for _, value := range values {
		for part := range strings.SplitSeq(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}
