package visit

import (
	"net/http"
	"trailguard/infras/otel"
	"trailguard/internal/domains/visit/model"
	"trailguard/internal/domains/visit/model/dto"
	"trailguard/internal/domains/visit/service"
	"trailguard/shared/constant"
	gDto "trailguard/shared/dto"
	"trailguard/shared/failure"
	"trailguard/shared/validator"
	"trailguard/transport/http/middleware"
	"trailguard/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Visit
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Visit, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/visits", func(routerGroup chi.Router) {
		routerGroup.Post("/check-in", handler.CheckIn)
		routerGroup.Post("/check-out", handler.CheckOut)
		routerGroup.Get("/active", handler.GetActiveCheckIns)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(handler.auth.Auth)
			protected.Get("/", handler.GetVisits)
			protected.Get("/{id}", handler.GetVisitByID)
		})
	})
}

// CheckIn opens a visit from a scanned check-in QR code.
// @Summary Check in to a location
// @Description Create an open visit for the tourist from a scanned check-in QR payload.
// @Tags Visit
// @Accept json
// @Produce json
// @Param request body dto.CheckInRequest true "Check-In Request"
// @Success 201 {object} response.Data[dto.CheckInResponse] "Visit created"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/visits/check-in [post]
func (handler *Handler) CheckIn(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckIn")
	defer scope.End()

	req := dto.CheckInRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CheckIn(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check in")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Visit opened for " + req.TouristPhone)

	response.WithJSON(writer, http.StatusCreated, res)
}

// CheckOut closes the open visit for a scanned check-out QR code.
// @Summary Check out of a location
// @Description Close the tourist's most recent open visit for the scanned location.
// @Tags Visit
// @Accept json
// @Produce json
// @Param request body dto.CheckOutRequest true "Check-Out Request"
// @Success 200 {object} response.Message "Checked out successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/visits/check-out [post]
func (handler *Handler) CheckOut(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckOut")
	defer scope.End()

	req := dto.CheckOutRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.CheckOut(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check out")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Visit closed for " + req.TouristPhone)

	response.WithMessage(writer, http.StatusOK, "Checked out successfully")
}

// GetActiveCheckIns lists the tourist's open visits, newest first.
// @Summary Get active check-ins
// @Description List all open visits for a tourist phone, newest check-in first.
// @Tags Visit
// @Accept json
// @Produce json
// @Param phone query string true "Tourist phone"
// @Success 200 {object} response.Data[dto.VisitResponse] "Open visits"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/visits/active [get]
func (handler *Handler) GetActiveCheckIns(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActiveCheckIns")
	defer scope.End()

	phone := request.URL.Query().Get(constant.RequestParamPhone)
	if phone == constant.Empty {
		err := failure.BadRequestFromString("phone query parameter is required")

		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	visits, err := handler.service.ActiveCheckIns(ctx, phone)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get active check-ins")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Active check-ins retrieved for " + phone)

	response.WithJSON(writer, http.StatusOK, visits)
}

// GetVisits retrieves all visits based on query parameters.
// @Summary Get all visits
// @Description Retrieve all visits with optional filtering and pagination.
// @Tags Visit
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param tourist_phone query string false "Filter by tourist phone"
// @Param location_id query string false "Filter by location ID"
// @Param status query string false "Filter by status (checked-in, checked-out, overdue, alert-sent)"
// @Success 200 {object} response.Data[dto.GetVisitsResponse] "List of visits"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/visits [get]
// @Security BearerAuth
func (handler *Handler) GetVisits(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVisits")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	touristPhone := request.URL.Query().Get(model.FieldTouristPhone)
	locationID := request.URL.Query().Get(model.FieldLocationID)
	status := request.URL.Query().Get(model.FieldStatus)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if touristPhone != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTouristPhone,
			Operator: gDto.FilterOperatorEq,
			Value:    touristPhone,
			Table:    model.TableName,
		})
	}

	if locationID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldLocationID,
			Operator: gDto.FilterOperatorEq,
			Value:    locationID,
			Table:    model.TableName,
		})
	}

	if status != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	visits, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get visits")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Visits retrieved successfully")

	response.WithJSON(writer, http.StatusOK, visits)
}

// GetVisitByID retrieves a visit by its ID.
// @Summary Get a visit by ID
// @Description Retrieve a visit by its unique identifier.
// @Tags Visit
// @Accept json
// @Produce json
// @Param id path string true "Visit ID"
// @Success 200 {object} response.Data[dto.VisitResponse] "Visit details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/visits/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetVisitByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVisitByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	visit, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get visit by ID")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Visit retrieved successfully")

	response.WithJSON(writer, http.StatusOK, visit)
}
