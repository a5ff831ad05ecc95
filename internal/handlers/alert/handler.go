package alert

import (
	"encoding/json"
	"fmt"
	"net/http"
	"trailguard/infras/otel"
	"trailguard/internal/domains/alert/model"
	"trailguard/internal/domains/alert/model/dto"
	"trailguard/internal/domains/alert/service"
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
	service service.Alert
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Alert, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/alerts", func(routerGroup chi.Router) {
		routerGroup.Group(func(protected chi.Router) {
			protected.Use(handler.auth.Auth)
			protected.Get("/", handler.GetAlerts)
			protected.Get("/unresolved", handler.GetUnresolvedAlerts)
			protected.Get("/stream", handler.StreamAlerts)
			protected.Get("/{id}", handler.GetAlertByID)
			protected.Patch("/{id}/resolve", handler.ResolveAlert)
		})
	})
}

// GetAlerts retrieves all safety alerts based on query parameters.
// @Summary Get all alerts
// @Description Retrieve all safety alerts with optional filtering and pagination.
// @Tags Alert
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param resolved query string false "Filter by resolved state (true or false)"
// @Param alert_type query string false "Filter by alert type"
// @Success 200 {object} response.Data[dto.GetAlertsResponse] "List of alerts"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/alerts [get]
// @Security BearerAuth
func (handler *Handler) GetAlerts(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAlerts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	resolved := request.URL.Query().Get(model.FieldResolved)
	alertType := request.URL.Query().Get(model.FieldAlertType)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if resolved != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldResolved,
			Operator: gDto.FilterOperatorEq,
			Value:    resolved,
			Table:    model.TableName,
		})
	}

	if alertType != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldAlertType,
			Operator: gDto.FilterOperatorEq,
			Value:    alertType,
			Table:    model.TableName,
		})
	}

	alerts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get alerts")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Alerts retrieved successfully")

	response.WithJSON(writer, http.StatusOK, alerts)
}

// GetUnresolvedAlerts lists every alert that still needs attention.
// @Summary Get unresolved alerts
// @Description List all unresolved safety alerts, most recent first.
// @Tags Alert
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.AlertResponse] "Unresolved alerts"
// @Failure 500 {object} response.Error
// @Router /v1/alerts/unresolved [get]
// @Security BearerAuth
func (handler *Handler) GetUnresolvedAlerts(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUnresolvedAlerts")
	defer scope.End()

	alerts, err := handler.service.Unresolved(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get unresolved alerts")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Unresolved alerts retrieved successfully")

	response.WithJSON(writer, http.StatusOK, alerts)
}

// StreamAlerts pushes unresolved alert snapshots over server-sent events.
// Each event carries the full unresolved set so clients never need to
// reconcile incremental updates.
// @Summary Stream unresolved alerts
// @Description Server-sent event stream of unresolved alert snapshots. A new event is pushed whenever an alert is created or resolved.
// @Tags Alert
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream of alert snapshots"
// @Failure 500 {object} response.Error
// @Router /v1/alerts/stream [get]
// @Security BearerAuth
func (handler *Handler) StreamAlerts(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StreamAlerts")
	defer scope.End()

	flusher, ok := writer.(http.Flusher)
	if !ok {
		err := failure.InternalError(fmt.Errorf("streaming unsupported by the underlying writer"))

		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeEventStream)
	writer.Header().Set(constant.RequestHeaderCacheControl, "no-cache")
	writer.Header().Set("Connection", "keep-alive")
	writer.WriteHeader(http.StatusOK)
	flusher.Flush()

	feed, stop := handler.service.Subscribe(ctx)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return
		case alerts, open := <-feed:
			if !open {
				return
			}

			payload, err := json.Marshal(alerts)
			if err != nil {
				scope.TraceError(err)
				log.Error().Err(err).Msg("failed to marshal alert snapshot")

				continue
			}

			fmt.Fprintf(writer, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

// GetAlertByID retrieves an alert by its ID.
// @Summary Get an alert by ID
// @Description Retrieve a safety alert by its unique identifier.
// @Tags Alert
// @Accept json
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} response.Data[dto.AlertResponse] "Alert details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/alerts/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAlertByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAlertByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	alert, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get alert by ID")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Alert retrieved successfully")

	response.WithJSON(writer, http.StatusOK, alert)
}

// ResolveAlert marks an alert as handled.
// @Summary Resolve an alert
// @Description Mark a safety alert as resolved, optionally recording a note.
// @Tags Alert
// @Accept json
// @Produce json
// @Param id path string true "Alert ID"
// @Param request body dto.ResolveAlertRequest false "Resolution notes"
// @Success 200 {object} response.Message "Alert resolved successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/alerts/{id}/resolve [patch]
// @Security BearerAuth
func (handler *Handler) ResolveAlert(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResolveAlert")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.ResolveAlertRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Resolve(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resolve alert")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Alert resolved successfully")

	response.WithMessage(writer, http.StatusOK, "Alert resolved successfully")
}
