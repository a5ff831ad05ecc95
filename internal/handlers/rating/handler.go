package rating

import (
	"net/http"
	"trailguard/infras/otel"
	ratingModel "trailguard/internal/domains/rating/model"
	"trailguard/internal/domains/rating/model/dto"
	"trailguard/internal/domains/rating/service"
	"trailguard/shared/constant"
	"trailguard/shared/failure"
	"trailguard/shared/validator"
	"trailguard/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Rating
	otel    otel.Otel
}

func New(service service.Rating, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Ratings are written and read by tourists, so the whole surface is public,
// like check-in and check-out.
func (handler *Handler) Router(router chi.Router) {
	router.Route("/ratings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.SubmitRating)
		routerGroup.Get("/", handler.GetLocationRatings)
	})
}

// SubmitRating files a review for a location.
// @Summary Submit a location rating
// @Description Submit a 1-5 star review of a location under a category.
// @Tags Rating
// @Accept json
// @Produce json
// @Param request body dto.SubmitRatingRequest true "Rating Request"
// @Success 201 {object} response.Data[dto.SubmitRatingResponse] "Submitted rating"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/ratings [post]
func (handler *Handler) SubmitRating(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitRating")
	defer scope.End()

	req := dto.SubmitRatingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Submit(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit rating")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Rating submitted for location " + req.LocationID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetLocationRatings retrieves all reviews of a location with aggregates.
// @Summary Get ratings for a location
// @Description Retrieve every review of a location, newest first, with the average rating and review count.
// @Tags Rating
// @Accept json
// @Produce json
// @Param location_id query string true "Location ID"
// @Success 200 {object} response.Data[dto.GetRatingsResponse] "Ratings with aggregates"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/ratings [get]
func (handler *Handler) GetLocationRatings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLocationRatings")
	defer scope.End()

	locationID := request.URL.Query().Get(ratingModel.FieldLocationID)
	if locationID == constant.Empty {
		err := failure.BadRequestFromString("location_id query parameter is required")

		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	ratings, err := handler.service.ForLocation(ctx, locationID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get ratings")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Ratings retrieved for location " + locationID)

	response.WithJSON(writer, http.StatusOK, ratings)
}
