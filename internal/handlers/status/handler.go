package status

import (
	"net/http"
	"trailguard/infras/postgres"
	"trailguard/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	db *postgres.Connection
}

func New(db *postgres.Connection) Handler {
	return Handler{
		db: db,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
}

// Health reports whether the service can reach its database.
// @Summary Health check
// @Description Report service health, including database connectivity.
// @Tags Status
// @Produce json
// @Success 200 {object} response.Message "OK"
// @Failure 503 {object} response.Error
// @Router /health [get]
func (handler *Handler) Health(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	if err := handler.db.Write.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("write database unreachable")

		response.WithUnhealthy(writer)

		return
	}

	if err := handler.db.Read.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("read database unreachable")

		response.WithUnhealthy(writer)

		return
	}

	response.WithMessage(writer, http.StatusOK, "OK")
}
