package health

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"lagoon/config"
	"lagoon/transport/http/response"
)

type HealthResponse struct {
	Status string `json:"status"`
	Env    string `json:"env"`
	Uptime string `json:"uptime"`
}

type Handler struct {
	cfg       *config.Config
	startedAt time.Time
}

func New(cfg *config.Config) Handler {
	return Handler{
		cfg:       cfg,
		startedAt: time.Now(),
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.GetHealth)
}

// GetHealth reports process liveness.
// @Summary Health check
// @Description Report server status, environment and uptime.
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[HealthResponse] "Health status"
// @Router /v1/health [get]
func (handler *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	response.WithJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Env:    handler.cfg.Server.Env,
		Uptime: time.Since(handler.startedAt).Round(time.Second).String(),
	})
}
