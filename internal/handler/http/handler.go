// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Tracing, logging, rate limiting, and authentication
// concerns are all handled at this layer before requests are forwarded to
// the service layer.
package http

import (
	"context"
	"net/http"

	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/internal/service"
)

// Pinger reports storage connectivity for the health endpoint. *store.DB
// satisfies it through its embedded *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	services *service.Services
	pinger   Pinger

	// ws serves the GET /ws upgrade; the hub provides it.
	ws http.HandlerFunc

	logger *logger.Logger
}

func NewHandler(services *service.Services, pinger Pinger, wsHandler http.HandlerFunc, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		pinger:   pinger,
		ws:       wsHandler,
		logger:   logger,
	}
}
