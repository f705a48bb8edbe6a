package handler

import (
	"net/http"

	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"skillswap/internal/adapter/api/middleware"
	"skillswap/internal/infrastructure/ratelimit"
	"skillswap/internal/infrastructure/websocket"
	"skillswap/pkg/logger"
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	manager        *websocket.Manager
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *ratelimit.RateLimiter
}

var webSocketHandler *WebSocketHandler

func SetupWebSocket(manager *websocket.Manager, authMiddleware *middleware.AuthMiddleware, rateLimiter *ratelimit.RateLimiter) {
	webSocketHandler = &WebSocketHandler{
		manager:        manager,
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
	}
}

func GetWebSocketHandler() *WebSocketHandler {
	return webSocketHandler
}

// HandleConnection upgrades the request to a WebSocket used for the one-way
// event stream. Browsers cannot set headers on the upgrade request, so the
// token arrives as a query parameter.
func (h *WebSocketHandler) HandleConnection(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Token is required")
	}

	userID, err := h.authMiddleware.GetUIDFromToken(c.Request().Context(), token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	}

	if allowed, retryAfter := h.rateLimiter.Allow(userID, "ws_connect"); !allowed {
		c.Response().Header().Set("Retry-After", retryAfter.String())
		return echo.NewHTTPError(http.StatusTooManyRequests, "Too many connection attempts")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Warn("websocket upgrade failed for %s: %v", userID, err)
		return err
	}

	client := &websocket.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.manager.Register <- client

	go client.WritePump()
	go client.ReadPump(h.manager)

	return nil
}
