package handler

import (
	"brandlink-be/internal/pkg/logger"
	"brandlink-be/internal/pkg/serverutils"
	internalWS "brandlink-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type ActivityHandler struct {
	hub       *internalWS.Hub
	jwtSecret string
	logger    logger.ILogger
}

func NewActivityHandler(hub *internalWS.Hub, jwtSecret string, log logger.ILogger) *ActivityHandler {
	return &ActivityHandler{
		hub:       hub,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

// Authenticate resolves the caller before the upgrade. Browsers cannot set
// headers on a websocket handshake, so the token may come as ?token=.
func (h *ActivityHandler) Authenticate(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Missing token (Query 'token' or Header 'Authorization')"))
	}

	userIDStr, err := serverutils.ParseUserToken(h.jwtSecret, tokenStr)
	if err != nil {
		h.logger.Warn("ACTIVITY", "Invalid token in WS handshake", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid user ID format in token"))
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	c.Locals("ws_user_id", userID)
	return c.Next()
}

func (h *ActivityHandler) Stream(c *websocket.Conn) {
	userID, _ := c.Locals("ws_user_id").(uuid.UUID)
	h.logger.Info("ACTIVITY", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
	internalWS.Serve(h.hub, c, userID)
	h.logger.Info("ACTIVITY", "WebSocket session ended", map[string]interface{}{"user_id": userID})
}

func (h *ActivityHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.Authenticate, websocket.New(h.Stream))
}
