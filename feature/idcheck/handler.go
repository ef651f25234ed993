package idcheck

import (
	"errors"

	"id-check/core/logger"
	"id-check/core/reload"
	"id-check/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the filter's control endpoints.
type Handler struct {
	plugin *Plugin
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(plugin *Plugin, logger *zap.Logger) *Handler {
	return &Handler{plugin: plugin, logger: logger}
}

// MessageRequest is the body of POST /idcheck/msg.
type MessageRequest struct {
	Tag string `json:"tag"`
}

// RegisterRoutes registers the filter routes behind the given middleware.
func (h *Handler) RegisterRoutes(app fiber.Router, middleware ...fiber.Handler) {
	group := app.Group("/idcheck", middleware...)
	group.Get("/status", h.HandleStatus)
	group.Post("/msg", h.HandleMessage)
	group.Get("/:id", h.HandleLookup)
}

// HandleLookup answers whether an identifier is in the active list.
// @Summary Check Membership
// @Description Reports whether the identifier is in the active list.
// @Tags idcheck
// @Produce json
// @Param id path integer true "Identifier"
// @Success 200 {object} map[string]interface{} "Membership"
// @Failure 400 {object} map[string]string "Invalid identifier"
// @Router /idcheck/{id} [get]
func (h *Handler) HandleLookup(c *fiber.Ctx) error {
	id, ok := utils.ToUint64(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "identifier must be an unsigned integer"})
	}
	return c.JSON(fiber.Map{
		"id":     id,
		"member": h.plugin.IsMember(id),
	})
}

// HandleStatus reports the active list.
// @Summary Filter Status
// @Description Returns the source, size, checksum and reload state of the active list.
// @Tags idcheck
// @Produce json
// @Success 200 {object} Status "Status"
// @Router /idcheck/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.plugin.Status())
}

// HandleMessage delivers a control message to the filter.
// @Summary Control Message
// @Description Delivers a host control message. "id_check.reload" starts a background reload.
// @Tags idcheck
// @Accept json
// @Produce json
// @Param message body MessageRequest true "Message"
// @Success 200 {object} map[string]string "Ignored"
// @Success 202 {object} map[string]string "Reload started"
// @Failure 400 {object} map[string]string "Invalid body"
// @Failure 409 {object} map[string]string "Reload already running"
// @Failure 503 {object} map[string]string "Shut down"
// @Router /idcheck/msg [post]
func (h *Handler) HandleMessage(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req MessageRequest
	if err := c.BodyParser(&req); err != nil || req.Tag == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "body must be {\"tag\": \"...\"}"})
	}

	handled, err := h.plugin.HandleMessage(req.Tag)
	switch {
	case !handled:
		return c.JSON(fiber.Map{"status": "ignored", "tag": req.Tag})
	case errors.Is(err, reload.ErrReloadBusy):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrShutdown):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Control message failed", zap.String("tag", req.Tag), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Reload triggered", zap.String("tag", req.Tag))
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "reloading"})
}
