package store

import (
	"errors"

	"pathsync/core/logger"
	"pathsync/core/path"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the store.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the store routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/store")
	group.Post("/get", h.HandleGet)
	group.Post("/set", h.HandleSet)
	group.Post("/list", h.HandleList)
}

// HandleGet returns the item stored at a path.
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	var r GetRequest
	if err := c.BodyParser(&r); err != nil {
		return badRequest(c, err)
	}
	resp, err := h.service.Get(c.UserContext(), r)
	if err != nil {
		return h.fail(c, "get", err)
	}
	return c.JSON(resp)
}

// HandleSet writes or deletes the item at a path.
func (h *Handler) HandleSet(c *fiber.Ctx) error {
	var r SetRequest
	if err := c.BodyParser(&r); err != nil {
		return badRequest(c, err)
	}
	resp, err := h.service.Set(c.UserContext(), r)
	if err != nil {
		return h.fail(c, "set", err)
	}
	return c.JSON(resp)
}

// HandleList returns the entries within a folder.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	var r ListRequest
	if err := c.BodyParser(&r); err != nil {
		return badRequest(c, err)
	}
	resp, err := h.service.List(c.UserContext(), r)
	if err != nil {
		return h.fail(c, "list", err)
	}
	return c.JSON(resp)
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Code:  CodeBadRequest,
		Error: err.Error(),
	})
}

func (h *Handler) fail(c *fiber.Ctx, op string, err error) error {
	if errors.Is(err, path.ErrMissingFileName) || errors.Is(err, path.ErrInvalidDepth) {
		return badRequest(c, err)
	}

	logger.WithRequestID(h.service.logger, c).Error("Store operation failed",
		zap.String("op", op),
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Code:  CodeBackendError,
		Error: err.Error(),
	})
}
