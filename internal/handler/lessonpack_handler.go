package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/braillebridge/teacher-console/internal/observability"
	"github.com/braillebridge/teacher-console/internal/service"
	"github.com/braillebridge/teacher-console/internal/stream"
	"github.com/braillebridge/teacher-console/internal/utils"
)

// LessonPackHandler wires lesson pack generation and the progress stream.
type LessonPackHandler struct {
	service service.LessonPackService
	hub     *stream.Hub
	logger  zerolog.Logger
}

// NewLessonPackHandler constructs the handler.
func NewLessonPackHandler(service service.LessonPackService, hub *stream.Hub, logger zerolog.Logger) *LessonPackHandler {
	return &LessonPackHandler{
		service: service,
		hub:     hub,
		logger:  logger.With().Str("component", "lesson_pack_handler").Logger(),
	}
}

// Register attaches the lesson pack endpoints to the router group.
func (h *LessonPackHandler) Register(router fiber.Router) {
	router.Post("", h.generate)
	router.Get("/progress", h.progressLog)
	router.Get("/progress/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}, websocket.New(h.progressSocket))
}

// generate runs the full pipeline and streams the resulting archive back as a
// download. Progress is published to the websocket hub while it runs.
func (h *LessonPackHandler) generate(c *fiber.Ctx) error {
	payload, files, err := parseAssignmentForm(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var assignmentID *int
	if raw := strings.TrimSpace(c.FormValue("assignment_id")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return utils.SendError(c, fiber.StatusBadRequest, "assignment_id must be a positive integer")
		}
		assignmentID = &parsed
	}

	archive, name, err := h.service.Generate(c.UserContext(), payload, assignmentID, files)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(archive)
}

// progressLog returns the accumulated progress lines of the current session.
func (h *LessonPackHandler) progressLog(c *fiber.Ctx) error {
	lines := h.hub.Lines()
	if lines == nil {
		lines = []string{}
	}
	return utils.SendSuccess(c, "progress log retrieved", lines)
}

// progressSocket replays the accumulated log and then streams new lines until
// the client goes away or the subscription is closed.
func (h *LessonPackHandler) progressSocket(conn *websocket.Conn) {
	observability.ProgressSubscribers().Inc()
	defer observability.ProgressSubscribers().Dec()

	lines, cancel := h.hub.Subscribe()
	defer cancel()

	for _, line := range h.hub.Lines() {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
			return
		}
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}
