package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/roadmap/internal/service"
	"github.com/Skotchmaster/roadmap/internal/transport"
	"github.com/Skotchmaster/roadmap/pkg/logging"
)

type ChatHTTP struct {
	Svc *service.ChatService
}

// Chat returns the model output as a JSON string, unparsed.
func (h *ChatHTTP) Chat(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "chat")

	var req transport.ChatRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("chat_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid Request body")
	}

	text, err := h.Svc.Generate(ctx, req.Prompt)
	if err != nil {
		if errors.Is(err, service.ErrMissingField) {
			return echo.NewHTTPError(http.StatusBadRequest, "Missing prompt")
		}
		return err
	}
	return c.JSON(http.StatusOK, text)
}
