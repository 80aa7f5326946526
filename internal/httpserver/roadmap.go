package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/roadmap/internal/service"
	"github.com/Skotchmaster/roadmap/internal/transport"
	"github.com/Skotchmaster/roadmap/pkg/logging"
)

type RoadmapHTTP struct {
	Svc *service.RoadmapService
}

func (h *RoadmapHTTP) Dashboard(c echo.Context) error {
	items, err := h.Svc.ListRoadmaps(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.NewRoadmapViews(items))
}

func (h *RoadmapHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create_roadmap")

	var req transport.CreateRoadmapRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_roadmap_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid Request body")
	}
	if req.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing User Id")
	}
	if req.Roadmap == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing Roadmap")
	}

	id, err := h.Svc.CreateRoadmap(ctx, req.UserID, req.Roadmap)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("User id: %s Not Found", req.UserID))
		case errors.Is(err, service.ErrMissingField):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"roadmap_id": id})
}

func (h *RoadmapHTTP) Get(c echo.Context) error {
	detail, err := h.Svc.GetRoadmapDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Roadmap not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, transport.NewRoadmapDetailView(detail.Roadmap, detail.Topics))
}

// UpdateStatus reports unexpected failures with their message, unlike the other
// handlers which fall through to the generic 500.
func (h *RoadmapHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update_roadmap_status")

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_bad_body", "error", err)
	}

	status, err := h.Svc.UpdateStatus(ctx, c.Param("id"), req.NewStatus)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Roadmap Not Found")
		case errors.Is(err, service.ErrInvalidStatus) && req.NewStatus == "":
			return echo.NewHTTPError(http.StatusForbidden, "Invalid Request body")
		case errors.Is(err, service.ErrInvalidStatus):
			return echo.NewHTTPError(http.StatusForbidden, fmt.Sprintf("Invalid status: %s", req.NewStatus))
		}
		l.Error("update_status_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "An error occurred: "+err.Error())
	}

	return c.JSON(http.StatusOK, transport.StatusMessage{
		Message: fmt.Sprintf("Roadmap status (%s) updated successfully", status),
	})
}

func (h *RoadmapHTTP) Delete(c echo.Context) error {
	if err := h.Svc.DeleteRoadmap(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Roadmap Not Found")
		}
		return err
	}
	return c.JSON(http.StatusOK, transport.StatusMessage{Message: "Roadmap Deleted Successfully"})
}
