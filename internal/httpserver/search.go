package httpserver

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/roadmap/internal/models"
	"github.com/Skotchmaster/roadmap/internal/search"
	"github.com/Skotchmaster/roadmap/internal/transport"
	"github.com/Skotchmaster/roadmap/pkg/logging"
)

type Searcher interface {
	Search(ctx context.Context, query string, from, size int) (int64, []models.Roadmap, error)
}

type SearchHTTP struct {
	Index Searcher
}

func (h *SearchHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing query")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := search.Paginate(page, size)

	total, items, err := h.Index.Search(ctx, q, from, size)
	if err != nil {
		l.Error("search_failed", "status", 500, "error", err)
		return err
	}
	return c.JSON(http.StatusOK, transport.SearchResponse{
		Total:    total,
		Roadmaps: transport.NewRoadmapViews(items),
	})
}
