package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	metricsmw "github.com/Skotchmaster/roadmap/pkg/middleware/metrics"
)

type Deps struct {
	Auth     *AuthHTTP
	Roadmaps *RoadmapHTTP
	Chat     *ChatHTTP
	Health   *HealthHTTP
	// Search is nil when no search cluster is configured.
	Search *SearchHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = HTTPErrorHandler

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "Hello, this is working"})
	})
	e.GET("/health/live", d.Health.Live)
	e.GET("/health/ready", d.Health.Ready)
	e.GET("/metrics", metricsmw.Handler())

	e.POST("/users", d.Auth.Register)
	e.DELETE("/users", d.Auth.DeleteUser)
	e.POST("/sessions", d.Auth.Login)
	e.POST("/reset_password", d.Auth.ResetToken)
	e.PUT("/reset_password", d.Auth.UpdatePassword)

	requireSession := RequireSession(d.Auth.Svc)
	e.DELETE("/sessions", d.Auth.Logout, requireSession)
	e.GET("/profile", d.Auth.Profile, requireSession)

	e.POST("/chat", d.Chat.Chat)

	e.GET("/dashboard", d.Roadmaps.Dashboard)
	e.POST("/create_roadmap", d.Roadmaps.Create)
	e.GET("/roadmap/:id", d.Roadmaps.Get)
	e.DELETE("/roadmap/:id", d.Roadmaps.Delete)
	e.PUT("/update_roadmap_status/:id", d.Roadmaps.UpdateStatus)

	if d.Search != nil {
		e.GET("/search", d.Search.Search)
	}
}
