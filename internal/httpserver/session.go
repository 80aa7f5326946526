package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/roadmap/internal/models"
	"github.com/Skotchmaster/roadmap/pkg/cookies"
)

const userKey = "session_user"

type SessionResolver interface {
	GetUserFromSessionID(ctx context.Context, sessionID string) (*models.User, error)
}

// RequireSession resolves the session_id cookie to a user and stores it on the
// echo context. Requests without a live session get 404 "User not found".
func RequireSession(r SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookies.SessionCookie)
			if err != nil {
				return echo.NewHTTPError(http.StatusNotFound, "User not found")
			}
			user, err := r.GetUserFromSessionID(c.Request().Context(), cookie.Value)
			if err != nil {
				return err
			}
			if user == nil {
				return echo.NewHTTPError(http.StatusNotFound, "User not found")
			}
			c.Set(userKey, user)
			return next(c)
		}
	}
}

func sessionUser(c echo.Context) *models.User {
	u, _ := c.Get(userKey).(*models.User)
	return u
}
