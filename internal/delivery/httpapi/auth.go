package httpapi

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/yourusername/bazaar-admin/internal/domain/entity"
)

const (
	sessionKey    = "admin_session"
	sessionPrefix = "web:"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// handleLogin exchanges credentials for a console session token. The
// backend token stays on the server.
func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	sid := uuid.New().String()
	session, err := s.admin.Login(c.Request().Context(), sessionPrefix+sid, req.Email, req.Password)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, loginResponse{Token: sid, Email: session.Email})
}

func (s *Server) handleLogout(c echo.Context) error {
	session := sessionFrom(c)
	if err := s.admin.Logout(c.Request().Context(), session.UserID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// requireSession resolves the bearer token into the caller's session
func (s *Server) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		sid, ok := strings.CutPrefix(header, "Bearer ")
		sid = strings.TrimSpace(sid)
		if !ok || sid == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		session, err := s.admin.Session(c.Request().Context(), sessionPrefix+sid)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Session expired or invalid")
		}

		c.Set(sessionKey, *session)
		return next(c)
	}
}

func sessionFrom(c echo.Context) entity.Session {
	session, _ := c.Get(sessionKey).(entity.Session)
	return session
}
