package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/painting-catalog/internal/database"
)

const sessionKey = "db_session"

// DBSession opens one database session per request, stores it in the
// context and closes it once the handler chain returns.
func DBSession(db *database.DB, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, err := db.Session(c.Request().Context())
			if err != nil {
				logger.Error("open db session", zap.Error(err))
				return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "database_unavailable", "message": err.Error()})
			}
			defer func() {
				if cerr := s.Close(); cerr != nil {
					logger.Warn("close db session", zap.Error(cerr))
				}
			}()
			c.Set(sessionKey, s)
			return next(c)
		}
	}
}

// Session returns the request's session. It panics when DBSession is not
// installed on the route, which is a wiring bug.
func Session(c echo.Context) *database.Session {
	s, ok := c.Get(sessionKey).(*database.Session)
	if !ok {
		panic("middleware: DBSession is not installed")
	}
	return s
}
