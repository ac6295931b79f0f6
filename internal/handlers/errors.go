package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anonto42/threadboard/backend/internal/services"
	"github.com/anonto42/threadboard/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps service errors onto response codes
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, services.ErrPostingNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Posting not found")
	case errors.Is(err, services.ErrCommentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	case errors.Is(err, services.ErrMemberNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Member not found")
	case errors.Is(err, services.ErrStoreUnavailable):
		logger.Error.Println(err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Storage temporarily unavailable")
	default:
		logger.Error.Println(err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}

// idParam parses a numeric path parameter. Anything that is not a positive
// integer cannot name a stored record.
func idParam(c echo.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
