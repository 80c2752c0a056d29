package handler // handler contains the HTTP endpoints of the charter API

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zeidalqadri/owlwritey-sub000/internal/charter"
	"github.com/zeidalqadri/owlwritey-sub000/internal/repository"
)

const dateLayout = "2006-01-02"

// currentActor reconstructs the charter actor from the claims JWTAuth put
// into the context. JWT numbers decode as float64.
func currentActor(c echo.Context) (charter.Actor, bool) {
	var id uint64
	switch v := c.Get("user_id").(type) {
	case float64:
		id = uint64(v)
	case uint64:
		id = v
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return charter.Actor{}, false
		}
		id = parsed
	default:
		return charter.Actor{}, false
	}
	role, ok := c.Get("role").(string)
	if !ok || !charter.Role(role).Valid() {
		return charter.Actor{}, false
	}
	return charter.Actor{ID: id, Role: charter.Role(role)}, true
}

// paramID parses a numeric path parameter.
func paramID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// parseDate parses a YYYY-MM-DD value in UTC.
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// charterError translates the sentinel errors of the core and the
// repositories into HTTP responses. Unknown errors become 500 without
// leaking details to the client.
func charterError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, charter.ErrInvalidRange),
		errors.Is(err, charter.ErrInvalidRate),
		errors.Is(err, charter.ErrInvalidPersonnel),
		errors.Is(err, charter.ErrInvalidIdempotencyKey):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, charter.ErrUnauthorized),
		errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case errors.Is(err, charter.ErrVesselNotFound),
		errors.Is(err, charter.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, charter.ErrInvalidTransition),
		errors.Is(err, charter.ErrStaleStatus),
		errors.Is(err, charter.ErrAvailabilityConflict),
		errors.Is(err, charter.ErrOperatorHasActiveWork),
		errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	c.Logger().Errorf("internal error: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
